package backend

import (
	"context"
	"fmt"
	"regexp"

	"github.com/ajans/visit-form/pkg/credentials"
	"github.com/ajans/visit-form/pkg/db"
	"github.com/ajans/visit-form/pkg/model"
	"gorm.io/gorm"
)

const (
	KindBigQuery = "bigquery"
	KindSheets   = "sheets"
	KindSQL      = "sql"
)

var tableName = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

type Config struct {
	Kind    string
	Variant model.Variant

	ProjectID    string
	DealersTable string
	VisitsTable  string

	SpreadsheetID    string
	SpreadsheetTitle string
	DealersSheet     string
	ResponsesSheet   string

	SQLDialect string
	SQLDSN     string
	LogLevel   string
}

// DefaultVariant is the form a backend collects when none is configured.
func DefaultVariant(kind string) model.Variant {
	if kind == KindSheets {
		return model.VariantSpreadsheet
	}
	return model.VariantWarehouse
}

// Validate reports the configuration errors that retrying cannot fix.
func (cfg Config) Validate() error {
	variant := cfg.Variant
	if variant == "" {
		variant = DefaultVariant(cfg.Kind)
	}
	if err := variant.IsValid(); err != nil {
		return err
	}

	switch cfg.Kind {
	case KindBigQuery:
		if err := validTableName(cfg.DealersTable); err != nil {
			return err
		}
		if err := validTableName(cfg.VisitsTable); err != nil {
			return err
		}
	case KindSheets:
		if cfg.SpreadsheetID == "" && cfg.SpreadsheetTitle == "" {
			return fmt.Errorf("spreadsheet id or title must be provided")
		}
	case KindSQL:
		return nil
	default:
		return fmt.Errorf("unsupported backend: %s", cfg.Kind)
	}

	if variant != DefaultVariant(cfg.Kind) {
		return fmt.Errorf("backend %s only stores the %s form", cfg.Kind, DefaultVariant(cfg.Kind))
	}
	return nil
}

// New builds the configured backend. The Google backends resolve
// credentials first; the error then wraps
// credentials.ErrCredentialsUnavailable.
func New(ctx context.Context, cfg Config, resolver *credentials.Resolver) (Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Variant == "" {
		cfg.Variant = DefaultVariant(cfg.Kind)
	}

	switch cfg.Kind {
	case KindBigQuery, KindSheets:
		creds, err := resolver.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		if cfg.Kind == KindBigQuery {
			return NewBigQuery(ctx, creds, cfg.ProjectID, cfg.DealersTable, cfg.VisitsTable)
		}
		return NewSheets(ctx, creds, cfg.SpreadsheetID, cfg.SpreadsheetTitle, cfg.DealersSheet, cfg.ResponsesSheet)
	case KindSQL:
		database, err := db.New(ctx, cfg.SQLDialect, cfg.SQLDSN, &gorm.Config{
			Logger: db.NewLogger(cfg.LogLevel),
		})
		if err != nil {
			return nil, err
		}
		return NewSQL(database, cfg.Variant), nil
	}

	return nil, fmt.Errorf("unsupported backend: %s", cfg.Kind)
}

func validTableName(name string) error {
	if !tableName.MatchString(name) {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}
