package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/ajans/visit-form/pkg/backend"
	"github.com/ajans/visit-form/pkg/credentials"
	"github.com/ajans/visit-form/pkg/dealers"
	"github.com/ajans/visit-form/pkg/model"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func GetCommands() []*cli.Command {
	return []*cli.Command{
		serverCommand(),
		dealersCommand(),
		seedDealersCommand(),
		versionCommand(),
	}
}

// backendFlags configure where dealers are read from and visits written to.
func backendFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "backend",
			Usage:   "The backend to use, bigquery, sheets or sql",
			EnvVars: []string{"VISIT_FORM_BACKEND", "BACKEND"},
			Value:   backend.KindBigQuery,
		},
		&cli.StringFlag{
			Name:    "variant",
			Usage:   "The form to collect, warehouse or spreadsheet (default depends on the backend)",
			EnvVars: []string{"VISIT_FORM_VARIANT"},
		},
		&cli.StringFlag{
			Name:    "project",
			Usage:   "Google Cloud project, defaults to the service account's project",
			EnvVars: []string{"VISIT_FORM_PROJECT", "GOOGLE_CLOUD_PROJECT"},
		},
		&cli.StringFlag{
			Name:    "dealers-table",
			Usage:   "BigQuery table holding dealer_code and dealer_name",
			EnvVars: []string{"VISIT_FORM_DEALERS_TABLE"},
			Value:   backend.DefaultDealersTable,
		},
		&cli.StringFlag{
			Name:    "visits-table",
			Usage:   "BigQuery table the visits are inserted into",
			EnvVars: []string{"VISIT_FORM_VISITS_TABLE"},
			Value:   backend.DefaultVisitsTable,
		},
		&cli.StringFlag{
			Name:    "spreadsheet-id",
			Usage:   "ID of the Google spreadsheet",
			EnvVars: []string{"VISIT_FORM_SPREADSHEET_ID"},
		},
		&cli.StringFlag{
			Name:    "spreadsheet-title",
			Usage:   "Title of the Google spreadsheet, used when no ID is set",
			EnvVars: []string{"VISIT_FORM_SPREADSHEET_TITLE"},
		},
		&cli.StringFlag{
			Name:    "dealers-sheet",
			Usage:   "Worksheet holding the dealers",
			EnvVars: []string{"VISIT_FORM_DEALERS_SHEET"},
			Value:   backend.DefaultDealersSheet,
		},
		&cli.StringFlag{
			Name:    "responses-sheet",
			Usage:   "Worksheet the visits are appended to",
			EnvVars: []string{"VISIT_FORM_RESPONSES_SHEET"},
			Value:   backend.DefaultResponsesSheet,
		},
		&cli.StringFlag{
			Name:    "sql-dialect",
			Usage:   "The type of sql to use, sqlite, mysql or postgres",
			EnvVars: []string{"VISIT_FORM_SQL_DIALECT", "SQL_DIALECT"},
			Value:   "sqlite",
		},
		&cli.StringFlag{
			Name:    "sql-dsn",
			Usage:   "The DSN to use to connect to",
			EnvVars: []string{"VISIT_FORM_SQL_DSN", "SQL_DSN"},
			Value:   "file:visits.sqlite?_pragma=foreign_keys(1)",
		},
		&cli.StringFlag{
			Name:    "secrets-file",
			Usage:   "YAML file holding the service account under the service_account key",
			EnvVars: []string{"VISIT_FORM_SECRETS_FILE"},
			Value:   credentials.DefaultSecretsFile,
		},
		&cli.StringFlag{
			Name:    "credentials-file",
			Usage:   "Service account JSON key file",
			EnvVars: []string{"VISIT_FORM_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS"},
			Value:   credentials.DefaultCredentialFile,
		},
		&cli.StringFlag{
			Name:    "aws-secret-id",
			Usage:   "AWS Secrets Manager secret holding the service account key",
			EnvVars: []string{"VISIT_FORM_AWS_SECRET_ID"},
		},
		&cli.StringFlag{
			Name:    "aws-region",
			Usage:   "Region of the AWS secret",
			EnvVars: []string{"AWS_REGION"},
		},
	}
}

func backendConfig(c *cli.Context) backend.Config {
	variant := model.Variant(c.String("variant"))
	if variant == "" {
		variant = backend.DefaultVariant(c.String("backend"))
	}

	return backend.Config{
		Kind:             c.String("backend"),
		Variant:          variant,
		ProjectID:        c.String("project"),
		DealersTable:     c.String("dealers-table"),
		VisitsTable:      c.String("visits-table"),
		SpreadsheetID:    c.String("spreadsheet-id"),
		SpreadsheetTitle: c.String("spreadsheet-title"),
		DealersSheet:     c.String("dealers-sheet"),
		ResponsesSheet:   c.String("responses-sheet"),
		SQLDialect:       c.String("sql-dialect"),
		SQLDSN:           c.String("sql-dsn"),
		LogLevel:         c.String("log-level"),
	}
}

// resolver looks in the secrets file, then AWS, then the key file.
func resolver(c *cli.Context) (*credentials.Resolver, error) {
	sources := []credentials.Source{
		&credentials.SecretsFile{Path: c.String("secrets-file"), Key: credentials.SecretKey},
	}

	if id := c.String("aws-secret-id"); id != "" {
		aws, err := credentials.NewAWSSecret(id, c.String("aws-region"))
		if err != nil {
			return nil, fmt.Errorf("aws secret %s: %w", id, err)
		}
		sources = append(sources, aws)
	}

	sources = append(sources, &credentials.File{Path: c.String("credentials-file")})
	return credentials.NewResolver(sources...), nil
}

func openBackend(ctx context.Context, c *cli.Context) (backend.Backend, error) {
	res, err := resolver(c)
	if err != nil {
		return nil, err
	}
	return backend.New(ctx, backendConfig(c), res)
}

func dealersCommand() *cli.Command {
	return &cli.Command{
		Name:  "dealers",
		Usage: "print the dealer list",
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			back, err := openBackend(ctx, c)
			if err != nil {
				return err
			}
			defer back.Close()

			d, err := dealers.NewLoader(back, dealers.DefaultTTL).Load(ctx)
			if err != nil {
				return err
			}

			logrus.WithField("backend", back.Name()).Debugf("%d dealers", len(d.List))
			for _, dealer := range d.List {
				fmt.Printf("%s\t%s\n", dealer.Code, dealer.Name)
			}
			return nil
		},
		Flags:  append(backendFlags(), GlobalFlags()...),
		Before: Before,
	}
}
