package db

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type database struct {
	db *gorm.DB
}

// New creates a new database connection and migrates the dealers and visits
// tables.
func New(ctx context.Context, dialect string, dsn string, config *gorm.Config) (Database, error) {
	if config == nil {
		config = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	}

	var db *gorm.DB
	var err error

	switch dialect {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(dsn), config)
	case "mysql":
		db, err = gorm.Open(mysql.Open(dsn), config)
	case "postgres":
		db, err = gorm.Open(postgres.Open(dsn), config)
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
	if err != nil {
		return nil, err
	}

	db = db.WithContext(ctx)

	if err := db.AutoMigrate(
		&Dealer{},
		&Visit{},
	); err != nil {
		return nil, err
	}

	logrus.WithField("dialect", dialect).Debug("database ready")

	return &database{
		db: db,
	}, nil
}

func (d *database) ListDealers(ctx context.Context) ([]Dealer, error) {
	var dealers []Dealer
	sql := d.db.WithContext(ctx).
		Where("dealer_code <> '' AND dealer_name <> ''").
		Order("dealer_name").
		Find(&dealers)
	return dealers, sql.Error
}

func (d *database) UpsertDealers(ctx context.Context, dealers []Dealer) (int64, error) {
	if len(dealers) == 0 {
		return 0, nil
	}

	sql := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dealer_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"dealer_name"}),
	}).Create(&dealers)
	return sql.RowsAffected, sql.Error
}

func (d *database) InsertVisit(ctx context.Context, visit *Visit) error {
	sql := d.db.WithContext(ctx).Create(visit)
	return sql.Error
}

func (d *database) GetVisit(ctx context.Context, id string) (Visit, error) {
	visit := Visit{}
	sql := d.db.WithContext(ctx).Where("id = ?", id).Take(&visit)
	return visit, sql.Error
}

func (d *database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
