package commands

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ajans/visit-form/pkg/db"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

// readDealerCSV reads code,name rows. A first row naming the dealer_code and
// dealer_name columns is taken as the header; otherwise the first two
// columns are used.
func readDealerCSV(r io.Reader) ([]db.Dealer, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("no rows")
	}

	codeCol, nameCol := 0, 1
	header := map[string]int{}
	for i, h := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(h))] = i
	}
	c, okCode := header["dealer_code"]
	n, okName := header["dealer_name"]
	if okCode && okName {
		codeCol, nameCol = c, n
		rows = rows[1:]
	}

	var dealers []db.Dealer
	for i, row := range rows {
		if len(row) <= codeCol || len(row) <= nameCol {
			logrus.Warnf("skipping short row %d", i+1)
			continue
		}
		code, name := strings.TrimSpace(row[codeCol]), strings.TrimSpace(row[nameCol])
		if code == "" || name == "" {
			continue
		}
		dealers = append(dealers, db.Dealer{Code: code, Name: name})
	}

	return dealers, nil
}

func seedDealers(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: %s seed-dealers <file.csv>", c.App.Name)
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	dealers, err := readDealerCSV(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.Args().First(), err)
	}

	ctx := context.Background()
	database, err := db.New(ctx, c.String("sql-dialect"), c.String("sql-dsn"), &gorm.Config{
		Logger: db.NewLogger(c.String("log-level")),
	})
	if err != nil {
		return err
	}
	defer database.Close()

	n, err := database.UpsertDealers(ctx, dealers)
	if err != nil {
		return err
	}

	logrus.WithField("rows", n).Infof("seeded %d dealers", len(dealers))
	return nil
}

func seedDealersCommand() *cli.Command {
	flags := []cli.Flag{
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
	}

	return &cli.Command{
		Name:      "seed-dealers",
		Usage:     "load dealers from a CSV file into the sql backend",
		ArgsUsage: "<file.csv>",
		Action:    seedDealers,
		Flags:     append(flags, GlobalFlags()...),
		Before:    Before,
	}
}
