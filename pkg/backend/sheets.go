package backend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ajans/visit-form/pkg/credentials"
	"github.com/ajans/visit-form/pkg/model"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	DefaultDealersSheet   = "dealers"
	DefaultResponsesSheet = "responses"

	// TopicSeparator joins multi-select answers into one cell.
	TopicSeparator = ", "

	spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"
)

// spreadsheet is the part of the Sheets API the backend uses.
type spreadsheet interface {
	values(ctx context.Context, sheet string) ([][]interface{}, error)
	appendRow(ctx context.Context, sheet string, row []interface{}) error
}

type sheetsBackend struct {
	sheet          spreadsheet
	dealersSheet   string
	responsesSheet string
}

// NewSheets opens the spreadsheet by ID, or by title when id is empty.
func NewSheets(ctx context.Context, creds *credentials.Credentials, id, title, dealersSheet, responsesSheet string) (Backend, error) {
	opt := option.WithCredentialsJSON(creds.JSON)

	svc, err := sheets.NewService(ctx, opt, option.WithScopes(sheets.SpreadsheetsScope, drive.DriveMetadataReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}

	if id == "" {
		id, err = spreadsheetIDByTitle(ctx, opt, title)
		if err != nil {
			return nil, err
		}
	}

	logrus.WithField("spreadsheet", id).Debug("using spreadsheet")

	return &sheetsBackend{
		sheet:          &sheetsClient{svc: svc, id: id},
		dealersSheet:   dealersSheet,
		responsesSheet: responsesSheet,
	}, nil
}

func spreadsheetIDByTitle(ctx context.Context, opt option.ClientOption, title string) (string, error) {
	if title == "" {
		return "", errors.New("spreadsheet id or title must be provided")
	}

	drv, err := drive.NewService(ctx, opt, option.WithScopes(drive.DriveMetadataReadonlyScope))
	if err != nil {
		return "", fmt.Errorf("creating drive client: %w", err)
	}

	list, err := drv.Files.List().
		Q(titleQuery(title)).
		Fields("files(id, name)").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("looking up spreadsheet %q: %w", title, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("spreadsheet %q not found", title)
	}

	return list.Files[0].Id, nil
}

var driveEscaper = strings.NewReplacer(`\`, `\\`, "'", `\'`)

// titleQuery finds a spreadsheet by exact name. Backslashes and quotes in
// the title are escaped for the Drive query language.
func titleQuery(title string) string {
	return fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		driveEscaper.Replace(title), spreadsheetMimeType)
}

func (b *sheetsBackend) Name() string {
	return KindSheets
}

func (b *sheetsBackend) ListDealers(ctx context.Context) ([]model.Dealer, error) {
	rows, err := b.sheet.values(ctx, b.dealersSheet)
	if err != nil {
		return nil, err
	}
	return parseDealerRows(rows)
}

func (b *sheetsBackend) Submit(ctx context.Context, rec model.VisitRecord) error {
	return b.sheet.appendRow(ctx, b.responsesSheet, rowValues(rec))
}

func (b *sheetsBackend) Close() error {
	return nil
}

// parseDealerRows reads a worksheet whose first row holds the headers
// dealer_code and dealer_name, in any column.
func parseDealerRows(rows [][]interface{}) ([]model.Dealer, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	codeIdx, nameIdx := -1, -1
	for i, h := range rows[0] {
		switch strings.TrimSpace(fmt.Sprint(h)) {
		case "dealer_code":
			codeIdx = i
		case "dealer_name":
			nameIdx = i
		}
	}
	if codeIdx < 0 || nameIdx < 0 {
		return nil, errors.New("dealers sheet needs dealer_code and dealer_name headers")
	}

	var dealers []model.Dealer
	for _, row := range rows[1:] {
		d := model.Dealer{Code: cell(row, codeIdx), Name: cell(row, nameIdx)}
		if d.Code == "" || d.Name == "" {
			continue
		}
		dealers = append(dealers, d)
	}
	return dealers, nil
}

func cell(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}

// rowValues lays a record out as the 15 columns of the responses sheet.
func rowValues(rec model.VisitRecord) []interface{} {
	return []interface{}{
		rec.Date.String(),
		rec.DealerCode,
		rec.DealerName,
		rec.Visitor,
		rec.VisitType,
		rec.Problems,
		rec.Suggestions,
		strings.Join(rec.Topics, TopicSeparator),
		count(rec.StockCount),
		rec.ReferenceLink,
		model.YesNo(rec.Interested),
		rec.NextActions,
		rec.ActionDate.String(),
		rec.NextVisitDate.String(),
		rec.PreferredChannel,
	}
}

func count(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

type sheetsClient struct {
	svc *sheets.Service
	id  string
}

func (c *sheetsClient) values(ctx context.Context, sheet string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.id, sheet).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *sheetsClient) appendRow(ctx context.Context, sheet string, row []interface{}) error {
	_, err := c.svc.Spreadsheets.Values.Append(c.id, sheet, &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
