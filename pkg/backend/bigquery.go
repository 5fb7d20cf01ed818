package backend

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"github.com/ajans/visit-form/pkg/credentials"
	"github.com/ajans/visit-form/pkg/model"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const (
	DefaultDealersTable = "pricing-338819.ajans_dealers.dealers"
	DefaultVisitsTable  = "pricing-338819.wholesale_test.visit_form_1"

	dealersQuery = "SELECT DISTINCT dealer_code, dealer_name\n" +
		"FROM `%s`\n" +
		"WHERE dealer_code IS NOT NULL AND dealer_name IS NOT NULL\n" +
		"ORDER BY dealer_name"

	// Column names follow the existing table, including its spellings of
	// postive_feedback and perfered_com_channel.
	insertVisit = "INSERT INTO `%s`\n" +
		"(Date, Dealer_name, dealer_spoc, Dealer_code, visit_type, visitor,\n" +
		" app_overview, flash_sale, showroom_performance, swift_adoption,\n" +
		" direct_lending, car_sharing, d2c_adoption, postive_feedback,\n" +
		" negative_feedback, Next_actions, action_owner, action_date,\n" +
		" interested_in_visit, benefit_of_visit, next_visit_date,\n" +
		" perfered_com_channel)\n" +
		"VALUES\n" +
		"(@date, @dealer_name, @dealer_spoc, @dealer_code, @visit_type, @visitor,\n" +
		" @app_overview, @flash_sale, @showroom_performance, @swift_adoption,\n" +
		" @direct_lending, @car_sharing, @d2c_adoption, @postive_feedback,\n" +
		" @negative_feedback, @next_actions, @action_owner, @action_date,\n" +
		" @interested_in_visit, @benefit_of_visit, @next_visit_date,\n" +
		" @perfered_com_channel)"
)

// warehouse is the part of the BigQuery client the backend uses.
type warehouse interface {
	readDealers(ctx context.Context, query string) ([]model.Dealer, error)
	exec(ctx context.Context, query string, params []bigquery.QueryParameter) error
	close() error
}

type bigQueryBackend struct {
	wh           warehouse
	dealersTable string
	visitsTable  string
}

func NewBigQuery(ctx context.Context, creds *credentials.Credentials, projectID, dealersTable, visitsTable string) (Backend, error) {
	if err := validTableName(dealersTable); err != nil {
		return nil, err
	}
	if err := validTableName(visitsTable); err != nil {
		return nil, err
	}
	if projectID == "" {
		projectID = creds.ProjectID
	}

	client, err := bigquery.NewClient(ctx, projectID, option.WithCredentialsJSON(creds.JSON))
	if err != nil {
		return nil, fmt.Errorf("creating bigquery client: %w", err)
	}

	return &bigQueryBackend{
		wh:           &bigQueryClient{client: client},
		dealersTable: dealersTable,
		visitsTable:  visitsTable,
	}, nil
}

func (b *bigQueryBackend) Name() string {
	return KindBigQuery
}

func (b *bigQueryBackend) ListDealers(ctx context.Context) ([]model.Dealer, error) {
	return b.wh.readDealers(ctx, fmt.Sprintf(dealersQuery, b.dealersTable))
}

func (b *bigQueryBackend) Submit(ctx context.Context, rec model.VisitRecord) error {
	return b.wh.exec(ctx, fmt.Sprintf(insertVisit, b.visitsTable), insertParameters(rec))
}

func (b *bigQueryBackend) Close() error {
	return b.wh.close()
}

// nullBool leaves an unanswered question NULL.
func nullBool(b *bool) bigquery.NullBool {
	if b == nil {
		return bigquery.NullBool{}
	}
	return bigquery.NullBool{Bool: *b, Valid: true}
}

// insertParameters binds a record to the insert statement. BigQuery infers
// the parameter types from the Go values: civil.Date is DATE, string is
// STRING and NullBool is BOOL.
func insertParameters(rec model.VisitRecord) []bigquery.QueryParameter {
	return []bigquery.QueryParameter{
		{Name: "date", Value: rec.Date},
		{Name: "dealer_name", Value: rec.DealerName},
		{Name: "dealer_spoc", Value: rec.DealerSPOC},
		{Name: "dealer_code", Value: rec.DealerCode},
		{Name: "visit_type", Value: rec.VisitType},
		{Name: "visitor", Value: rec.Visitor},
		{Name: "app_overview", Value: rec.AppOverview},
		{Name: "flash_sale", Value: rec.FlashSale},
		{Name: "showroom_performance", Value: rec.ShowroomPerformance},
		{Name: "swift_adoption", Value: rec.SwiftAdoption},
		{Name: "direct_lending", Value: rec.DirectLending},
		{Name: "car_sharing", Value: rec.CarSharing},
		{Name: "d2c_adoption", Value: rec.D2CAdoption},
		{Name: "postive_feedback", Value: rec.PositiveFeedback},
		{Name: "negative_feedback", Value: rec.NegativeFeedback},
		{Name: "next_actions", Value: rec.NextActions},
		{Name: "action_owner", Value: rec.ActionOwner},
		{Name: "action_date", Value: rec.ActionDate},
		{Name: "interested_in_visit", Value: nullBool(rec.Interested)},
		{Name: "benefit_of_visit", Value: rec.BenefitOfVisit},
		{Name: "next_visit_date", Value: rec.NextVisitDate},
		{Name: "perfered_com_channel", Value: rec.PreferredChannel},
	}
}

type bigQueryClient struct {
	client *bigquery.Client
}

type dealerRow struct {
	Code string `bigquery:"dealer_code"`
	Name string `bigquery:"dealer_name"`
}

func (c *bigQueryClient) readDealers(ctx context.Context, query string) ([]model.Dealer, error) {
	it, err := c.client.Query(query).Read(ctx)
	if err != nil {
		return nil, err
	}

	var dealers []model.Dealer
	for {
		var row dealerRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		dealers = append(dealers, model.Dealer{Code: row.Code, Name: row.Name})
	}

	return dealers, nil
}

// exec runs a statement and waits for the job to finish.
func (c *bigQueryClient) exec(ctx context.Context, query string, params []bigquery.QueryParameter) error {
	q := c.client.Query(query)
	q.Parameters = params

	job, err := q.Run(ctx)
	if err != nil {
		return err
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return err
	}
	return status.Err()
}

func (c *bigQueryClient) close() error {
	return c.client.Close()
}
