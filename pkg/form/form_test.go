package form

import (
	"errors"
	"net/url"
	"reflect"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/ajans/visit-form/pkg/model"
)

var today = civil.Date{Year: 2026, Month: 10, Day: 19}

func testDealers() model.Dealers {
	return model.Dealers{
		List: []model.Dealer{{Code: "D123", Name: "Al Amal Cars"}, {Code: "D150", Name: "Masr Auto"}},
		ByCode: map[string]string{
			"D123": "Al Amal Cars",
			"D150": "Masr Auto",
		},
	}
}

func mustSchema(t *testing.T, v model.Variant) *Schema {
	t.Helper()
	s, err := ForVariant(v)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	return s
}

func warehouseValues() url.Values {
	return url.Values{
		"dealer_code":       {"D123"},
		"dealer_spoc":       {"Hassan"},
		"visit_type":        {model.VisitTypeFollowUp},
		"visitor":           {"Mai"},
		"app_overview":      {"  works well  "},
		"positive_feedback": {"fast payments"},
		"negative_feedback": {"slow inspection"},
		"action_date":       {"2026-10-25"},
		"interested":        {AnswerYes},
		"benefit_of_visit":  {model.BenefitHigh},
		"preferred_channel": {model.ChannelWhatsApp},
	}
}

func TestForVariantUnknown(t *testing.T) {
	if _, err := ForVariant("paper"); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}

func TestRequiredFields(t *testing.T) {
	tests := []struct {
		variant model.Variant
		want    []string
	}{
		{model.VariantWarehouse, []string{"dealer_code", "dealer_spoc", "visit_type", "visitor"}},
		{model.VariantSpreadsheet, []string{"dealer_code", "problems", "visitor"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			got := mustSchema(t, tt.variant).Required().List()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("required = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateComplete(t *testing.T) {
	res := mustSchema(t, model.VariantWarehouse).Validate(warehouseValues(), testDealers())
	if !res.OK() {
		t.Errorf("expected pass, got missing=%v invalid=%v", res.Missing, res.Invalid)
	}
}

func TestValidateMissingInFormOrder(t *testing.T) {
	v := warehouseValues()
	v.Del("visitor")
	v.Set("dealer_spoc", "   ")

	res := mustSchema(t, model.VariantWarehouse).Validate(v, testDealers())
	want := []string{"dealer_spoc", "visitor"}
	if !reflect.DeepEqual(res.Missing, want) {
		t.Errorf("missing = %v, want %v", res.Missing, want)
	}
}

func TestValidateSpreadsheetProblemsRequired(t *testing.T) {
	v := url.Values{
		"dealer_code": {"D150"},
		"visitor":     {"Sadek"},
		"problems":    {""},
	}

	res := mustSchema(t, model.VariantSpreadsheet).Validate(v, testDealers())
	if !reflect.DeepEqual(res.Missing, []string{"problems"}) {
		t.Errorf("missing = %v, want [problems]", res.Missing)
	}
}

func TestValidateInvalidValues(t *testing.T) {
	v := url.Values{
		"dealer_code":    {"D999"},
		"visitor":        {"Nobody"},
		"problems":       {"late payouts"},
		"stock_count":    {"twelve"},
		"topics":         {model.Topics[0], "غير موجود"},
		"action_date":    {"25/10/2026"},
		"reference_link": {"not a url at all"},
	}

	res := mustSchema(t, model.VariantSpreadsheet).Validate(v, testDealers())
	want := []string{"dealer_code", "visitor", "topics", "stock_count", "action_date"}
	if !reflect.DeepEqual(res.Invalid, want) {
		t.Errorf("invalid = %v, want %v", res.Invalid, want)
	}
	if len(res.Missing) != 0 {
		t.Errorf("missing = %v, want none", res.Missing)
	}
}

func TestDecodeWarehouse(t *testing.T) {
	rec, err := mustSchema(t, model.VariantWarehouse).Decode(warehouseValues(), testDealers(), today)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if rec.DealerCode != "D123" || rec.DealerName != "Al Amal Cars" {
		t.Errorf("dealer = %q/%q, want D123/Al Amal Cars", rec.DealerCode, rec.DealerName)
	}
	if rec.Date != today {
		t.Errorf("date = %v, want %v", rec.Date, today)
	}
	if rec.ActionDate != (civil.Date{Year: 2026, Month: 10, Day: 25}) {
		t.Errorf("action date = %v", rec.ActionDate)
	}
	if rec.NextVisitDate != today {
		t.Errorf("next visit date = %v, want default today", rec.NextVisitDate)
	}
	if rec.AppOverview != "works well" {
		t.Errorf("app overview = %q, want trimmed", rec.AppOverview)
	}
	if !rec.IsInterested() {
		t.Error("expected interested = true")
	}
	if rec.PreferredChannel != model.ChannelWhatsApp {
		t.Errorf("channel = %q", rec.PreferredChannel)
	}
}

func TestDecodeIgnoresSubmittedDealerName(t *testing.T) {
	v := warehouseValues()
	v.Set("dealer_name", "Spoofed")

	rec, err := mustSchema(t, model.VariantWarehouse).Decode(v, testDealers(), today)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.DealerName != "Al Amal Cars" {
		t.Errorf("dealer name = %q, want the loaded name", rec.DealerName)
	}
}

func TestDecodeNegativeAnswer(t *testing.T) {
	v := warehouseValues()
	v.Set("interested", AnswerNo)

	rec, err := mustSchema(t, model.VariantWarehouse).Decode(v, testDealers(), today)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Interested == nil || *rec.Interested {
		t.Errorf("interested = %v, want an explicit no", rec.Interested)
	}
}

func TestDecodeSpreadsheet(t *testing.T) {
	v := url.Values{
		"dealer_code":    {"D150"},
		"visitor":        {"Yousif"},
		"problems":       {"late payouts"},
		"topics":         {model.Topics[0], model.Topics[2]},
		"stock_count":    {"42"},
		"reference_link": {"drive/folder/123"},
		"uses_app":       {AnswerYes},
	}

	rec, err := mustSchema(t, model.VariantSpreadsheet).Decode(v, testDealers(), today)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.StockCount == nil || *rec.StockCount != 42 {
		t.Errorf("stock = %v, want 42", rec.StockCount)
	}
	if !reflect.DeepEqual(rec.Topics, []string{model.Topics[0], model.Topics[2]}) {
		t.Errorf("topics = %v", rec.Topics)
	}
	if rec.ReferenceLink != "drive/folder/123" || rec.Problems != "late payouts" {
		t.Errorf("text fields not mapped: %+v", rec)
	}
	if !rec.IsInterested() {
		t.Error("expected uses_app to map to Interested")
	}
}

func TestDecodeUnansweredStaysUnset(t *testing.T) {
	v := url.Values{
		"dealer_code": {"D150"},
		"visitor":     {"Yousif"},
		"problems":    {"late payouts"},
		"stock_count": {"  "},
	}

	rec, err := mustSchema(t, model.VariantSpreadsheet).Decode(v, testDealers(), today)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.StockCount != nil {
		t.Errorf("stock = %d, want unset", *rec.StockCount)
	}
	if rec.Interested != nil {
		t.Errorf("uses_app = %v, want unset", *rec.Interested)
	}
}

func TestDecodeReturnsValidationError(t *testing.T) {
	_, err := mustSchema(t, model.VariantSpreadsheet).Decode(url.Values{}, testDealers(), today)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatal("expected *ValidationError")
	}
	if len(verr.Missing) != 3 {
		t.Errorf("missing = %v, want 3 fields", verr.Missing)
	}
}
