package form

import (
	"net/url"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/ajans/visit-form/pkg/model"
	"golang.org/x/text/unicode/norm"
)

// Decode validates values and maps them onto a visit record. The visit date
// is today; empty date fields default to today as well. The dealer name is
// taken from dealers, never from the submitted values.
func (s *Schema) Decode(values url.Values, dealers model.Dealers, today civil.Date) (model.VisitRecord, error) {
	if res := s.Validate(values, dealers); !res.OK() {
		return model.VisitRecord{}, &ValidationError{Result: res}
	}

	rec := model.VisitRecord{
		Date:          today,
		ActionDate:    today,
		NextVisitDate: today,
	}

	for _, f := range s.Fields() {
		vals := nonEmpty(values[f.Name])
		if len(vals) == 0 {
			continue
		}
		v := clean(vals[0])

		switch f.Kind {
		case KindDealer:
			rec.DealerCode = v
			rec.DealerName, _ = dealers.Name(v)
		case KindYesNo:
			yes := v == AnswerYes
			rec.Interested = &yes
		case KindMultiSelect:
			rec.Topics = make([]string, len(vals))
			for i, item := range vals {
				rec.Topics[i] = clean(item)
			}
		case KindNumber:
			n, _ := strconv.Atoi(v)
			rec.StockCount = &n
		case KindDate:
			d, _ := civil.ParseDate(v)
			if p := dateTarget(&rec, f.Name); p != nil {
				*p = d
			}
		default:
			if p := textTarget(&rec, f.Name); p != nil {
				*p = v
			}
		}
	}

	return rec, nil
}

// clean trims and normalizes text so Arabic input typed on different
// keyboards is stored in one form.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func dateTarget(rec *model.VisitRecord, name string) *civil.Date {
	switch name {
	case "action_date":
		return &rec.ActionDate
	case "next_visit_date":
		return &rec.NextVisitDate
	}
	return nil
}

func textTarget(rec *model.VisitRecord, name string) *string {
	switch name {
	case "dealer_spoc":
		return &rec.DealerSPOC
	case "visit_type":
		return &rec.VisitType
	case "visitor":
		return &rec.Visitor
	case "app_overview":
		return &rec.AppOverview
	case "flash_sale":
		return &rec.FlashSale
	case "showroom_performance":
		return &rec.ShowroomPerformance
	case "swift_adoption":
		return &rec.SwiftAdoption
	case "direct_lending":
		return &rec.DirectLending
	case "car_sharing":
		return &rec.CarSharing
	case "d2c_adoption":
		return &rec.D2CAdoption
	case "positive_feedback":
		return &rec.PositiveFeedback
	case "negative_feedback":
		return &rec.NegativeFeedback
	case "next_actions":
		return &rec.NextActions
	case "action_owner":
		return &rec.ActionOwner
	case "benefit_of_visit":
		return &rec.BenefitOfVisit
	case "preferred_channel":
		return &rec.PreferredChannel
	case "problems":
		return &rec.Problems
	case "suggestions":
		return &rec.Suggestions
	case "reference_link":
		return &rec.ReferenceLink
	}
	return nil
}
