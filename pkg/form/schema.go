// Package form describes the visit form of each variant and turns submitted
// values into visit records.
package form

import (
	"fmt"

	"github.com/ajans/visit-form/pkg/i18n"
	"github.com/ajans/visit-form/pkg/model"
	"k8s.io/apimachinery/pkg/util/sets"
)

type Kind string

const (
	KindText        Kind = "text"
	KindTextArea    Kind = "textarea"
	KindSelect      Kind = "select"
	KindMultiSelect Kind = "multiselect"
	KindDate        Kind = "date"
	KindNumber      Kind = "number"
	KindYesNo       Kind = "yesno"
	KindDealer      Kind = "dealer"
)

const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

// Option is one choice of a select. When LabelKey is empty the value is
// shown as is.
type Option struct {
	Value    string
	LabelKey string
}

type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Options  []Option
}

func (f Field) allowed() sets.String {
	s := sets.NewString()
	for _, o := range f.Options {
		s.Insert(o.Value)
	}
	return s
}

type Section struct {
	TitleKey string
	Open     bool
	Fields   []Field
}

type Schema struct {
	Variant  model.Variant
	Sections []Section
}

// ForVariant returns the form schema of a variant.
func ForVariant(v model.Variant) (*Schema, error) {
	switch v {
	case model.VariantWarehouse:
		return warehouseSchema(), nil
	case model.VariantSpreadsheet:
		return spreadsheetSchema(), nil
	}
	return nil, fmt.Errorf("no form for variant %q", v)
}

// Fields returns all fields in display order.
func (s *Schema) Fields() []Field {
	var fields []Field
	for _, sec := range s.Sections {
		fields = append(fields, sec.Fields...)
	}
	return fields
}

func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Required returns the names of the required fields.
func (s *Schema) Required() sets.String {
	req := sets.NewString()
	for _, f := range s.Fields() {
		if f.Required {
			req.Insert(f.Name)
		}
	}
	return req
}

func plain(values ...string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: v}
	}
	return opts
}

var yesNo = []Option{
	{Value: AnswerYes, LabelKey: i18n.OptionYes},
	{Value: AnswerNo, LabelKey: i18n.OptionNo},
}

func warehouseSchema() *Schema {
	return &Schema{
		Variant: model.VariantWarehouse,
		Sections: []Section{
			{
				TitleKey: i18n.SectionGeneral,
				Open:     true,
				Fields: []Field{
					{Name: "dealer_code", Kind: KindDealer, Required: true},
					{Name: "dealer_spoc", Kind: KindText, Required: true},
					{Name: "visit_type", Kind: KindSelect, Required: true, Options: plain(model.VisitTypes...)},
					{Name: "visitor", Kind: KindSelect, Required: true, Options: plain(model.Visitors...)},
				},
			},
			{
				TitleKey: i18n.SectionDiscussion,
				Fields: []Field{
					{Name: "app_overview", Kind: KindTextArea},
					{Name: "flash_sale", Kind: KindTextArea},
					{Name: "showroom_performance", Kind: KindTextArea},
					{Name: "swift_adoption", Kind: KindTextArea},
					{Name: "direct_lending", Kind: KindTextArea},
					{Name: "car_sharing", Kind: KindTextArea},
					{Name: "d2c_adoption", Kind: KindTextArea},
					{Name: "positive_feedback", Kind: KindTextArea},
					{Name: "negative_feedback", Kind: KindTextArea},
				},
			},
			{
				TitleKey: i18n.SectionActions,
				Fields: []Field{
					{Name: "next_actions", Kind: KindTextArea},
					{Name: "action_owner", Kind: KindText},
					{Name: "action_date", Kind: KindDate},
				},
			},
			{
				TitleKey: i18n.SectionEvaluation,
				Fields: []Field{
					{Name: "interested", Kind: KindYesNo, Options: yesNo},
					{Name: "benefit_of_visit", Kind: KindSelect, Options: plain(model.Benefits...)},
				},
			},
			{
				TitleKey: i18n.SectionFollowUp,
				Fields: []Field{
					{Name: "next_visit_date", Kind: KindDate},
					{Name: "preferred_channel", Kind: KindSelect, Options: plain(model.Channels...)},
				},
			},
		},
	}
}

func spreadsheetSchema() *Schema {
	return &Schema{
		Variant: model.VariantSpreadsheet,
		Sections: []Section{
			{
				TitleKey: i18n.SectionGeneral,
				Open:     true,
				Fields: []Field{
					{Name: "dealer_code", Kind: KindDealer, Required: true},
					{Name: "visitor", Kind: KindSelect, Required: true, Options: plain(model.Visitors...)},
					{Name: "visit_type", Kind: KindSelect, Options: plain(model.VisitTypes...)},
				},
			},
			{
				TitleKey: i18n.SectionDiscussion,
				Fields: []Field{
					{Name: "problems", Kind: KindTextArea, Required: true},
					{Name: "suggestions", Kind: KindTextArea},
					{Name: "topics", Kind: KindMultiSelect, Options: plain(model.Topics...)},
					{Name: "stock_count", Kind: KindNumber},
					{Name: "reference_link", Kind: KindText},
				},
			},
			{
				TitleKey: i18n.SectionActions,
				Fields: []Field{
					{Name: "next_actions", Kind: KindTextArea},
					{Name: "action_date", Kind: KindDate},
				},
			},
			{
				TitleKey: i18n.SectionEvaluation,
				Fields: []Field{
					{Name: "uses_app", Kind: KindYesNo, Options: yesNo},
				},
			},
			{
				TitleKey: i18n.SectionFollowUp,
				Fields: []Field{
					{Name: "next_visit_date", Kind: KindDate},
					{Name: "preferred_channel", Kind: KindSelect, Options: plain(model.Channels...)},
				},
			},
		},
	}
}
