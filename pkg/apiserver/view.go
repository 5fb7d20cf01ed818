package apiserver

import (
	"net/url"

	"github.com/ajans/visit-form/pkg/form"
	"github.com/ajans/visit-form/pkg/i18n"
	"github.com/ajans/visit-form/pkg/model"
	"github.com/ajans/visit-form/pkg/visit"
	"k8s.io/apimachinery/pkg/util/sets"
)

type pageData struct {
	Lang    string
	Dir     string
	Title   string
	Heading string

	// Error replaces the form entirely.
	Error string

	VisitDate   string
	Today       string
	Sections    []sectionView
	SubmitLabel string
	Result      *visit.Outcome
}

type sectionView struct {
	Title  string
	Open   bool
	Fields []fieldView
}

type fieldView struct {
	Name     string
	Label    string
	Kind     string
	Required bool
	Flagged  bool
	Value    string
	Options  []optionView
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

func basePage(p *i18n.Printer) pageData {
	dir := "ltr"
	if p.RTL() {
		dir = "rtl"
	}
	return pageData{
		Lang:    p.Lang(),
		Dir:     dir,
		Title:   p.Sprintf(i18n.PageTitle),
		Heading: p.Sprintf(i18n.FormTitle),
	}
}

func (h *Handler) errorPage(p *i18n.Printer, msg string) pageData {
	page := basePage(p)
	page.Error = msg
	return page
}

// formPageData builds the form view. values are the user's previous input,
// shown again after a failed submission.
func (h *Handler) formPageData(p *i18n.Printer, dealers model.Dealers, values url.Values, out *visit.Outcome) pageData {
	today := h.svc.Today().String()

	page := basePage(p)
	page.VisitDate = p.Sprintf(i18n.VisitDate, today)
	page.Today = today
	page.SubmitLabel = p.Sprintf(i18n.Submit)
	page.Result = out

	flagged := sets.NewString()
	if out != nil {
		flagged.Insert(out.Missing...)
		flagged.Insert(out.Invalid...)
	}

	for _, sec := range h.svc.Schema().Sections {
		sv := sectionView{
			Title: p.Sprintf(sec.TitleKey),
			Open:  sec.Open,
		}
		for _, f := range sec.Fields {
			fv := fieldView{
				Name:     f.Name,
				Label:    p.Field(f.Name),
				Kind:     string(f.Kind),
				Required: f.Required,
				Flagged:  flagged.Has(f.Name),
				Value:    values.Get(f.Name),
			}
			// a section holding a flagged field opens so the user sees it
			if fv.Flagged {
				sv.Open = true
			}
			if f.Kind == form.KindDate && fv.Value == "" {
				fv.Value = today
			}
			fv.Options = options(p, f, dealers, values[f.Name])
			sv.Fields = append(sv.Fields, fv)
		}
		page.Sections = append(page.Sections, sv)
	}

	return page
}

func options(p *i18n.Printer, f form.Field, dealers model.Dealers, chosen []string) []optionView {
	selected := sets.NewString(chosen...)

	if f.Kind == form.KindDealer {
		opts := make([]optionView, len(dealers.List))
		for i, d := range dealers.List {
			opts[i] = optionView{Value: d.Code, Label: d.Name, Selected: selected.Has(d.Code)}
		}
		return opts
	}

	opts := make([]optionView, len(f.Options))
	for i, o := range f.Options {
		label := o.Value
		if o.LabelKey != "" {
			label = p.Sprintf(o.LabelKey)
		}
		opts[i] = optionView{Value: o.Value, Label: label, Selected: selected.Has(o.Value)}
	}

	// a yes/no question starts on its first answer, as the select does
	if f.Kind == form.KindYesNo && selected.Len() == 0 && len(opts) > 0 {
		opts[0].Selected = true
	}

	// an optional select can be left unanswered
	if f.Kind == form.KindSelect && !f.Required {
		choose := optionView{Label: p.Sprintf(i18n.ChooseOption), Selected: selected.Len() == 0 || selected.Has("")}
		opts = append([]optionView{choose}, opts...)
	}
	return opts
}

func yesNo(b bool) string {
	if b {
		return form.AnswerYes
	}
	return form.AnswerNo
}
