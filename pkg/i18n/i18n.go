// Package i18n holds the user facing strings of the visit form. Arabic is
// the default language; English exists for operators and tests of the
// fallback path.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	PageTitle          = "page.title"
	FormTitle          = "form.title"
	VisitDate          = "form.visit_date"
	Submit             = "form.submit"
	Submitted          = "form.submitted"
	SubmitFailed       = "form.submit_failed"
	MissingFields      = "form.missing_fields"
	InvalidFields      = "form.invalid_fields"
	NoDealers          = "dealers.empty"
	DealersLoadFailed  = "dealers.load_failed"
	NoCredentials      = "credentials.unavailable"
	OptionYes          = "option.yes"
	OptionNo           = "option.no"
	ChooseOption       = "option.choose"
	SectionGeneral     = "section.general"
	SectionDiscussion  = "section.discussion"
	SectionActions     = "section.actions"
	SectionEvaluation  = "section.evaluation"
	SectionFollowUp    = "section.follow_up"
	FieldPrefix        = "field."
	DefaultLanguageTag = "ar"
)

var (
	supported = []language.Tag{language.Arabic, language.English}
	matcher   = language.NewMatcher(supported)
)

func init() {
	for key, msg := range arabic {
		_ = message.SetString(language.Arabic, key, msg)
	}
	for key, msg := range english {
		_ = message.SetString(language.English, key, msg)
	}
}

// Printer renders messages for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// NewPrinter picks the best supported language for the given tags (for
// example a configured default followed by Accept-Language values). Arabic
// wins when nothing matches.
func NewPrinter(tags ...string) *Printer {
	var wanted []language.Tag
	for _, t := range tags {
		parsed, _, err := language.ParseAcceptLanguage(t)
		if err != nil {
			continue
		}
		wanted = append(wanted, parsed...)
	}

	tag := language.Arabic
	if len(wanted) > 0 {
		_, idx, conf := matcher.Match(wanted...)
		if conf != language.No {
			tag = supported[idx]
		}
	}

	return &Printer{tag: tag, p: message.NewPrinter(tag)}
}

// Sprintf formats the message registered under key.
func (p *Printer) Sprintf(key string, args ...interface{}) string {
	return p.p.Sprintf(key, args...)
}

// Field returns the label of a form field.
func (p *Printer) Field(name string) string {
	return p.p.Sprintf(FieldPrefix + name)
}

func (p *Printer) Lang() string {
	return p.tag.String()
}

// RTL reports whether the language is written right to left.
func (p *Printer) RTL() bool {
	return p.tag == language.Arabic
}
