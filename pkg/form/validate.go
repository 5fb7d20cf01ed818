package form

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/ajans/visit-form/pkg/model"
)

var ErrValidation = errors.New("form validation failed")

// Result lists the fields that block a submission, in form order.
type Result struct {
	Missing []string
	Invalid []string
}

func (r Result) OK() bool {
	return len(r.Missing) == 0 && len(r.Invalid) == 0
}

type ValidationError struct {
	Result
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(e.Invalid, ", "))
	}
	return fmt.Sprintf("%v: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validate checks that every required field has a value. Values that cannot
// be decoded at all (a number that is not a number, an option the field does
// not offer, a dealer code outside the loaded list) are reported as invalid.
// Free text is never checked beyond presence.
func (s *Schema) Validate(values url.Values, dealers model.Dealers) Result {
	var res Result
	required := s.Required()

	for _, f := range s.Fields() {
		vals := nonEmpty(values[f.Name])
		if len(vals) == 0 {
			if required.Has(f.Name) {
				res.Missing = append(res.Missing, f.Name)
			}
			continue
		}

		if !valid(f, vals, dealers) {
			res.Invalid = append(res.Invalid, f.Name)
		}
	}

	return res
}

func valid(f Field, vals []string, dealers model.Dealers) bool {
	switch f.Kind {
	case KindDealer:
		_, ok := dealers.Name(vals[0])
		return ok
	case KindSelect, KindYesNo:
		return f.allowed().Has(vals[0])
	case KindMultiSelect:
		return f.allowed().HasAll(vals...)
	case KindNumber:
		_, err := strconv.Atoi(vals[0])
		return err == nil
	case KindDate:
		_, err := civil.ParseDate(vals[0])
		return err == nil
	}
	return true
}

// nonEmpty trims the values and drops blank ones.
func nonEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
