// Package visit runs a submission: validate the form values, then write the
// record with a single backend call.
package visit

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/ajans/visit-form/pkg/backend"
	"github.com/ajans/visit-form/pkg/form"
	"github.com/ajans/visit-form/pkg/i18n"
	"github.com/ajans/visit-form/pkg/metrics"
	"github.com/ajans/visit-form/pkg/model"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

var ErrWriteFailed = errors.New("writing visit failed")

// Outcome is what the user sees after pressing submit.
type Outcome struct {
	Success bool
	Message string
	Missing []string
	Invalid []string
}

type Service struct {
	schema  *form.Schema
	sink    backend.Sink
	backend string
	clock   clock.Clock
	log     *logrus.Entry
}

func NewService(schema *form.Schema, sink backend.Sink, backendName string) *Service {
	return NewServiceWithClock(schema, sink, backendName, clock.RealClock{})
}

func NewServiceWithClock(schema *form.Schema, sink backend.Sink, backendName string, c clock.Clock) *Service {
	return &Service{
		schema:  schema,
		sink:    sink,
		backend: backendName,
		clock:   c,
		log: logrus.WithFields(logrus.Fields{
			"component": "visit",
			"variant":   schema.Variant,
		}),
	}
}

func (s *Service) Schema() *form.Schema {
	return s.schema
}

// Today is the visit date recorded for submissions made now.
func (s *Service) Today() civil.Date {
	return civil.DateOf(s.clock.Now())
}

// Submit validates values against the form and, when they pass, writes the
// record. dealers is the reference list the caller loaded for this request;
// dealer codes and names are checked against it. A failed validation never
// reaches the backend.
func (s *Service) Submit(ctx context.Context, values url.Values, dealers model.Dealers, p *i18n.Printer) Outcome {
	variant := string(s.schema.Variant)

	rec, err := s.schema.Decode(values, dealers, s.Today())
	if err != nil {
		var verr *form.ValidationError
		if !errors.As(err, &verr) {
			return Outcome{Message: p.Sprintf(i18n.SubmitFailed, err.Error())}
		}

		metrics.Submission(variant, metrics.StatusInvalid)
		s.log.WithFields(logrus.Fields{
			"missing": verr.Missing,
			"invalid": verr.Invalid,
		}).Info("submission rejected")
		return Outcome{
			Message: validationMessage(p, verr.Result),
			Missing: verr.Missing,
			Invalid: verr.Invalid,
		}
	}

	ok, msg := s.Write(ctx, rec, p)
	return Outcome{Success: ok, Message: msg}
}

// Write performs one synchronous backend write and reports the localized
// result. There are no retries.
func (s *Service) Write(ctx context.Context, rec model.VisitRecord, p *i18n.Printer) (bool, string) {
	variant := string(s.schema.Variant)
	log := s.log.WithFields(logrus.Fields{
		"dealer":  rec.DealerCode,
		"visitor": rec.Visitor,
		"backend": s.backend,
	})

	start := time.Now()
	err := s.sink.Submit(ctx, rec)
	metrics.ObserveWrite(s.backend, time.Since(start))

	if err != nil {
		metrics.Submission(variant, metrics.StatusFailure)
		log.WithError(fmt.Errorf("%w: %v", ErrWriteFailed, err)).Error("unable to write visit")
		return false, p.Sprintf(i18n.SubmitFailed, err.Error())
	}

	metrics.Submission(variant, metrics.StatusSuccess)
	log.Info("visit written")
	return true, p.Sprintf(i18n.Submitted)
}

func validationMessage(p *i18n.Printer, res form.Result) string {
	var parts []string
	if len(res.Missing) > 0 {
		parts = append(parts, p.Sprintf(i18n.MissingFields, labels(p, res.Missing)))
	}
	if len(res.Invalid) > 0 {
		parts = append(parts, p.Sprintf(i18n.InvalidFields, labels(p, res.Invalid)))
	}
	return strings.Join(parts, " ")
}

func labels(p *i18n.Printer, names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = p.Field(n)
	}
	return strings.Join(out, "، ")
}
