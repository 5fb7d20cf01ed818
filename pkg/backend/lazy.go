package backend

import (
	"context"
	"sync"
	"time"

	"github.com/ajans/visit-form/pkg/model"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// DefaultRetryInterval is how long a failed open is reported before the
// next attempt.
const DefaultRetryInterval = 30 * time.Second

// Opener builds a backend. It is called again after a failure.
type Opener func(ctx context.Context) (Backend, error)

// Lazy opens its backend on first use. Missing credentials or an
// unreachable API fail the requests made while they last; once the retry
// interval has passed the next request opens the backend again.
type Lazy struct {
	name  string
	open  Opener
	retry time.Duration
	clock clock.Clock
	log   *logrus.Entry

	mu       sync.Mutex
	backend  Backend
	err      error
	failedAt time.Time
}

func NewLazy(name string, open Opener, retry time.Duration) *Lazy {
	return NewLazyWithClock(name, open, retry, clock.RealClock{})
}

func NewLazyWithClock(name string, open Opener, retry time.Duration, c clock.Clock) *Lazy {
	if retry <= 0 {
		retry = DefaultRetryInterval
	}

	return &Lazy{
		name:  name,
		open:  open,
		retry: retry,
		clock: c,
		log:   logrus.WithField("backend", name),
	}
}

func (l *Lazy) get(ctx context.Context) (Backend, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.backend != nil {
		return l.backend, nil
	}
	if l.err != nil && l.clock.Since(l.failedAt) < l.retry {
		return nil, l.err
	}

	// clients keep the context they were built with
	b, err := l.open(context.WithoutCancel(ctx))
	if err != nil {
		l.err = err
		l.failedAt = l.clock.Now()
		l.log.WithError(err).Warnf("unable to open backend, retrying in %s", l.retry)
		return nil, err
	}

	l.backend, l.err = b, nil
	l.log.Info("backend opened")
	return b, nil
}

func (l *Lazy) Name() string {
	return l.name
}

func (l *Lazy) ListDealers(ctx context.Context) ([]model.Dealer, error) {
	b, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return b.ListDealers(ctx)
}

func (l *Lazy) Submit(ctx context.Context, rec model.VisitRecord) error {
	b, err := l.get(ctx)
	if err != nil {
		return err
	}
	return b.Submit(ctx, rec)
}

func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.backend == nil {
		return nil
	}
	err := l.backend.Close()
	l.backend = nil
	return err
}
