// Package dealers loads the dealer reference list and keeps it in a short
// lived, process wide cache.
package dealers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ajans/visit-form/pkg/backend"
	"github.com/ajans/visit-form/pkg/metrics"
	"github.com/ajans/visit-form/pkg/model"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/singleflight"
	"k8s.io/apimachinery/pkg/util/cache"
	"k8s.io/utils/clock"
)

const (
	DefaultTTL = 10 * time.Minute

	loadTimeout = time.Minute

	// the cache has a single slot
	cacheKey = "dealers"
)

var ErrReferenceLoadFailed = errors.New("loading dealers failed")

type Loader struct {
	source backend.ReferenceSource
	ttl    time.Duration
	cache  *cache.Expiring
	group  singleflight.Group
	log    *logrus.Entry
}

func NewLoader(source backend.ReferenceSource, ttl time.Duration) *Loader {
	return NewLoaderWithClock(source, ttl, clock.RealClock{})
}

func NewLoaderWithClock(source backend.ReferenceSource, ttl time.Duration, c clock.Clock) *Loader {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Loader{
		source: source,
		ttl:    ttl,
		cache:  cache.NewExpiringWithClock(c),
		log:    logrus.WithField("component", "dealers"),
	}
}

// Load returns the dealer list sorted by name and the code to name lookup.
// A cached result younger than the TTL is returned without touching the
// backend. On failure the result is empty and the error wraps
// ErrReferenceLoadFailed; failures are not cached.
//
// Concurrent misses share one backend read. That read is bounded by
// loadTimeout rather than by any caller's context; a caller whose context
// ends stops waiting without failing the others.
func (l *Loader) Load(ctx context.Context) (model.Dealers, error) {
	if v, ok := l.cache.Get(cacheKey); ok {
		metrics.DealerLoad(metrics.LoadHit)
		return copyDealers(v.(model.Dealers)), nil
	}

	ch := l.group.DoChan(cacheKey, func() (interface{}, error) {
		if v, ok := l.cache.Get(cacheKey); ok {
			metrics.DealerLoad(metrics.LoadHit)
			return v, nil
		}

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		start := time.Now()
		list, err := l.source.ListDealers(loadCtx)
		if err != nil {
			metrics.DealerLoad(metrics.LoadError)
			l.log.WithError(err).Error("unable to load dealers")
			return nil, err
		}

		metrics.DealerLoad(metrics.LoadMiss)
		d := build(list)
		l.cache.Set(cacheKey, d, l.ttl)
		l.log.WithFields(logrus.Fields{
			"count":    len(d.List),
			"duration": time.Since(start),
		}).Info("loaded dealers")
		return d, nil
	})

	select {
	case <-ctx.Done():
		return emptyDealers(), fmt.Errorf("%w: %w", ErrReferenceLoadFailed, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return emptyDealers(), fmt.Errorf("%w: %w", ErrReferenceLoadFailed, res.Err)
		}
		return copyDealers(res.Val.(model.Dealers)), nil
	}
}

func emptyDealers() model.Dealers {
	return model.Dealers{ByCode: map[string]string{}}
}

// Invalidate drops the cached list so the next Load reads the backend.
func (l *Loader) Invalidate() {
	l.cache.Delete(cacheKey)
}

// build drops incomplete rows, sorts by name and indexes by code. When a
// code appears twice the list keeps its first position and the lookup the
// last name seen, so both sides agree the list is rewritten to that name.
func build(rows []model.Dealer) model.Dealers {
	byCode := make(map[string]string, len(rows))
	var list []model.Dealer
	for _, r := range rows {
		code := strings.TrimSpace(r.Code)
		name := strings.TrimSpace(r.Name)
		if code == "" || name == "" {
			continue
		}
		if _, seen := byCode[code]; !seen {
			list = append(list, model.Dealer{Code: code})
		}
		byCode[code] = name
	}

	for i := range list {
		list[i].Name = byCode[list[i].Code]
	}
	slices.SortStableFunc(list, func(a, b model.Dealer) int {
		return strings.Compare(a.Name, b.Name)
	})

	return model.Dealers{List: list, ByCode: byCode}
}

func copyDealers(d model.Dealers) model.Dealers {
	return model.Dealers{
		List:   slices.Clone(d.List),
		ByCode: maps.Clone(d.ByCode),
	}
}
