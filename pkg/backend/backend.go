package backend

import (
	"context"

	"github.com/ajans/visit-form/pkg/model"
)

// ReferenceSource reads the dealer reference list.
type ReferenceSource interface {
	ListDealers(ctx context.Context) ([]model.Dealer, error)
}

// Sink writes one visit record. A nil error means the backend acknowledged
// the write.
type Sink interface {
	Submit(ctx context.Context, record model.VisitRecord) error
}

// Backend is a tabular store that serves dealers and accepts visits.
type Backend interface {
	ReferenceSource
	Sink
	Name() string
	Close() error
}
