package db

import "context"

type Database interface {
	ListDealers(ctx context.Context) ([]Dealer, error)
	UpsertDealers(ctx context.Context, dealers []Dealer) (int64, error)
	InsertVisit(ctx context.Context, visit *Visit) error
	GetVisit(ctx context.Context, id string) (Visit, error)
	Close() error
}
