package dao

import (
	"context"
)

// Service is the persistence contract shared by every conveyor store: run
// reports, scenarios and whatever else needs keyed access plus listing.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}
