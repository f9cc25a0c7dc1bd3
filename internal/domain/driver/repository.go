package driver

import "context"

// Repository describes driver reference data needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Driver, error)
}
