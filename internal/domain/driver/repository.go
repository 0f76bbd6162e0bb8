package driver

import "context"

type Repository interface {
	List(ctx context.Context) ([]Driver, error)
	GetByID(ctx context.Context, driverID string) (Driver, bool, error)
	Create(ctx context.Context, item Driver) error
	Update(ctx context.Context, item Driver) error
	Delete(ctx context.Context, driverID string) error
}
