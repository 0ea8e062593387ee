package application

import "context"

// Repository persists the full application collection.
type Repository interface {
	Load(ctx context.Context) ([]Application, error)
	SaveAll(ctx context.Context, apps []Application) error
}
