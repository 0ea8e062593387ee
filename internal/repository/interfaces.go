package repository

import (
	"context"

	"github.com/ptdn/hoso-portal/internal/domain/application"
)

// ApplicationRepository persists the application collection as a whole.
// Load returns records in insertion order; SaveAll rewrites the full
// collection after every mutation. There are no incremental writes.
type ApplicationRepository interface {
	Load(ctx context.Context) ([]application.Application, error)
	SaveAll(ctx context.Context, apps []application.Application) error
}
