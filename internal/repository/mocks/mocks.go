package mocks

import (
	"context"

	"github.com/ptdn/hoso-portal/internal/domain/application"
	"github.com/stretchr/testify/mock"
)

// ApplicationRepository is a mock for repository.ApplicationRepository.
type ApplicationRepository struct {
	mock.Mock
}

func (m *ApplicationRepository) Load(ctx context.Context) ([]application.Application, error) {
	args := m.Called(ctx)
	if apps, ok := args.Get(0).([]application.Application); ok {
		return apps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApplicationRepository) SaveAll(ctx context.Context, apps []application.Application) error {
	args := m.Called(ctx, apps)
	return args.Error(0)
}
