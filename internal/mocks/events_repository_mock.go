// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/scoop-service/internal/repository"
)

type MockEventsRepositoryInterface struct {
	mock.Mock
}

func (m *MockEventsRepositoryInterface) Create(ctx context.Context, doc *repository.EventDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockEventsRepositoryInterface) CreateMany(ctx context.Context, docs []*repository.EventDocument) error {
	args := m.Called(ctx, docs)
	return args.Error(0)
}

func (m *MockEventsRepositoryInterface) Query(ctx context.Context, opts repository.EventQueryOptions) ([]*repository.EventDocument, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.EventDocument), args.Error(1)
}

func (m *MockEventsRepositoryInterface) Count(ctx context.Context, opts repository.EventQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}
