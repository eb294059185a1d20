package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketapi/internal/repository"
)

// MockStore is a hand-written testify mock of repository.Store[T].
type MockStore[T any] struct {
	mock.Mock
}

func (m *MockStore[T]) GetOneOrNone(ctx context.Context, q repository.Querier, filters repository.Filters) (*T, error) {
	args := m.Called(ctx, q, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockStore[T]) GetAll(ctx context.Context, q repository.Querier) ([]T, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockStore[T]) GetFiltered(ctx context.Context, q repository.Querier, limit, offset int, filters repository.Filters) ([]T, error) {
	args := m.Called(ctx, q, limit, offset, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockStore[T]) Add(ctx context.Context, q repository.Querier, data repository.Fields, ignoreDuplicates bool) (*T, repository.AddOutcome, error) {
	args := m.Called(ctx, q, data, ignoreDuplicates)
	outcome := args.Get(1).(repository.AddOutcome)
	if args.Get(0) == nil {
		return nil, outcome, args.Error(2)
	}
	return args.Get(0).(*T), outcome, args.Error(2)
}

func (m *MockStore[T]) Edit(ctx context.Context, q repository.Querier, data repository.FieldSource, excludeUnset bool, filters repository.Filters) error {
	args := m.Called(ctx, q, data, excludeUnset, filters)
	return args.Error(0)
}

func (m *MockStore[T]) Delete(ctx context.Context, q repository.Querier, filters repository.Filters) error {
	args := m.Called(ctx, q, filters)
	return args.Error(0)
}

// MockNamedStore adds GetByName on top of MockStore.
type MockNamedStore[T any] struct {
	MockStore[T]
}

func (m *MockNamedStore[T]) GetByName(ctx context.Context, q repository.Querier, name string) (*T, error) {
	args := m.Called(ctx, q, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}
