package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketapi/internal/model"
)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, data model.ReviewCreate) (*model.Review, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Get(ctx context.Context, id int64) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) List(ctx context.Context, filter *model.ReviewFilter, skip, limit int) ([]model.Review, error) {
	args := m.Called(ctx, filter, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewService) ListForItem(ctx context.Context, itemID int64, skip, limit int) ([]model.Review, error) {
	args := m.Called(ctx, itemID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewService) ItemAverageRating(ctx context.Context, itemID int64) (float64, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, id int64, data model.ReviewUpdate) (*model.Review, error) {
	args := m.Called(ctx, id, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Patch(ctx context.Context, id int64, data model.ReviewUpdate) error {
	args := m.Called(ctx, id, data)
	return args.Error(0)
}

func (m *MockReviewService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
