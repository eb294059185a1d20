package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketapi/internal/model"
	"marketapi/internal/repository"
	repoMocks "marketapi/internal/repository/mocks"
)

func TestReviewCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, dbMock := newMockDB(t)
	store := new(repoMocks.MockStore[model.Review])
	svc := NewReviewService(db, store)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	existing := &model.Review{ID: 9, ItemID: 3, UserID: 1, Rating: 4.0, Text: "solid"}
	store.On("Add", mock.Anything, mock.Anything, mock.Anything, true).
		Return(existing, repository.AddReused, nil)

	rev, err := svc.Create(ctx, model.ReviewCreate{ItemID: 3, UserID: 1, Rating: 5.0, Text: "again"})
	require.NoError(t, err)

	// The second submission resolves to the stored review.
	assert.Equal(t, existing, rev)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestItemAverageRating(t *testing.T) {
	ctx := context.Background()

	t.Run("is the mean of the fetched ratings", func(t *testing.T) {
		db, _ := newMockDB(t)
		store := new(repoMocks.MockStore[model.Review])
		svc := NewReviewService(db, store)

		reviews := []model.Review{
			{ID: 1, ItemID: 3, Rating: 2.0},
			{ID: 2, ItemID: 3, Rating: 4.0},
			{ID: 3, ItemID: 3, Rating: 6.0},
		}
		store.On("GetFiltered", mock.Anything, mock.Anything, DefaultLimit, 0,
			repository.Filters{"item_id": int64(3)}).
			Return(reviews, nil)

		avg, err := svc.ItemAverageRating(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, 4.0, avg)
	})

	t.Run("no reviews averages to zero", func(t *testing.T) {
		db, _ := newMockDB(t)
		store := new(repoMocks.MockStore[model.Review])
		svc := NewReviewService(db, store)

		store.On("GetFiltered", mock.Anything, mock.Anything, DefaultLimit, 0,
			repository.Filters{"item_id": int64(3)}).
			Return([]model.Review{}, nil)

		avg, err := svc.ItemAverageRating(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, 0.0, avg)
	})
}

func TestReviewList(t *testing.T) {
	ctx := context.Background()

	t.Run("set filter fields become predicates", func(t *testing.T) {
		db, _ := newMockDB(t)
		store := new(repoMocks.MockStore[model.Review])
		svc := NewReviewService(db, store)

		itemID := int64(3)
		reviews := []model.Review{{ID: 9, ItemID: 3, UserID: 1, Rating: 4.0}}
		store.On("GetFiltered", mock.Anything, mock.Anything, DefaultLimit, 0,
			repository.Filters{"item_id": int64(3)}).Return(reviews, nil)

		got, err := svc.List(ctx, &model.ReviewFilter{ItemID: &itemID}, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, reviews, got)
		store.AssertExpectations(t)
	})

	t.Run("nil filter lists everything", func(t *testing.T) {
		db, _ := newMockDB(t)
		store := new(repoMocks.MockStore[model.Review])
		svc := NewReviewService(db, store)

		store.On("GetFiltered", mock.Anything, mock.Anything, DefaultLimit, 0,
			repository.Filters{}).Return([]model.Review{}, nil)

		got, err := svc.List(ctx, nil, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
		store.AssertExpectations(t)
	})
}

func TestReviewPatchNotFound(t *testing.T) {
	ctx := context.Background()
	db, dbMock := newMockDB(t)
	store := new(repoMocks.MockStore[model.Review])
	svc := NewReviewService(db, store)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	store.On("GetOneOrNone", mock.Anything, mock.Anything, repository.Filters{"id": int64(8)}).
		Return(nil, nil)

	rating := 3.0
	err := svc.Patch(ctx, 8, model.ReviewUpdate{Rating: &rating})
	assert.ErrorIs(t, err, ErrReviewNotFound)
	store.AssertNotCalled(t, "Edit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
