package service

import (
	"context"
	"database/sql"
	"errors"

	"marketapi/internal/database"
	"marketapi/internal/model"
	"marketapi/internal/repository"
)

var ErrReviewNotFound = errors.New("review not found")

// ReviewService defines the use cases for item reviews. A user reviews an
// item at most once; a repeated create resolves to the existing review.
type ReviewService interface {
	Create(ctx context.Context, data model.ReviewCreate) (*model.Review, error)
	Get(ctx context.Context, id int64) (*model.Review, error)
	List(ctx context.Context, filter *model.ReviewFilter, skip, limit int) ([]model.Review, error)
	ListForItem(ctx context.Context, itemID int64, skip, limit int) ([]model.Review, error)
	ItemAverageRating(ctx context.Context, itemID int64) (float64, error)
	Update(ctx context.Context, id int64, data model.ReviewUpdate) (*model.Review, error)
	Patch(ctx context.Context, id int64, data model.ReviewUpdate) error
	Delete(ctx context.Context, id int64) error
}

type reviewService struct {
	db    *sql.DB
	uow   *database.UnitOfWork
	store repository.Store[model.Review]
}

// NewReviewService constructs a ReviewService over the given session.
func NewReviewService(db *sql.DB, store repository.Store[model.Review]) ReviewService {
	return &reviewService{db: db, uow: database.NewUnitOfWork(db), store: store}
}

// Create inserts the review, tolerating a repeat by the same user for the
// same item. The returned review is the inserted or the pre-existing row.
func (s *reviewService) Create(ctx context.Context, data model.ReviewCreate) (*model.Review, error) {
	var created *model.Review
	err := s.uow.Do(ctx, func(tx *sql.Tx) error {
		var err error
		created, _, err = s.store.Add(ctx, tx, data.Fields(), true)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *reviewService) Get(ctx context.Context, id int64) (*model.Review, error) {
	rev, err := s.store.GetOneOrNone(ctx, s.db, byID(id))
	if err != nil {
		return nil, err
	}
	if rev == nil {
		return nil, ErrReviewNotFound
	}
	return rev, nil
}

func (s *reviewService) List(ctx context.Context, filter *model.ReviewFilter, skip, limit int) ([]model.Review, error) {
	skip, limit = normalizePage(skip, limit)
	filters := repository.Filters{}
	if filter != nil {
		filters = filter.Filters()
	}
	return s.store.GetFiltered(ctx, s.db, limit, skip, filters)
}

func (s *reviewService) ListForItem(ctx context.Context, itemID int64, skip, limit int) ([]model.Review, error) {
	skip, limit = normalizePage(skip, limit)
	return s.store.GetFiltered(ctx, s.db, limit, skip, repository.Filters{"item_id": itemID})
}

// ItemAverageRating returns the mean rating of the item's reviews, computed
// over the default page. An item with no reviews averages to zero.
func (s *reviewService) ItemAverageRating(ctx context.Context, itemID int64) (float64, error) {
	reviews, err := s.ListForItem(ctx, itemID, 0, DefaultLimit)
	if err != nil {
		return 0, err
	}
	if len(reviews) == 0 {
		return 0.0, nil
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	return sum / float64(len(reviews)), nil
}

func (s *reviewService) Update(ctx context.Context, id int64, data model.ReviewUpdate) (*model.Review, error) {
	var updated *model.Review
	err := s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrReviewNotFound
		}
		if err := s.store.Edit(ctx, tx, data, false, byID(id)); err != nil {
			return err
		}
		updated, err = s.store.GetOneOrNone(ctx, tx, byID(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *reviewService) Patch(ctx context.Context, id int64, data model.ReviewUpdate) error {
	return s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrReviewNotFound
		}
		return s.store.Edit(ctx, tx, data, true, byID(id))
	})
}

func (s *reviewService) Delete(ctx context.Context, id int64) error {
	return s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrReviewNotFound
		}
		return s.store.Delete(ctx, tx, byID(id))
	})
}
