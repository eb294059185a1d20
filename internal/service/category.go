package service

import (
	"context"
	"database/sql"
	"errors"

	"marketapi/internal/database"
	"marketapi/internal/model"
	"marketapi/internal/repository"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
)

// CategoryService defines the use cases for categories. Category names are
// unique; creation checks the name before inserting.
type CategoryService interface {
	Create(ctx context.Context, data model.CategoryCreate) (*model.Category, error)
	Get(ctx context.Context, id int64) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, id int64, data model.CategoryUpdate) (*model.Category, error)
	Patch(ctx context.Context, id int64, data model.CategoryUpdate) error
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	db    *sql.DB
	uow   *database.UnitOfWork
	store repository.NamedStore[model.Category]
}

// NewCategoryService constructs a CategoryService over the given session.
func NewCategoryService(db *sql.DB, store repository.NamedStore[model.Category]) CategoryService {
	return &categoryService{db: db, uow: database.NewUnitOfWork(db), store: store}
}

func (s *categoryService) Create(ctx context.Context, data model.CategoryCreate) (*model.Category, error) {
	var created *model.Category
	err := s.uow.Do(ctx, func(tx *sql.Tx) error {
		existing, err := s.store.GetByName(ctx, tx, data.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrCategoryExists
		}
		created, _, err = s.store.Add(ctx, tx, data.Fields(), false)
		return err
	})
	if err != nil {
		// A concurrent insert can still trip the unique constraint after the
		// pre-check; report it as the same conflict.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return created, nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	cat, err := s.store.GetOneOrNone(ctx, s.db, byID(id))
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}
	return cat, nil
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.store.GetAll(ctx, s.db)
}

func (s *categoryService) Update(ctx context.Context, id int64, data model.CategoryUpdate) (*model.Category, error) {
	var updated *model.Category
	err := s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrCategoryNotFound
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

func (s *categoryService) Patch(ctx context.Context, id int64, data model.CategoryUpdate) error {
	return s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrCategoryNotFound
		}
		return s.store.Edit(ctx, tx, data, true, byID(id))
	})
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	return s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrCategoryNotFound
		}
		return s.store.Delete(ctx, tx, byID(id))
	})
}
