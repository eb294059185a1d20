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
	ErrLocationNotFound = errors.New("location not found")
	ErrLocationExists   = errors.New("location already exists")
)

// LocationService defines the use cases for locations. Locations declare no
// natural key, so creation performs no pre-insert check; a database-level
// conflict is still surfaced as ErrLocationExists.
type LocationService interface {
	Create(ctx context.Context, data model.LocationCreate) (*model.Location, error)
	Get(ctx context.Context, id int64) (*model.Location, error)
	List(ctx context.Context, filter *model.LocationFilter, skip, limit int) ([]model.Location, error)
	Update(ctx context.Context, id int64, data model.LocationUpdate) (*model.Location, error)
	Patch(ctx context.Context, id int64, data model.LocationUpdate) error
	Delete(ctx context.Context, id int64) error
}

type locationService struct {
	db    *sql.DB
	uow   *database.UnitOfWork
	store repository.Store[model.Location]
}

// NewLocationService constructs a LocationService over the given session.
func NewLocationService(db *sql.DB, store repository.Store[model.Location]) LocationService {
	return &locationService{db: db, uow: database.NewUnitOfWork(db), store: store}
}

func (s *locationService) Create(ctx context.Context, data model.LocationCreate) (*model.Location, error) {
	var created *model.Location
	err := s.uow.Do(ctx, func(tx *sql.Tx) error {
		var err error
		created, _, err = s.store.Add(ctx, tx, data.Fields(), false)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrLocationExists
		}
		return nil, err
	}
	return created, nil
}

func (s *locationService) Get(ctx context.Context, id int64) (*model.Location, error) {
	loc, err := s.store.GetOneOrNone(ctx, s.db, byID(id))
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, ErrLocationNotFound
	}
	return loc, nil
}

func (s *locationService) List(ctx context.Context, filter *model.LocationFilter, skip, limit int) ([]model.Location, error) {
	if filter == nil {
		return s.store.GetAll(ctx, s.db)
	}
	skip, limit = normalizePage(skip, limit)
	return s.store.GetFiltered(ctx, s.db, limit, skip, filter.Filters())
}

func (s *locationService) Update(ctx context.Context, id int64, data model.LocationUpdate) (*model.Location, error) {
	var updated *model.Location
	err := s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrLocationNotFound
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

func (s *locationService) Patch(ctx context.Context, id int64, data model.LocationUpdate) error {
	return s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrLocationNotFound
		}
		return s.store.Edit(ctx, tx, data, true, byID(id))
	})
}

func (s *locationService) Delete(ctx context.Context, id int64) error {
	return s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrLocationNotFound
		}
		return s.store.Delete(ctx, tx, byID(id))
	})
}
