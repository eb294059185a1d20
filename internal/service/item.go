package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"marketapi/internal/database"
	"marketapi/internal/model"
	"marketapi/internal/repository"
	"marketapi/internal/storage"
)

var (
	ErrItemNotFound   = errors.New("item not found")
	ErrItemNoPhoto    = errors.New("item has no photo")
	ErrPhotoReaderNil = errors.New("photo reader is nil")
)

const photoURLExpiry = 15 * time.Minute

// ItemService defines the use cases for marketplace items, including the
// photo attachment flow backed by object storage.
type ItemService interface {
	Create(ctx context.Context, data model.ItemCreate) (*model.Item, error)
	Get(ctx context.Context, id int64) (*model.Item, error)
	List(ctx context.Context, filter *model.ItemFilter, skip, limit int) ([]model.Item, error)
	ListForUser(ctx context.Context, userID int64, skip, limit int) ([]model.Item, error)
	Update(ctx context.Context, id int64, data model.ItemUpdate) (*model.Item, error)
	Patch(ctx context.Context, id int64, data model.ItemUpdate) error
	Delete(ctx context.Context, id int64) error

	// AttachPhoto uploads the content to object storage, records the object
	// key on the item, and removes the object again if the record write
	// fails.
	AttachPhoto(ctx context.Context, id int64, r io.Reader, originalFilename, contentType string, size int64) (*model.Item, error)

	// PhotoURL returns a time-limited download URL for the item's photo.
	PhotoURL(ctx context.Context, id int64) (string, error)
}

type itemService struct {
	db    *sql.DB
	uow   *database.UnitOfWork
	store repository.Store[model.Item]
	objs  storage.Storage
}

// NewItemService constructs an ItemService over the given session and object
// storage client.
func NewItemService(db *sql.DB, store repository.Store[model.Item], objs storage.Storage) ItemService {
	return &itemService{db: db, uow: database.NewUnitOfWork(db), store: store, objs: objs}
}

func (s *itemService) Create(ctx context.Context, data model.ItemCreate) (*model.Item, error) {
	var created *model.Item
	err := s.uow.Do(ctx, func(tx *sql.Tx) error {
		var err error
		created, _, err = s.store.Add(ctx, tx, data.Fields(), false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *itemService) Get(ctx context.Context, id int64) (*model.Item, error) {
	item, err := s.store.GetOneOrNone(ctx, s.db, byID(id))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (s *itemService) List(ctx context.Context, filter *model.ItemFilter, skip, limit int) ([]model.Item, error) {
	skip, limit = normalizePage(skip, limit)
	filters := repository.Filters{}
	if filter != nil {
		filters = filter.Filters()
	}
	return s.store.GetFiltered(ctx, s.db, limit, skip, filters)
}

func (s *itemService) ListForUser(ctx context.Context, userID int64, skip, limit int) ([]model.Item, error) {
	skip, limit = normalizePage(skip, limit)
	return s.store.GetFiltered(ctx, s.db, limit, skip, repository.Filters{"user_id": userID})
}

func (s *itemService) Update(ctx context.Context, id int64, data model.ItemUpdate) (*model.Item, error) {
	var updated *model.Item
	err := s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrItemNotFound
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

func (s *itemService) Patch(ctx context.Context, id int64, data model.ItemUpdate) error {
	return s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrItemNotFound
		}
		return s.store.Edit(ctx, tx, data, true, byID(id))
	})
}

func (s *itemService) Delete(ctx context.Context, id int64) error {
	return s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrItemNotFound
		}
		return s.store.Delete(ctx, tx, byID(id))
	})
}

func (s *itemService) AttachPhoto(ctx context.Context, id int64, r io.Reader, originalFilename, contentType string, size int64) (*model.Item, error) {
	if r == nil {
		return nil, ErrPhotoReaderNil
	}

	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("items", uuid.New().String()+ext))

	objInfo, err := s.objs.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	var updated *model.Item
	err = s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrItemNotFound
		}
		fields := repository.Fields{"photo_path": objInfo.Key}
		if err := s.store.Edit(ctx, tx, fields, true, byID(id)); err != nil {
			return err
		}
		updated, err = s.store.GetOneOrNone(ctx, tx, byID(id))
		return err
	})
	if err != nil {
		// The record write failed; remove the freshly stored object so no
		// orphan remains.
		if delErr := s.objs.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("record photo failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, err
	}
	return updated, nil
}

func (s *itemService) PhotoURL(ctx context.Context, id int64) (string, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if item.PhotoPath == nil {
		return "", ErrItemNoPhoto
	}
	return s.objs.PresignGet(ctx, *item.PhotoPath, photoURLExpiry)
}
