package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"marketapi/internal/database"
	"marketapi/internal/model"
	"marketapi/internal/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// UserService defines the account use cases. Emails are unique and passwords
// are stored as bcrypt hashes.
type UserService interface {
	Register(ctx context.Context, data model.UserRegister) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, skip, limit int) ([]model.User, error)
	Update(ctx context.Context, id int64, data model.UserUpdate) (*model.User, error)
	Patch(ctx context.Context, id int64, data model.UserUpdate) error
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	db    *sql.DB
	uow   *database.UnitOfWork
	store repository.Store[model.User]
}

// NewUserService constructs a UserService over the given session.
func NewUserService(db *sql.DB, store repository.Store[model.User]) UserService {
	return &userService{db: db, uow: database.NewUnitOfWork(db), store: store}
}

// Register creates an account for an unused email. The plaintext password is
// hashed before anything touches the database.
func (s *userService) Register(ctx context.Context, data model.UserRegister) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created *model.User
	err = s.uow.Do(ctx, func(tx *sql.Tx) error {
		existing, err := s.store.GetOneOrNone(ctx, tx, repository.Filters{"email": data.Email})
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrUserExists
		}
		fields := repository.Fields{
			"email":           data.Email,
			"hashed_password": string(hashed),
			"name":            data.Name,
			"phone":           nil,
		}
		if data.Phone != nil {
			fields["phone"] = *data.Phone
		}
		created, _, err = s.store.Add(ctx, tx, fields, false)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return created, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.store.GetOneOrNone(ctx, s.db, byID(id))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.store.GetOneOrNone(ctx, s.db, repository.Filters{"email": email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, skip, limit int) ([]model.User, error) {
	skip, limit = normalizePage(skip, limit)
	return s.store.GetFiltered(ctx, s.db, limit, skip, repository.Filters{})
}

func (s *userService) Update(ctx context.Context, id int64, data model.UserUpdate) (*model.User, error) {
	var updated *model.User
	err := s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrUserNotFound
		}
		if err := s.store.Edit(ctx, tx, data, false, byID(id)); err != nil {
			return err
		}
		updated, err = s.store.GetOneOrNone(ctx, tx, byID(id))
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return updated, nil
}

func (s *userService) Patch(ctx context.Context, id int64, data model.UserUpdate) error {
	err := s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrUserNotFound
		}
		return s.store.Edit(ctx, tx, data, true, byID(id))
	})
	if errors.Is(err, repository.ErrDuplicateKey) {
		return ErrUserExists
	}
	return err
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrUserNotFound
		}
		return s.store.Delete(ctx, tx, byID(id))
	})
}
