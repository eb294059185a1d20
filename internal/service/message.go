package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"marketapi/internal/database"
	"marketapi/internal/model"
	"marketapi/internal/repository"
)

var (
	ErrMessageNotFound     = errors.New("message not found")
	ErrMessageAccessDenied = errors.New("message access denied")
)

// MessageService defines the use cases for direct messages. Sending is
// idempotent for an identical payload from the same sender, and only the
// sender may remove a message through DeleteAsUser.
type MessageService interface {
	Send(ctx context.Context, data model.MessageCreate, senderID int64) (*model.Message, error)
	Get(ctx context.Context, id int64) (*model.Message, error)
	List(ctx context.Context, skip, limit int) ([]model.Message, error)
	ListForUser(ctx context.Context, userID int64, skip, limit int) ([]model.Message, error)
	Update(ctx context.Context, id int64, data model.MessageUpdate) (*model.Message, error)
	Patch(ctx context.Context, id int64, data model.MessageUpdate) error
	Delete(ctx context.Context, id int64) error
	DeleteAsUser(ctx context.Context, id, userID int64) error
}

type messageService struct {
	db    *sql.DB
	uow   *database.UnitOfWork
	store repository.Store[model.Message]
}

// NewMessageService constructs a MessageService over the given session.
func NewMessageService(db *sql.DB, store repository.Store[model.Message]) MessageService {
	return &messageService{db: db, uow: database.NewUnitOfWork(db), store: store}
}

// Send records a message from senderID. A resend with the same recipient,
// item, and text returns the already stored message.
func (s *messageService) Send(ctx context.Context, data model.MessageCreate, senderID int64) (*model.Message, error) {
	var sent *model.Message
	err := s.uow.Do(ctx, func(tx *sql.Tx) error {
		var err error
		sent, _, err = s.store.Add(ctx, tx, data.Fields(senderID), true)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sent, nil
}

func (s *messageService) Get(ctx context.Context, id int64) (*model.Message, error) {
	msg, err := s.store.GetOneOrNone(ctx, s.db, byID(id))
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	return msg, nil
}

func (s *messageService) List(ctx context.Context, skip, limit int) ([]model.Message, error) {
	skip, limit = normalizePage(skip, limit)
	return s.store.GetFiltered(ctx, s.db, limit, skip, repository.Filters{})
}

// ListForUser returns the user's conversation history, sent and received
// merged and ordered newest first.
func (s *messageService) ListForUser(ctx context.Context, userID int64, skip, limit int) ([]model.Message, error) {
	skip, limit = normalizePage(skip, limit)

	sent, err := s.store.GetFiltered(ctx, s.db, limit, skip, repository.Filters{"sender_id": userID})
	if err != nil {
		return nil, err
	}
	received, err := s.store.GetFiltered(ctx, s.db, limit, skip, repository.Filters{"recipient_id": userID})
	if err != nil {
		return nil, err
	}

	merged := append(sent, received...)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

func (s *messageService) Update(ctx context.Context, id int64, data model.MessageUpdate) (*model.Message, error) {
	var updated *model.Message
	err := s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrMessageNotFound
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

func (s *messageService) Patch(ctx context.Context, id int64, data model.MessageUpdate) error {
	return s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrMessageNotFound
		}
		return s.store.Edit(ctx, tx, data, true, byID(id))
	})
}

func (s *messageService) Delete(ctx context.Context, id int64) error {
	return s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrMessageNotFound
		}
		return s.store.Delete(ctx, tx, byID(id))
	})
}

// DeleteAsUser removes the message only when userID is its sender.
func (s *messageService) DeleteAsUser(ctx context.Context, id, userID int64) error {
	return s.uow.Do(ctx, func(tx *sql.Tx) error {
		cur, err := s.store.GetOneOrNone(ctx, tx, byID(id))
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrMessageNotFound
		}
		if cur.SenderID != userID {
			return ErrMessageAccessDenied
		}
		return s.store.Delete(ctx, tx, byID(id))
	})
}
