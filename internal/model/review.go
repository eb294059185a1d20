package model

import (
	"time"

	"marketapi/internal/query"
	"marketapi/internal/repository"
)

// Review is a user's rating of an item. One review per (item, user) pair;
// that pair is the natural key used for duplicate detection.
type Review struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	UserID    int64     `json:"user_id"`
	Rating    float64   `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewCreate is the validated payload for creating a review.
type ReviewCreate struct {
	ItemID int64   `json:"item_id"`
	UserID int64   `json:"user_id"`
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
}

// Fields returns the insert columns for the payload.
func (r ReviewCreate) Fields() repository.Fields {
	return repository.Fields{
		"item_id": r.ItemID,
		"user_id": r.UserID,
		"rating":  r.Rating,
		"text":    r.Text,
	}
}

// ReviewUpdate serves both full updates and sparse patches.
type ReviewUpdate struct {
	Rating *float64 `json:"rating"`
	Text   *string  `json:"text"`
}

// EditFields implements repository.FieldSource.
func (u ReviewUpdate) EditFields(excludeUnset bool) repository.Fields {
	f := repository.Fields{}
	if !excludeUnset || u.Rating != nil {
		f["rating"] = query.Value(u.Rating)
	}
	if !excludeUnset || u.Text != nil {
		f["text"] = query.Value(u.Text)
	}
	return f
}

// ReviewFilter narrows review listings; unset fields match everything.
type ReviewFilter struct {
	ItemID *int64 `json:"item_id"`
	UserID *int64 `json:"user_id"`
}

// Filters returns the equality predicates for the set fields.
func (f ReviewFilter) Filters() repository.Filters {
	return query.New().
		Int64("item_id", f.ItemID).
		Int64("user_id", f.UserID).
		Filters()
}
