package model

import (
	"time"

	"marketapi/internal/query"
	"marketapi/internal/repository"
)

// Item is a marketplace listing. Category, location, and owner are referenced
// by id; the item does not own the referenced rows.
type Item struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	CategoryID  int64     `json:"category_id"`
	LocationID  int64     `json:"location_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	IsActive    bool      `json:"is_active"`
	PhotoPath   *string   `json:"photo_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemCreate is the validated payload for creating an item.
type ItemCreate struct {
	UserID      int64   `json:"user_id"`
	CategoryID  int64   `json:"category_id"`
	LocationID  int64   `json:"location_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	IsActive    bool    `json:"is_active"`
}

// Fields returns the insert columns for the payload.
func (i ItemCreate) Fields() repository.Fields {
	return repository.Fields{
		"user_id":     i.UserID,
		"category_id": i.CategoryID,
		"location_id": i.LocationID,
		"title":       i.Title,
		"description": query.Value(i.Description),
		"price":       i.Price,
		"is_active":   i.IsActive,
	}
}

// ItemUpdate serves both full updates and sparse patches.
type ItemUpdate struct {
	CategoryID  *int64   `json:"category_id"`
	LocationID  *int64   `json:"location_id"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	IsActive    *bool    `json:"is_active"`
}

// EditFields implements repository.FieldSource.
func (u ItemUpdate) EditFields(excludeUnset bool) repository.Fields {
	f := repository.Fields{}
	if !excludeUnset || u.CategoryID != nil {
		f["category_id"] = query.Value(u.CategoryID)
	}
	if !excludeUnset || u.LocationID != nil {
		f["location_id"] = query.Value(u.LocationID)
	}
	if !excludeUnset || u.Title != nil {
		f["title"] = query.Value(u.Title)
	}
	if !excludeUnset || u.Description != nil {
		f["description"] = query.Value(u.Description)
	}
	if !excludeUnset || u.Price != nil {
		f["price"] = query.Value(u.Price)
	}
	if !excludeUnset || u.IsActive != nil {
		f["is_active"] = query.Value(u.IsActive)
	}
	return f
}

// ItemFilter expresses partial search over items: only set fields constrain
// the result.
type ItemFilter struct {
	CategoryID *int64 `json:"category_id"`
	LocationID *int64 `json:"location_id"`
	UserID     *int64 `json:"user_id"`
	IsActive   *bool  `json:"is_active"`
}

// Filters returns the equality predicates for the set fields.
func (f ItemFilter) Filters() repository.Filters {
	return query.New().
		Int64("category_id", f.CategoryID).
		Int64("location_id", f.LocationID).
		Int64("user_id", f.UserID).
		Bool("is_active", f.IsActive).
		Filters()
}
