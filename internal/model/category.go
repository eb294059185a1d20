package model

import (
	"marketapi/internal/query"
	"marketapi/internal/repository"
)

// Category groups items under a unique name.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// CategoryCreate is the validated payload for creating a category.
type CategoryCreate struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Fields returns the insert columns for the payload.
func (c CategoryCreate) Fields() repository.Fields {
	return repository.Fields{
		"name":        c.Name,
		"description": query.Value(c.Description),
	}
}

// CategoryUpdate carries both full updates (every declared field applied,
// unset ones as NULL) and sparse patches (only set fields applied).
type CategoryUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// EditFields implements repository.FieldSource.
func (u CategoryUpdate) EditFields(excludeUnset bool) repository.Fields {
	f := repository.Fields{}
	if !excludeUnset || u.Name != nil {
		f["name"] = query.Value(u.Name)
	}
	if !excludeUnset || u.Description != nil {
		f["description"] = query.Value(u.Description)
	}
	return f
}
