package repository

// Package repository contains the data access layer contract. The concrete
// PostgreSQL implementation lives in the postgres subpackage.

import (
	"context"
	"database/sql"
	"errors"
)

// Querier is the subset of database/sql operations the store needs. Both
// *sql.DB and *sql.Tx satisfy it, so the same store methods run inside or
// outside a unit of work.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Fields maps column names to values for insert and update statements.
type Fields map[string]any

// EditFields lets a raw Fields map act as its own FieldSource.
func (f Fields) EditFields(excludeUnset bool) Fields { return f }

// Filters maps column names to values used as equality predicates. Absent
// columns impose no constraint.
type Filters map[string]any

// FieldSource produces the column set an edit should apply. With excludeUnset,
// only fields the caller explicitly provided are returned (sparse patch);
// otherwise every declared field is returned, unset ones as NULL (full
// replace).
type FieldSource interface {
	EditFields(excludeUnset bool) Fields
}

// AddOutcome reports what a duplicate-aware Add actually did.
type AddOutcome int

const (
	// AddInserted means a new row was written.
	AddInserted AddOutcome = iota
	// AddReused means an existing row matching the natural key was returned
	// instead of inserting.
	AddReused
	// AddIndeterminate means a collision was detected but no existing row
	// could be resolved; the accompanying error is always non-nil.
	AddIndeterminate
)

// ErrDuplicateKey is returned by Add when an insert collides with a unique
// constraint and duplicates are not tolerated.
var ErrDuplicateKey = errors.New("duplicate key")

// Store is the entity-agnostic persistence contract shared by all domain
// types. Absence is reported as (nil, nil), never as an error; the caller
// decides whether a missing row is a failure.
//
// No method commits: every mutation runs on the caller's Querier and is
// finalized (or rolled back) by the surrounding unit of work.
type Store[T any] interface {
	// GetOneOrNone returns the unique row matching filters, or nil.
	GetOneOrNone(ctx context.Context, q Querier, filters Filters) (*T, error)

	// GetAll returns every row.
	GetAll(ctx context.Context, q Querier) ([]T, error)

	// GetFiltered returns rows matching filters, bounded by limit/offset.
	GetFiltered(ctx context.Context, q Querier, limit, offset int, filters Filters) ([]T, error)

	// Add inserts a row built from data and returns the persisted row. With
	// ignoreDuplicates, a natural-key collision returns the existing row
	// (AddReused) instead of failing; without it, a collision is reported as
	// ErrDuplicateKey.
	Add(ctx context.Context, q Querier, data Fields, ignoreDuplicates bool) (*T, AddOutcome, error)

	// Edit applies data to the rows matching filters. See FieldSource for the
	// excludeUnset contract. An edit resolving to zero fields is a no-op.
	Edit(ctx context.Context, q Querier, data FieldSource, excludeUnset bool, filters Filters) error

	// Delete removes the rows matching filters.
	Delete(ctx context.Context, q Querier, filters Filters) error
}

// NamedStore extends Store for entities addressable by a unique name, used
// for pre-insert uniqueness checks.
type NamedStore[T any] interface {
	Store[T]
	GetByName(ctx context.Context, q Querier, name string) (*T, error)
}
