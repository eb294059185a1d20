package query

// Package query turns optional-field filter and update payloads into the
// predicate and column maps consumed by the repository layer. Only fields the
// caller explicitly set become predicates; unset fields impose no constraint.

import "marketapi/internal/repository"

// Builder collects equality predicates from optional filter fields.
type Builder struct {
	f repository.Filters
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{f: repository.Filters{}}
}

// Int64 adds an equality predicate when v is set.
func (b *Builder) Int64(col string, v *int64) *Builder {
	if v != nil {
		b.f[col] = *v
	}
	return b
}

// String adds an equality predicate when v is set.
func (b *Builder) String(col string, v *string) *Builder {
	if v != nil {
		b.f[col] = *v
	}
	return b
}

// Bool adds an equality predicate when v is set.
func (b *Builder) Bool(col string, v *bool) *Builder {
	if v != nil {
		b.f[col] = *v
	}
	return b
}

// Filters returns the collected predicate set.
func (b *Builder) Filters() repository.Filters {
	return b.f
}

// Value dereferences an optional edit field, mapping unset to SQL NULL.
func Value[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
