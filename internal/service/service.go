package service

// Package service holds the domain services. Each service owns the business
// invariants for one entity (existence, uniqueness, authorization) and runs
// every mutating call inside a single Unit-of-Work: existence check first,
// then the mutation, then commit; any failure rolls the whole unit back.

import (
	"marketapi/internal/repository"
)

// Paging defaults shared by the list operations.
const (
	DefaultLimit = 100
)

func byID(id int64) repository.Filters {
	return repository.Filters{"id": id}
}

// normalizePage clamps pagination inputs to sane bounds.
func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return skip, limit
}
