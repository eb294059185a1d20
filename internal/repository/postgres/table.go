package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"marketapi/internal/repository"
)

// RowScanner abstracts *sql.Row and *sql.Rows for the per-entity scan funcs.
type RowScanner interface {
	Scan(dest ...any) error
}

// Mapping binds an entity type to its table: the ordered column list (the
// first column is the primary key), the natural-key columns used for
// duplicate detection, and the scan function producing the entity from a row.
type Mapping[T any] struct {
	Table      string
	Columns    []string
	NaturalKey []string
	Scan       func(rs RowScanner) (*T, error)
}

// Table is the PostgreSQL implementation of repository.Store, parameterized
// over its entity mapping. It uses parameterized queries only and contains no
// business logic.
type Table[T any] struct {
	m Mapping[T]
}

// NewTable creates a Table for the given mapping.
func NewTable[T any](m Mapping[T]) *Table[T] {
	return &Table[T]{m: m}
}

var _ repository.Store[struct{}] = (*Table[struct{}])(nil)

// GetOneOrNone fetches the unique row matching filters. Absence is (nil, nil).
func (t *Table[T]) GetOneOrNone(ctx context.Context, q repository.Querier, filters repository.Filters) (*T, error) {
	where, args := whereClause(filters, 0)
	query := fmt.Sprintf("SELECT %s FROM %s%s", t.selectList(), t.m.Table, where)
	e, err := t.m.Scan(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// GetAll returns every row ordered by primary key.
func (t *Table[T]) GetAll(ctx context.Context, q repository.Querier) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", t.selectList(), t.m.Table, t.m.Columns[0])
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return t.collect(rows)
}

// GetFiltered returns rows matching the equality predicates in filters,
// ordered by primary key and bounded by limit/offset.
func (t *Table[T]) GetFiltered(ctx context.Context, q repository.Querier, limit, offset int, filters repository.Filters) ([]T, error) {
	where, args := whereClause(filters, 0)
	n := len(args)
	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		t.selectList(), t.m.Table, where, t.m.Columns[0], n+1, n+2)
	args = append(args, limit, offset)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return t.collect(rows)
}

// Add inserts a row built from data and returns the persisted row. With
// ignoreDuplicates, an existing row matching the natural key is returned
// instead of inserting; a unique violation that cannot be resolved to an
// existing row is reported as AddIndeterminate.
func (t *Table[T]) Add(ctx context.Context, q repository.Querier, data repository.Fields, ignoreDuplicates bool) (*T, repository.AddOutcome, error) {
	if ignoreDuplicates {
		if match, ok := t.naturalKeyFilters(data); ok {
			existing, err := t.GetOneOrNone(ctx, q, match)
			if err != nil {
				return nil, repository.AddIndeterminate, err
			}
			if existing != nil {
				return existing, repository.AddReused, nil
			}
		}
	}

	inserted, err := t.insert(ctx, q, data)
	if err == nil {
		return inserted, repository.AddInserted, nil
	}
	if !isUniqueViolation(err) {
		return nil, repository.AddIndeterminate, err
	}
	if !ignoreDuplicates {
		return nil, repository.AddIndeterminate, fmt.Errorf("%w: %v", repository.ErrDuplicateKey, err)
	}

	// Lost a race against a concurrent insert; resolve to the existing row.
	match, ok := t.naturalKeyFilters(data)
	if !ok {
		return nil, repository.AddIndeterminate, fmt.Errorf("%w: natural key incomplete", repository.ErrDuplicateKey)
	}
	existing, lookupErr := t.GetOneOrNone(ctx, q, match)
	if lookupErr != nil {
		return nil, repository.AddIndeterminate, lookupErr
	}
	if existing == nil {
		return nil, repository.AddIndeterminate, fmt.Errorf("%w: no row matches the natural key", repository.ErrDuplicateKey)
	}
	return existing, repository.AddReused, nil
}

// Edit applies the resolved field set to the rows matching filters. An edit
// resolving to zero fields is a no-op.
func (t *Table[T]) Edit(ctx context.Context, q repository.Querier, data repository.FieldSource, excludeUnset bool, filters repository.Filters) error {
	fields := data.EditFields(excludeUnset)
	if len(fields) == 0 {
		return nil
	}
	keys := sortedKeys(fields)
	sets := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		sets = append(sets, fmt.Sprintf("%s = $%d", k, i+1))
		args = append(args, fields[k])
	}
	where, whereArgs := whereClause(filters, len(args))
	query := fmt.Sprintf("UPDATE %s SET %s%s", t.m.Table, strings.Join(sets, ", "), where)
	_, err := q.ExecContext(ctx, query, append(args, whereArgs...)...)
	return err
}

// Delete removes the rows matching filters.
func (t *Table[T]) Delete(ctx context.Context, q repository.Querier, filters repository.Filters) error {
	where, args := whereClause(filters, 0)
	query := fmt.Sprintf("DELETE FROM %s%s", t.m.Table, where)
	_, err := q.ExecContext(ctx, query, args...)
	return err
}

func (t *Table[T]) insert(ctx context.Context, q repository.Querier, data repository.Fields) (*T, error) {
	keys := sortedKeys(data)
	placeholders := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, data[k])
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.m.Table, strings.Join(keys, ", "), strings.Join(placeholders, ", "), t.selectList())
	return t.m.Scan(q.QueryRowContext(ctx, query, args...))
}

// naturalKeyFilters extracts the natural-key predicate from the insert data.
// Reports false when the mapping has no natural key or a key field is absent,
// in which case no determinate match can be constructed.
func (t *Table[T]) naturalKeyFilters(data repository.Fields) (repository.Filters, bool) {
	if len(t.m.NaturalKey) == 0 {
		return nil, false
	}
	match := repository.Filters{}
	for _, col := range t.m.NaturalKey {
		v, ok := data[col]
		if !ok || v == nil {
			return nil, false
		}
		match[col] = v
	}
	return match, true
}

func (t *Table[T]) selectList() string {
	return strings.Join(t.m.Columns, ", ")
}

func (t *Table[T]) collect(rows *sql.Rows) ([]T, error) {
	defer rows.Close()
	out := make([]T, 0)
	for rows.Next() {
		e, err := t.m.Scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// sortedKeys keeps generated SQL deterministic across runs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func whereClause(filters repository.Filters, argOffset int) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	keys := sortedKeys(filters)
	conds := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		conds = append(conds, fmt.Sprintf("%s = $%d", k, argOffset+i+1))
		args = append(args, filters[k])
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
