package store

import (
	"fmt"
)

// Comparison operators allowed in list filters. Anything outside this set is
// rejected during validation rather than passed through to the store.
var allowedOperators = map[string]struct{}{
	"$eq":  {},
	"$ne":  {},
	"$gt":  {},
	"$gte": {},
	"$lt":  {},
	"$lte": {},
	"$in":  {},
}

// FieldSet enumerates the queryable fields of a collection. Filter keys,
// sort keys, and projection keys must all belong to the collection's set.
type FieldSet map[string]struct{}

// TaskFields lists the queryable fields of the tasks collection.
var TaskFields = FieldSet{
	"_id":              {},
	"name":             {},
	"description":      {},
	"deadline":         {},
	"completed":        {},
	"assignedUser":     {},
	"assignedUserName": {},
}

// UserFields lists the queryable fields of the users collection.
var UserFields = FieldSet{
	"_id":          {},
	"name":         {},
	"email":        {},
	"pendingTasks": {},
}

// Contains reports whether the field belongs to the set.
func (s FieldSet) Contains(field string) bool {
	_, ok := s[field]
	return ok
}

// SortField is one sort key with its direction. Fields earlier in a query's
// Sort slice take precedence.
type SortField struct {
	Field string
	Desc  bool
}

// Query is the structured, validated form of a list request. It is produced
// by the API layer from the raw where/sort/select/skip/limit parameters and
// consumed by the store implementations.
//
// Filter maps field names to either a scalar (equality) or a
// map[string]any of operator → operand using the allowed operator set.
// Projection maps field names to inclusion (true) or exclusion (false);
// a single query must not mix the two modes, except for "_id" which may be
// excluded from an inclusion projection.
type Query struct {
	Filter     map[string]any
	Sort       []SortField
	Projection map[string]bool
	Skip       int64
	Limit      int64
}

// Validate checks the query against the collection's field set and the
// allowed operator set. Returns an error wrapping ErrInvalidQuery on the
// first violation found.
func (q Query) Validate(fields FieldSet) error {
	if err := ValidateFilter(q.Filter, fields); err != nil {
		return err
	}

	for _, s := range q.Sort {
		if !fields.Contains(s.Field) {
			return fmt.Errorf("%w: unknown sort field %q", ErrInvalidQuery, s.Field)
		}
	}

	if err := ValidateProjection(q.Projection, fields); err != nil {
		return err
	}

	if q.Skip < 0 {
		return fmt.Errorf("%w: skip must not be negative", ErrInvalidQuery)
	}
	if q.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidQuery)
	}

	return nil
}

// ValidateFilter checks a filter document on its own. It is used by Validate
// and directly for count queries, which carry a filter but no sort,
// projection, or paging.
func ValidateFilter(filter map[string]any, fields FieldSet) error {
	for field, value := range filter {
		if !fields.Contains(field) {
			return fmt.Errorf("%w: unknown filter field %q", ErrInvalidQuery, field)
		}

		conditions, ok := value.(map[string]any)
		if !ok {
			// Scalar value, implicit equality.
			continue
		}

		for op := range conditions {
			if _, allowed := allowedOperators[op]; !allowed {
				return fmt.Errorf("%w: operator %q is not allowed", ErrInvalidQuery, op)
			}
		}
	}
	return nil
}

// ValidateProjection checks a projection document on its own. It is used by
// Validate and directly for get-by-id requests, which accept a projection
// but no filter or paging.
func ValidateProjection(projection map[string]bool, fields FieldSet) error {
	if len(projection) == 0 {
		return nil
	}

	includes := 0
	excludes := 0
	for field, include := range projection {
		if !fields.Contains(field) {
			return fmt.Errorf("%w: unknown projection field %q", ErrInvalidQuery, field)
		}
		if field == "_id" {
			// Mongo allows _id in either mode.
			continue
		}
		if include {
			includes++
		} else {
			excludes++
		}
	}

	if includes > 0 && excludes > 0 {
		return fmt.Errorf("%w: projection cannot mix inclusion and exclusion", ErrInvalidQuery)
	}

	return nil
}

// IsInclusion reports whether the projection selects fields to keep rather
// than fields to drop. An empty projection is not an inclusion.
func IsInclusion(projection map[string]bool) bool {
	for field, include := range projection {
		if field == "_id" {
			continue
		}
		if include {
			return true
		}
	}
	return false
}
