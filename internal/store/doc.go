// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// It also defines the structured Query type: the validated form of the
// where/sort/select/skip/limit parameters accepted by the list endpoints,
// with enumerated field sets and a restricted operator whitelist.
package store
