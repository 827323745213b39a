// Package mocks provides centralized mock implementations for testing.
//
// Each mock pairs per-method function fields (CreateFn, GetByIDFn, ...)
// with a map-backed default implementation, so tests can either script a
// single method or lean on the in-memory behavior for the rest. Keeping
// the mocks here instead of inline in test files keeps their behavior
// consistent across packages.
package mocks
