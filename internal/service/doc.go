// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the stores
// (defined in internal/store) to fulfill application features.
//
// The write paths own the synchronization hand-off: every create, replace,
// and delete captures the record's prior state, performs the primary write,
// and reports the before/after pair to the Reference Synchronizer. The
// primary write's result is returned to the caller regardless of what the
// synchronizer's secondary patches later do.
package service
