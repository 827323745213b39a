// Package mongodb implements the store interfaces on MongoDB. It owns the
// client bootstrap (including the unique index on users.email), the
// translation of structured queries into bson, and the mapping of driver
// errors onto the store's sentinel errors so callers never see driver types.
package mongodb
