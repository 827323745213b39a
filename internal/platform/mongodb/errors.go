package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tjcastle/taskboard-api/internal/store"
)

// duplicateKeyCode is the MongoDB server error code for unique index
// violations.
const duplicateKeyCode = 11000

// MapError maps a driver error to the store's sentinel errors, wrapping the
// original so context is preserved for logs. Every store method funnels its
// driver errors through here so callers only ever classify against the
// store package.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	if IsDuplicateKey(err) {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}

	return err
}

// IsDuplicateKey checks if the given error is a MongoDB unique index
// violation, in any of the shapes the driver reports them.
func IsDuplicateKey(err error) bool {
	if mongo.IsDuplicateKeyError(err) {
		return true
	}

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == duplicateKeyCode {
				return true
			}
		}
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.Code == duplicateKeyCode
	}

	return false
}
