package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tjcastle/taskboard-api/internal/domain"
	"github.com/tjcastle/taskboard-api/internal/store"
)

// userDocument is the persistence shape of a user. PendingTasks holds task
// ids as hex strings, matching how tasks reference users back.
type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PendingTasks []string           `bson:"pendingTasks"`
}

func userToDocument(u *domain.User) (userDocument, error) {
	doc := userDocument{
		Name:         u.Name,
		Email:        u.Email,
		PendingTasks: u.PendingTasks,
	}
	if doc.PendingTasks == nil {
		doc.PendingTasks = []string{}
	}
	if u.ID != "" {
		oid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return doc, fmt.Errorf("%w: %q", domain.ErrInvalidID, u.ID)
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d userDocument) toDomain() domain.User {
	pending := d.PendingTasks
	if pending == nil {
		pending = []string{}
	}
	return domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PendingTasks: pending,
	}
}

// UserStore is the MongoDB implementation of store.UserStore.
type UserStore struct {
	coll *mongo.Collection
}

// NewUserStore creates a UserStore backed by the users collection of db.
func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(usersCollection)}
}

// List implements store.UserStore.List.
func (s *UserStore) List(ctx context.Context, q store.Query) ([]domain.User, error) {
	cursor, err := s.coll.Find(ctx, translateFilter(q.Filter), findOptions(q))
	if err != nil {
		return nil, store.NewStoreError("user", "list", "find failed", MapError(err))
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, store.NewStoreError("user", "list", "cursor decode failed", MapError(err))
	}

	users := make([]domain.User, len(docs))
	for i, doc := range docs {
		users[i] = doc.toDomain()
	}
	return users, nil
}

// Count implements store.UserStore.Count.
func (s *UserStore) Count(ctx context.Context, filter map[string]any) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, translateFilter(filter))
	if err != nil {
		return 0, store.NewStoreError("user", "count", "count failed", MapError(err))
	}
	return n, nil
}

// GetByID implements store.UserStore.GetByID. A malformed id is reported as
// not found: no record can carry it.
func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrUserNotFound
	}

	var doc userDocument
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if mapped := MapError(err); store.IsNotFoundError(mapped) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", "get", "find failed", MapError(err))
	}

	user := doc.toDomain()
	return &user, nil
}

// Create implements store.UserStore.Create, assigning the new user's ID.
// The unique index on email turns concurrent duplicate inserts into
// ErrEmailExists on all but one writer.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	doc, err := userToDocument(user)
	if err != nil {
		return store.NewStoreError("user", "create", "invalid id", err)
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if IsDuplicateKey(err) {
			return store.ErrEmailExists
		}
		return store.NewStoreError("user", "create", "insert failed", MapError(err))
	}

	user.ID = doc.ID.Hex()
	return nil
}

// Replace implements store.UserStore.Replace.
func (s *UserStore) Replace(ctx context.Context, user *domain.User) error {
	doc, err := userToDocument(user)
	if err != nil {
		return store.ErrUserNotFound
	}

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		if IsDuplicateKey(err) {
			return store.ErrEmailExists
		}
		return store.NewStoreError("user", "replace", "replace failed", MapError(err))
	}
	if res.MatchedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// Delete implements store.UserStore.Delete as a single fetch-and-remove.
func (s *UserStore) Delete(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrUserNotFound
	}

	var doc userDocument
	err = s.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if mapped := MapError(err); store.IsNotFoundError(mapped) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", "delete", "find-and-delete failed", MapError(err))
	}

	user := doc.toDomain()
	return &user, nil
}

// AddPendingTask implements store.UserStore.AddPendingTask with $addToSet,
// so idempotence is a property of the single atomic write rather than of a
// read-modify-write cycle. A missing user matches nothing and is a no-op.
func (s *UserStore) AddPendingTask(ctx context.Context, userID, taskID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}

	_, err = s.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$addToSet": bson.M{"pendingTasks": taskID}},
	)
	if err != nil {
		return store.NewStoreError("user", "add_pending_task", "update failed", MapError(err))
	}
	return nil
}

// RemovePendingTask implements store.UserStore.RemovePendingTask with $pull.
// An absent entry or a missing user is a no-op.
func (s *UserStore) RemovePendingTask(ctx context.Context, userID, taskID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}

	_, err = s.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"pendingTasks": taskID}},
	)
	if err != nil {
		return store.NewStoreError("user", "remove_pending_task", "update failed", MapError(err))
	}
	return nil
}

var _ store.UserStore = (*UserStore)(nil)
