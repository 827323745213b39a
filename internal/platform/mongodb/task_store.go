package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tjcastle/taskboard-api/internal/domain"
	"github.com/tjcastle/taskboard-api/internal/store"
)

// taskDocument is the persistence shape of a task. The domain keeps ids as
// hex strings; the collection keys on ObjectIDs.
type taskDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Description      string             `bson:"description"`
	Deadline         time.Time          `bson:"deadline"`
	Completed        bool               `bson:"completed"`
	AssignedUser     string             `bson:"assignedUser"`
	AssignedUserName string             `bson:"assignedUserName"`
}

func taskToDocument(t *domain.Task) (taskDocument, error) {
	doc := taskDocument{
		Name:             t.Name,
		Description:      t.Description,
		Deadline:         t.Deadline,
		Completed:        t.Completed,
		AssignedUser:     t.AssignedUser,
		AssignedUserName: t.AssignedUserName,
	}
	if t.ID != "" {
		oid, err := primitive.ObjectIDFromHex(t.ID)
		if err != nil {
			return doc, fmt.Errorf("%w: %q", domain.ErrInvalidID, t.ID)
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d taskDocument) toDomain() domain.Task {
	return domain.Task{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Description:      d.Description,
		Deadline:         d.Deadline,
		Completed:        d.Completed,
		AssignedUser:     d.AssignedUser,
		AssignedUserName: d.AssignedUserName,
	}
}

// TaskStore is the MongoDB implementation of store.TaskStore.
type TaskStore struct {
	coll *mongo.Collection
}

// NewTaskStore creates a TaskStore backed by the tasks collection of db.
func NewTaskStore(db *mongo.Database) *TaskStore {
	return &TaskStore{coll: db.Collection(tasksCollection)}
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(ctx context.Context, q store.Query) ([]domain.Task, error) {
	cursor, err := s.coll.Find(ctx, translateFilter(q.Filter), findOptions(q))
	if err != nil {
		return nil, store.NewStoreError("task", "list", "find failed", MapError(err))
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, store.NewStoreError("task", "list", "cursor decode failed", MapError(err))
	}

	tasks := make([]domain.Task, len(docs))
	for i, doc := range docs {
		tasks[i] = doc.toDomain()
	}
	return tasks, nil
}

// Count implements store.TaskStore.Count.
func (s *TaskStore) Count(ctx context.Context, filter map[string]any) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, translateFilter(filter))
	if err != nil {
		return 0, store.NewStoreError("task", "count", "count failed", MapError(err))
	}
	return n, nil
}

// GetByID implements store.TaskStore.GetByID. A malformed id is reported as
// not found: no record can carry it.
func (s *TaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrTaskNotFound
	}

	var doc taskDocument
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if mapped := MapError(err); store.IsNotFoundError(mapped) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "get", "find failed", MapError(err))
	}

	task := doc.toDomain()
	return &task, nil
}

// Create implements store.TaskStore.Create, assigning the new task's ID.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	doc, err := taskToDocument(task)
	if err != nil {
		return store.NewStoreError("task", "create", "invalid id", err)
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	task.ID = doc.ID.Hex()
	return nil
}

// Replace implements store.TaskStore.Replace.
func (s *TaskStore) Replace(ctx context.Context, task *domain.Task) error {
	doc, err := taskToDocument(task)
	if err != nil {
		return store.ErrTaskNotFound
	}

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return store.NewStoreError("task", "replace", "replace failed", MapError(err))
	}
	if res.MatchedCount == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// Delete implements store.TaskStore.Delete as a single fetch-and-remove.
func (s *TaskStore) Delete(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrTaskNotFound
	}

	var doc taskDocument
	err = s.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if mapped := MapError(err); store.IsNotFoundError(mapped) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "delete", "find-and-delete failed", MapError(err))
	}

	task := doc.toDomain()
	return &task, nil
}

// UpdateAssignment implements store.TaskStore.UpdateAssignment as one bulk
// write. IDs that are malformed or match no task are skipped silently.
func (s *TaskStore) UpdateAssignment(ctx context.Context, ids []string, userID, userName string) error {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return nil
	}

	_, err := s.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": oids}},
		bson.M{"$set": bson.M{
			"assignedUser":     userID,
			"assignedUserName": userName,
		}},
	)
	if err != nil {
		return store.NewStoreError("task", "update_assignment", "bulk update failed", MapError(err))
	}
	return nil
}

var _ store.TaskStore = (*TaskStore)(nil)
