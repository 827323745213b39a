package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tjcastle/taskboard-api/internal/store"
)

func TestTranslateFilter(t *testing.T) {
	t.Parallel()

	oid := primitive.NewObjectID()

	t.Run("plain fields pass through", func(t *testing.T) {
		t.Parallel()

		out := translateFilter(map[string]any{"completed": true, "name": "report"})
		assert.Equal(t, bson.M{"completed": true, "name": "report"}, out)
	})

	t.Run("id hex string becomes ObjectID", func(t *testing.T) {
		t.Parallel()

		out := translateFilter(map[string]any{"_id": oid.Hex()})
		assert.Equal(t, bson.M{"_id": oid}, out)
	})

	t.Run("malformed id passes through unmatched", func(t *testing.T) {
		t.Parallel()

		out := translateFilter(map[string]any{"_id": "not-a-hex-id"})
		assert.Equal(t, bson.M{"_id": "not-a-hex-id"}, out)
	})

	t.Run("id operators convert operands", func(t *testing.T) {
		t.Parallel()

		out := translateFilter(map[string]any{
			"_id": map[string]any{"$ne": oid.Hex()},
		})
		assert.Equal(t, bson.M{"_id": bson.M{"$ne": oid}}, out)
	})

	t.Run("id in-list converts each element", func(t *testing.T) {
		t.Parallel()

		other := primitive.NewObjectID()
		out := translateFilter(map[string]any{
			"_id": map[string]any{"$in": []any{oid.Hex(), other.Hex(), "junk"}},
		})
		assert.Equal(t, bson.M{"_id": bson.M{"$in": []any{oid, other, "junk"}}}, out)
	})
}

func TestFindOptions(t *testing.T) {
	t.Parallel()

	t.Run("empty query sets nothing", func(t *testing.T) {
		t.Parallel()

		opts := findOptions(store.Query{})
		assert.Nil(t, opts.Sort)
		assert.Nil(t, opts.Projection)
		assert.Nil(t, opts.Skip)
		assert.Nil(t, opts.Limit)
	})

	t.Run("sort preserves precedence and direction", func(t *testing.T) {
		t.Parallel()

		opts := findOptions(store.Query{
			Sort: []store.SortField{{Field: "deadline"}, {Field: "name", Desc: true}},
		})
		require.NotNil(t, opts.Sort)
		assert.Equal(t, bson.D{{Key: "deadline", Value: 1}, {Key: "name", Value: -1}}, opts.Sort)
	})

	t.Run("projection is pushed down", func(t *testing.T) {
		t.Parallel()

		opts := findOptions(store.Query{Projection: map[string]bool{"name": true}})
		require.NotNil(t, opts.Projection)
		assert.Equal(t, bson.D{{Key: "name", Value: 1}}, opts.Projection)
	})

	t.Run("skip and limit", func(t *testing.T) {
		t.Parallel()

		opts := findOptions(store.Query{Skip: 10, Limit: 5})
		require.NotNil(t, opts.Skip)
		require.NotNil(t, opts.Limit)
		assert.Equal(t, int64(10), *opts.Skip)
		assert.Equal(t, int64(5), *opts.Limit)
	})
}

func TestObjectIDs(t *testing.T) {
	t.Parallel()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	out := objectIDs([]string{a.Hex(), "junk", b.Hex()})
	assert.Equal(t, []primitive.ObjectID{a, b}, out)

	assert.Empty(t, objectIDs(nil))
	assert.Empty(t, objectIDs([]string{"junk"}))
}
