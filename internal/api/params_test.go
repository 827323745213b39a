package api

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjcastle/taskboard-api/internal/store"
)

func parseFrom(t *testing.T, rawQuery string) (listParams, error) {
	t.Helper()
	req := httptest.NewRequest("GET", "/api/tasks?"+rawQuery, nil)
	return parseListParams(req)
}

func TestParseListParams(t *testing.T) {
	t.Parallel()

	t.Run("empty query string", func(t *testing.T) {
		t.Parallel()

		params, err := parseFrom(t, "")
		require.NoError(t, err)
		assert.Empty(t, params.Query.Filter)
		assert.Nil(t, params.Query.Sort)
		assert.Nil(t, params.Query.Projection)
		assert.Zero(t, params.Query.Skip)
		assert.Zero(t, params.Query.Limit)
		assert.False(t, params.CountOnly)
	})

	t.Run("where filter", func(t *testing.T) {
		t.Parallel()

		params, err := parseFrom(t, `where={"completed":false}`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"completed": false}, params.Query.Filter)
	})

	t.Run("where with operators", func(t *testing.T) {
		t.Parallel()

		params, err := parseFrom(t, `where={"deadline":{"$gte":"2026-01-01"}}`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"deadline": map[string]any{"$gte": "2026-01-01"},
		}, params.Query.Filter)
	})

	t.Run("malformed where", func(t *testing.T) {
		t.Parallel()

		_, err := parseFrom(t, `where={completed:false}`)
		assert.ErrorIs(t, err, errBadQuery)
	})

	t.Run("skip and limit", func(t *testing.T) {
		t.Parallel()

		params, err := parseFrom(t, "skip=5&limit=20")
		require.NoError(t, err)
		assert.Equal(t, int64(5), params.Query.Skip)
		assert.Equal(t, int64(20), params.Query.Limit)
	})

	t.Run("negative skip", func(t *testing.T) {
		t.Parallel()

		_, err := parseFrom(t, "skip=-1")
		assert.ErrorIs(t, err, errBadQuery)
	})

	t.Run("non-numeric limit", func(t *testing.T) {
		t.Parallel()

		_, err := parseFrom(t, "limit=ten")
		assert.ErrorIs(t, err, errBadQuery)
	})

	t.Run("count flag", func(t *testing.T) {
		t.Parallel()

		params, err := parseFrom(t, "count=true")
		require.NoError(t, err)
		assert.True(t, params.CountOnly)

		params, err = parseFrom(t, "count=false")
		require.NoError(t, err)
		assert.False(t, params.CountOnly)
	})
}

func TestParseSort(t *testing.T) {
	t.Parallel()

	t.Run("numeric directions preserve key order", func(t *testing.T) {
		t.Parallel()

		fields, err := parseSort(`{"deadline":1,"name":-1}`)
		require.NoError(t, err)
		assert.Equal(t, []store.SortField{
			{Field: "deadline", Desc: false},
			{Field: "name", Desc: true},
		}, fields)
	})

	t.Run("string directions", func(t *testing.T) {
		t.Parallel()

		fields, err := parseSort(`{"name":"asc","email":"desc"}`)
		require.NoError(t, err)
		assert.Equal(t, []store.SortField{
			{Field: "name", Desc: false},
			{Field: "email", Desc: true},
		}, fields)
	})

	t.Run("invalid direction", func(t *testing.T) {
		t.Parallel()

		_, err := parseSort(`{"name":2}`)
		assert.ErrorIs(t, err, errBadQuery)

		_, err = parseSort(`{"name":"up"}`)
		assert.ErrorIs(t, err, errBadQuery)
	})

	t.Run("non-object sort", func(t *testing.T) {
		t.Parallel()

		_, err := parseSort(`["name"]`)
		assert.ErrorIs(t, err, errBadQuery)
	})
}

func TestParseSelect(t *testing.T) {
	t.Parallel()

	t.Run("numeric projection", func(t *testing.T) {
		t.Parallel()

		projection, err := parseSelect(`{"name":1,"_id":0}`)
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"name": true, "_id": false}, projection)
	})

	t.Run("boolean projection", func(t *testing.T) {
		t.Parallel()

		projection, err := parseSelect(`{"description":false}`)
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"description": false}, projection)
	})

	t.Run("out-of-range value", func(t *testing.T) {
		t.Parallel()

		_, err := parseSelect(`{"name":2}`)
		assert.ErrorIs(t, err, errBadQuery)
	})

	t.Run("non-numeric value", func(t *testing.T) {
		t.Parallel()

		_, err := parseSelect(`{"name":"yes"}`)
		assert.ErrorIs(t, err, errBadQuery)
	})
}
