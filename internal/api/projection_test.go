package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjcastle/taskboard-api/internal/domain"
)

func sampleTask() *domain.Task {
	return &domain.Task{
		ID:               "t1",
		Name:             "write report",
		Description:      "quarterly",
		Deadline:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		AssignedUser:     "u1",
		AssignedUserName: "Ada",
	}
}

func TestProjectRecord(t *testing.T) {
	t.Parallel()

	t.Run("no projection passes record through", func(t *testing.T) {
		t.Parallel()

		task := sampleTask()
		assert.Equal(t, task, projectRecord(task, nil))
	})

	t.Run("inclusion keeps selected fields plus id", func(t *testing.T) {
		t.Parallel()

		out := projectRecord(sampleTask(), map[string]bool{"name": true})
		doc, ok := out.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"_id": "t1", "name": "write report"}, doc)
	})

	t.Run("inclusion with id excluded", func(t *testing.T) {
		t.Parallel()

		out := projectRecord(sampleTask(), map[string]bool{"name": true, "_id": false})
		doc, ok := out.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"name": "write report"}, doc)
	})

	t.Run("exclusion drops named fields", func(t *testing.T) {
		t.Parallel()

		out := projectRecord(sampleTask(), map[string]bool{"description": false})
		doc, ok := out.(map[string]any)
		require.True(t, ok)

		assert.NotContains(t, doc, "description")
		assert.Equal(t, "t1", doc["_id"])
		assert.Equal(t, "write report", doc["name"])
		assert.Equal(t, "u1", doc["assignedUser"])
	})
}

func TestProjectRecords(t *testing.T) {
	t.Parallel()

	tasks := []domain.Task{*sampleTask(), *sampleTask()}

	t.Run("no projection returns the slice unchanged", func(t *testing.T) {
		t.Parallel()

		out := projectRecords(tasks, nil)
		assert.Equal(t, tasks, out)
	})

	t.Run("projection applies to every element", func(t *testing.T) {
		t.Parallel()

		out := projectRecords(tasks, map[string]bool{"name": true})
		list, ok := out.([]any)
		require.True(t, ok)
		require.Len(t, list, 2)
		for _, item := range list {
			doc := item.(map[string]any)
			assert.Equal(t, map[string]any{"_id": "t1", "name": "write report"}, doc)
		}
	})
}
