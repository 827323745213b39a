package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjcastle/taskboard-api/internal/domain"
	"github.com/tjcastle/taskboard-api/internal/mocks"
	"github.com/tjcastle/taskboard-api/internal/service"
)

func newUserRouter(t *testing.T) (*chi.Mux, *mocks.MockUserStore, *mocks.MockSynchronizer) {
	t.Helper()

	userStore := mocks.NewMockUserStore()
	sync := mocks.NewMockSynchronizer()
	svc, err := service.NewUserService(userStore, sync, discardLogger())
	require.NoError(t, err)

	handler := NewUserHandler(svc, discardLogger())
	r := chi.NewRouter()
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Get("/{id}", handler.Get)
		r.Put("/{id}", handler.Replace)
		r.Delete("/{id}", handler.Delete)
	})
	return r, userStore, sync
}

const userBody = `{"name":"Ada","email":"ada@example.com"}`

func TestUserHandlerList(t *testing.T) {
	t.Parallel()

	t.Run("returns users in envelope", func(t *testing.T) {
		t.Parallel()

		router, userStore, _ := newUserRouter(t)
		userStore.Users["u1"] = &domain.User{
			ID: "u1", Name: "Ada", Email: "ada@example.com", PendingTasks: []string{"t1"},
		}

		rec := doRequest(router, "GET", "/api/users", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.Equal(t, MsgOK, env.Message)

		var users []domain.User
		require.NoError(t, json.Unmarshal(env.Data, &users))
		require.Len(t, users, 1)
		assert.Equal(t, []string{"t1"}, users[0].PendingTasks)
	})

	t.Run("task-only filter field yields 400", func(t *testing.T) {
		t.Parallel()

		router, _, _ := newUserRouter(t)
		rec := doRequest(router, "GET", `/api/users?where={"deadline":"2026-01-01"}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, MsgBadQueryParams, decodeEnvelope(t, rec).Message)
	})
}

func TestUserHandlerCreate(t *testing.T) {
	t.Parallel()

	t.Run("valid body creates the user", func(t *testing.T) {
		t.Parallel()

		router, _, sync := newUserRouter(t)
		rec := doRequest(router, "POST", "/api/users", userBody)

		assert.Equal(t, http.StatusCreated, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, MsgUserCreated, env.Message)

		var saved domain.User
		require.NoError(t, json.Unmarshal(env.Data, &saved))
		assert.NotEmpty(t, saved.ID)
		assert.NotNil(t, saved.PendingTasks)

		assert.Len(t, sync.UserWrites, 1)
	})

	t.Run("duplicate email yields 400", func(t *testing.T) {
		t.Parallel()

		router, _, _ := newUserRouter(t)
		rec := doRequest(router, "POST", "/api/users", userBody)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(router, "POST", "/api/users", `{"name":"Other","email":"ada@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, MsgDuplicateEmail, decodeEnvelope(t, rec).Message)
	})

	t.Run("missing email yields 400", func(t *testing.T) {
		t.Parallel()

		router, userStore, _ := newUserRouter(t)
		rec := doRequest(router, "POST", "/api/users", `{"name":"Ada"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, MsgUserFieldsRequired, decodeEnvelope(t, rec).Message)
		assert.Empty(t, userStore.Users)
	})

	t.Run("malformed JSON yields 400", func(t *testing.T) {
		t.Parallel()

		router, _, _ := newUserRouter(t)
		rec := doRequest(router, "POST", "/api/users", `{"name"`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, MsgInvalidBody, decodeEnvelope(t, rec).Message)
	})

	t.Run("initial pending tasks reach the synchronizer", func(t *testing.T) {
		t.Parallel()

		router, _, sync := newUserRouter(t)
		body := `{"name":"Ada","email":"ada@example.com","pendingTasks":["t1","t2"]}`
		rec := doRequest(router, "POST", "/api/users", body)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, sync.UserWrites, 1)
		assert.Nil(t, sync.UserWrites[0].Before)
		assert.Equal(t, []string{"t1", "t2"}, sync.UserWrites[0].After.PendingTasks)
	})
}

func TestUserHandlerGet(t *testing.T) {
	t.Parallel()

	t.Run("found with projection", func(t *testing.T) {
		t.Parallel()

		router, userStore, _ := newUserRouter(t)
		userStore.Users["u1"] = &domain.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}

		rec := doRequest(router, "GET", `/api/users/u1?select={"email":1,"_id":0}`, "")
		assert.Equal(t, http.StatusOK, rec.Code)

		env := decodeEnvelope(t, rec)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &doc))
		assert.Equal(t, map[string]any{"email": "ada@example.com"}, doc)
	})

	t.Run("not found yields 404", func(t *testing.T) {
		t.Parallel()

		router, _, _ := newUserRouter(t)
		rec := doRequest(router, "GET", "/api/users/missing", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, MsgUserNotFound, decodeEnvelope(t, rec).Message)
	})

	t.Run("task-only projection field yields 400", func(t *testing.T) {
		t.Parallel()

		router, _, _ := newUserRouter(t)
		rec := doRequest(router, "GET", `/api/users/u1?select={"deadline":1}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, MsgBadQueryParams, decodeEnvelope(t, rec).Message)
	})
}

func TestUserHandlerReplace(t *testing.T) {
	t.Parallel()

	t.Run("replace resets omitted pending tasks", func(t *testing.T) {
		t.Parallel()

		router, userStore, sync := newUserRouter(t)
		userStore.Users["u1"] = &domain.User{
			ID: "u1", Name: "Ada", Email: "ada@example.com", PendingTasks: []string{"t1"},
		}

		rec := doRequest(router, "PUT", "/api/users/u1", userBody)
		assert.Equal(t, http.StatusOK, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.Equal(t, MsgUserUpdated, env.Message)

		var saved domain.User
		require.NoError(t, json.Unmarshal(env.Data, &saved))
		assert.Equal(t, "u1", saved.ID)
		assert.Empty(t, saved.PendingTasks)

		require.Len(t, sync.UserWrites, 1)
		assert.Equal(t, []string{"t1"}, sync.UserWrites[0].Before.PendingTasks)
		assert.Empty(t, sync.UserWrites[0].After.PendingTasks)
	})

	t.Run("not found yields 404", func(t *testing.T) {
		t.Parallel()

		router, _, _ := newUserRouter(t)
		rec := doRequest(router, "PUT", "/api/users/missing", userBody)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, MsgUserNotFound, decodeEnvelope(t, rec).Message)
	})

	t.Run("duplicate email yields 400", func(t *testing.T) {
		t.Parallel()

		router, userStore, _ := newUserRouter(t)
		userStore.Users["u1"] = &domain.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}
		userStore.Users["u2"] = &domain.User{ID: "u2", Name: "Bob", Email: "bob@example.com"}

		rec := doRequest(router, "PUT", "/api/users/u1", `{"name":"Ada","email":"bob@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, MsgDuplicateEmail, decodeEnvelope(t, rec).Message)
	})
}

func TestUserHandlerDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes and returns the removed user", func(t *testing.T) {
		t.Parallel()

		router, userStore, sync := newUserRouter(t)
		userStore.Users["u1"] = &domain.User{
			ID: "u1", Name: "Ada", Email: "ada@example.com", PendingTasks: []string{"t1"},
		}

		rec := doRequest(router, "DELETE", "/api/users/u1", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.Equal(t, MsgUserDeleted, env.Message)

		var removed domain.User
		require.NoError(t, json.Unmarshal(env.Data, &removed))
		assert.Equal(t, "u1", removed.ID)

		assert.Empty(t, userStore.Users)
		require.Len(t, sync.UserWrites, 1)
		assert.Nil(t, sync.UserWrites[0].After)
	})

	t.Run("not found yields 404", func(t *testing.T) {
		t.Parallel()

		router, _, _ := newUserRouter(t)
		rec := doRequest(router, "DELETE", "/api/users/missing", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, MsgUserNotFound, decodeEnvelope(t, rec).Message)
	})
}
