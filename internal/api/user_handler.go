package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tjcastle/taskboard-api/internal/api/shared"
	"github.com/tjcastle/taskboard-api/internal/domain"
	"github.com/tjcastle/taskboard-api/internal/service"
	"github.com/tjcastle/taskboard-api/internal/store"
)

// UserRequest is the request body for creating or replacing a user. A
// replace is a full overwrite: an omitted pendingTasks resets to empty,
// unassigning every task the user had.
type UserRequest struct {
	Name         string   `json:"name"  validate:"required"`
	Email        string   `json:"email" validate:"required"`
	PendingTasks []string `json:"pendingTasks"`
}

func (req *UserRequest) toDomain() (*domain.User, error) {
	return domain.NewUser(req.Name, req.Email, req.PendingTasks)
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		logger:      logger.With("component", "user_handler"),
	}
}

// List handles GET /api/users requests.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgBadQueryParams)
		return
	}

	if params.CountOnly {
		n, err := h.userService.Count(r.Context(), params.Query.Filter)
		if err != nil {
			h.respondError(w, r, err, "Error counting users")
			return
		}
		shared.RespondWithData(w, r, http.StatusOK, MsgOK, n)
		return
	}

	users, err := h.userService.List(r.Context(), params.Query)
	if err != nil {
		h.respondError(w, r, err, "Error retrieving users")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, MsgOK,
		projectRecords(users, params.Query.Projection))
}

// Create handles POST /api/users requests.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgUserFieldsRequired)
		return
	}

	user, err := req.toDomain()
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgUserFieldsRequired)
		return
	}

	saved, err := h.userService.Create(r.Context(), user)
	if err != nil {
		h.respondError(w, r, err, "Error creating user")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, MsgUserCreated, saved)
}

// Get handles GET /api/users/{id} requests.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	projection, err := parseSelect(r.URL.Query().Get("select"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgBadQueryParams)
		return
	}
	if err := store.ValidateProjection(projection, store.UserFields); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgBadQueryParams)
		return
	}

	user, err := h.userService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err, "Error retrieving user")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, MsgOK, projectRecord(user, projection))
}

// Replace handles PUT /api/users/{id} requests as a full replace.
func (h *UserHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgUserFieldsRequired)
		return
	}

	user, err := req.toDomain()
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgUserFieldsRequired)
		return
	}

	saved, err := h.userService.Replace(r.Context(), chi.URLParam(r, "id"), user)
	if err != nil {
		h.respondError(w, r, err, "Error updating user")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, MsgUserUpdated, saved)
}

// Delete handles DELETE /api/users/{id} requests.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.userService.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err, "Error deleting user")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, MsgUserDeleted, removed)
}

// respondError translates service errors into the user endpoints' responses.
func (h *UserHandler) respondError(w http.ResponseWriter, r *http.Request, err error, serverMessage string) {
	switch {
	case store.IsNotFoundError(err):
		shared.RespondWithError(w, r, http.StatusNotFound, MsgUserNotFound)
	case store.IsDuplicateError(err):
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgDuplicateEmail)
	case errors.Is(err, store.ErrInvalidQuery):
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgBadQueryParams)
	case errors.Is(err, domain.ErrValidation):
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgUserFieldsRequired)
	default:
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), serverMessage, err)
	}
}
