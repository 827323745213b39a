package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tjcastle/taskboard-api/internal/api/shared"
	"github.com/tjcastle/taskboard-api/internal/domain"
	"github.com/tjcastle/taskboard-api/internal/service"
	"github.com/tjcastle/taskboard-api/internal/store"
)

// TaskRequest is the request body for creating or replacing a task. A
// replace is a full overwrite: omitted optional fields reset to their
// defaults rather than keeping the stored values.
type TaskRequest struct {
	Name             string     `json:"name"             validate:"required"`
	Description      string     `json:"description"`
	Deadline         *time.Time `json:"deadline"         validate:"required"`
	Completed        bool       `json:"completed"`
	AssignedUser     string     `json:"assignedUser"`
	AssignedUserName string     `json:"assignedUserName"`
}

func (req *TaskRequest) toDomain() (*domain.Task, error) {
	var deadline time.Time
	if req.Deadline != nil {
		deadline = *req.Deadline
	}
	return domain.NewTask(
		req.Name,
		req.Description,
		deadline,
		req.Completed,
		req.AssignedUser,
		req.AssignedUserName,
	)
}

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With("component", "task_handler"),
	}
}

// List handles GET /api/tasks requests.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgBadQueryParams)
		return
	}

	if params.CountOnly {
		n, err := h.taskService.Count(r.Context(), params.Query.Filter)
		if err != nil {
			h.respondError(w, r, err, "Error counting tasks")
			return
		}
		shared.RespondWithData(w, r, http.StatusOK, MsgOK, n)
		return
	}

	tasks, err := h.taskService.List(r.Context(), params.Query)
	if err != nil {
		h.respondError(w, r, err, "Error retrieving tasks")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, MsgOK,
		projectRecords(tasks, params.Query.Projection))
}

// Create handles POST /api/tasks requests.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgTaskFieldsRequired)
		return
	}

	task, err := req.toDomain()
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgTaskFieldsRequired)
		return
	}

	saved, err := h.taskService.Create(r.Context(), task)
	if err != nil {
		h.respondError(w, r, err, "Error creating task")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, MsgTaskCreated, saved)
}

// Get handles GET /api/tasks/{id} requests.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	projection, err := parseSelect(r.URL.Query().Get("select"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgBadQueryParams)
		return
	}
	if err := store.ValidateProjection(projection, store.TaskFields); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgBadQueryParams)
		return
	}

	task, err := h.taskService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err, "Error retrieving task")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, MsgOK, projectRecord(task, projection))
}

// Replace handles PUT /api/tasks/{id} requests as a full replace.
func (h *TaskHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgTaskFieldsRequired)
		return
	}

	task, err := req.toDomain()
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgTaskFieldsRequired)
		return
	}

	saved, err := h.taskService.Replace(r.Context(), chi.URLParam(r, "id"), task)
	if err != nil {
		h.respondError(w, r, err, "Error updating task")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, MsgTaskUpdated, saved)
}

// Delete handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.taskService.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err, "Error deleting task")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, MsgTaskDeleted, removed)
}

// respondError translates service errors into the task endpoints' responses.
// serverMessage is the genericized 500 message; internal detail stays in the
// logs.
func (h *TaskHandler) respondError(w http.ResponseWriter, r *http.Request, err error, serverMessage string) {
	switch {
	case store.IsNotFoundError(err):
		shared.RespondWithError(w, r, http.StatusNotFound, MsgTaskNotFound)
	case errors.Is(err, store.ErrInvalidQuery):
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgBadQueryParams)
	case errors.Is(err, domain.ErrValidation):
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgTaskFieldsRequired)
	default:
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), serverMessage, err)
	}
}
