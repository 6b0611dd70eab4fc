package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tenant-task-api/internal/model"
	"github.com/BuzzLyutic/tenant-task-api/internal/service"
	"github.com/BuzzLyutic/tenant-task-api/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req model.TaskInput
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.service.Create(r.Context(), p.TenantID, req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", "/api/tasks/"+task.ID)
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	task, err := h.service.Get(r.Context(), p.TenantID, chi.URLParam(r, "taskId"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	tasks, err := h.service.List(r.Context(), p.TenantID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req model.TaskInput
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.service.Update(r.Context(), p.TenantID, chi.URLParam(r, "taskId"), req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), p.TenantID, chi.URLParam(r, "taskId")); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, respond.Message{Message: msgTaskDeleted})
}

// principal достается из контекста; без RequireAuth на маршруте его там нет.
func (h *TaskHandler) principal(w http.ResponseWriter, r *http.Request) (model.Principal, bool) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok || p.TenantID == "" {
		respond.Error(w, r, http.StatusUnauthorized, msgAccessDenied)
		return model.Principal{}, false
	}
	return p, true
}
