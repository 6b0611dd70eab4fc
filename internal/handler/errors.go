package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tenant-task-api/internal/repo"
	"github.com/BuzzLyutic/tenant-task-api/internal/service"
	"github.com/BuzzLyutic/tenant-task-api/internal/validation"
	"github.com/BuzzLyutic/tenant-task-api/pkg/respond"
)

const (
	msgAccessDenied       = "Access denied"
	msgInvalidToken       = "Invalid token"
	msgEmailExists        = "Email already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgTaskNotFound       = "Task not found"
	msgTaskDeleted        = "Task deleted successfully"
	msgInternal           = "Internal Server Error"
)

// handleError переводит доменные ошибки в HTTP-ответы. Причину 500 только логируем.
func handleError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		respond.Error(w, r, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrEmailExists):
		respond.Error(w, r, http.StatusBadRequest, msgEmailExists)
	case errors.Is(err, service.ErrInvalidCredentials):
		respond.Error(w, r, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, service.ErrUnauthorized):
		respond.Error(w, r, http.StatusUnauthorized, msgInvalidToken)
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, msgTaskNotFound)
	default:
		logger.Error("internal error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respond.Error(w, r, http.StatusInternalServerError, msgInternal)
	}
}
