package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tenant-task-api/internal/model"
	"github.com/BuzzLyutic/tenant-task-api/internal/observability"
	"github.com/BuzzLyutic/tenant-task-api/internal/service"
	"github.com/BuzzLyutic/tenant-task-api/internal/validation"
	"github.com/BuzzLyutic/tenant-task-api/pkg/respond"
)

type AuthHandler struct {
	service *service.AuthService
	logger  *zap.Logger
}

func NewAuthHandler(srv *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterInput
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := h.service.Register(r.Context(), req)
	observability.RecordAuth("register", outcome(err))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, model.TokenResponse{Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginInput
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := h.service.Login(r.Context(), req)
	observability.RecordAuth("login", outcome(err))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, model.TokenResponse{Token: token})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeSuccess
	case errors.Is(err, validation.ErrInvalid),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrInvalidCredentials):
		return observability.OutcomeRejected
	default:
		return observability.OutcomeError
	}
}
