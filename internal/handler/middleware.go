package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tenant-task-api/internal/model"
	"github.com/BuzzLyutic/tenant-task-api/internal/observability"
	"github.com/BuzzLyutic/tenant-task-api/internal/service"
	"github.com/BuzzLyutic/tenant-task-api/pkg/respond"
)

type principalKey struct{}

func WithPrincipal(ctx context.Context, p model.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(model.Principal)
	return p, ok
}

// RequireAuth пропускает дальше только запросы с валидным Bearer-токеном
// и кладет Principal в контекст.
func RequireAuth(auth *service.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				observability.RecordAuth("authenticate", observability.OutcomeRejected)
				respond.Error(w, r, http.StatusUnauthorized, msgAccessDenied)
				return
			}

			p, err := auth.Authenticate(r.Context(), raw)
			switch {
			case err == nil:
			case errors.Is(err, service.ErrUnauthorized):
				observability.RecordAuth("authenticate", observability.OutcomeRejected)
				respond.Error(w, r, http.StatusUnauthorized, msgInvalidToken)
				return
			default:
				observability.RecordAuth("authenticate", observability.OutcomeError)
				handleError(w, r, logger, err)
				return
			}

			observability.RecordAuth("authenticate", observability.OutcomeSuccess)
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}
