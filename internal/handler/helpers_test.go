package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/tenant-task-api/internal/model"
	"github.com/BuzzLyutic/tenant-task-api/internal/repo"
	"github.com/BuzzLyutic/tenant-task-api/internal/repo/memory"
	"github.com/BuzzLyutic/tenant-task-api/internal/service"
	"github.com/BuzzLyutic/tenant-task-api/internal/token"
	"github.com/BuzzLyutic/tenant-task-api/internal/validation"
)

const testSecret = "handler-test-secret"

type fixture struct {
	users  *memory.UserStore
	tasks  *memory.TaskStore
	tokens *token.Service
	auth   *service.AuthService
	authH  *AuthHandler
	taskH  *TaskHandler
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	users := memory.NewUserStore()
	tasks := memory.NewTaskStore()
	tokens := token.NewService(testSecret, time.Hour)
	v := validation.New()

	auth, err := service.NewAuthService(users, tokens, v, bcrypt.MinCost)
	require.NoError(t, err)

	logger := zap.NewNop()
	return &fixture{
		users:  users,
		tasks:  tasks,
		tokens: tokens,
		auth:   auth,
		authH:  NewAuthHandler(auth, logger),
		taskH:  NewTaskHandler(service.NewTaskService(tasks, v), logger),
	}
}

// register заводит пользователя через сервис и возвращает его Principal.
func (f *fixture) register(t *testing.T, username, email string) (model.Principal, string) {
	t.Helper()
	tok, err := f.auth.Register(context.Background(), model.RegisterInput{
		Username: username,
		Email:    email,
		Password: "secret1",
	})
	require.NoError(t, err)

	claims, err := f.tokens.Verify(tok)
	require.NoError(t, err)
	return model.Principal{UserID: claims.UserID, TenantID: claims.TenantID}, tok
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewReader([]byte(s))
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// newRequest собирает запрос с Principal в контексте и параметром taskId для chi.
func newRequest(t *testing.T, method, target string, body any, p *model.Principal, taskID string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, jsonBody(t, body))
		req.Header.Set("Content-Type", "application/json")
	}

	ctx := req.Context()
	if taskID != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("taskId", taskID)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	if p != nil {
		ctx = WithPrincipal(ctx, *p)
	}
	return req.WithContext(ctx)
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body["message"]
}

func validTask() model.TaskInput {
	return model.TaskInput{
		Title:       "Buy milk",
		Description: "Two liters",
		DueDate:     "2030-01-01",
		Priority:    "low",
	}
}

var errStoreDown = errors.New("connection refused")

// brokenTasks - хранилище, которое всегда падает.
type brokenTasks struct{}

func (brokenTasks) Create(context.Context, model.Task) (model.Task, error) {
	return model.Task{}, errStoreDown
}

func (brokenTasks) Get(context.Context, string, string) (model.Task, error) {
	return model.Task{}, errStoreDown
}

func (brokenTasks) List(context.Context, string) ([]model.Task, error) {
	return nil, errStoreDown
}

func (brokenTasks) Update(context.Context, model.Task) (model.Task, error) {
	return model.Task{}, errStoreDown
}

func (brokenTasks) Delete(context.Context, string, string) error {
	return errStoreDown
}

// brokenUsers отдает ошибку на любой запрос.
type brokenUsers struct{}

func (brokenUsers) Create(context.Context, model.User) (model.User, error) {
	return model.User{}, errStoreDown
}

func (brokenUsers) GetByID(context.Context, string) (model.User, error) {
	return model.User{}, errStoreDown
}

func (brokenUsers) GetByEmail(context.Context, string) (model.User, error) {
	return model.User{}, errStoreDown
}

var (
	_ repo.TaskRepository = brokenTasks{}
	_ repo.UserRepository = brokenUsers{}
)
