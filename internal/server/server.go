package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tenant-task-api/internal/config"
	"github.com/BuzzLyutic/tenant-task-api/internal/token"
)

const defaultShutdownTimeout = 10 * time.Second

type Server struct {
	httpServer      *http.Server
	stores          *Stores
	logger          *zap.Logger
	shutdownTimeout time.Duration
}

// New подключает хранилище и собирает HTTP-сервер. Логгер, секрет и
// соединение с БД создаются здесь один раз и дальше только передаются.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Server, error) {
	stores, err := OpenStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	router, err := NewRouter(Deps{
		Users:      stores.Users,
		Tasks:      stores.Tasks,
		Tokens:     token.NewService(cfg.JWTSecret, cfg.TokenTTL),
		BcryptCost: cfg.BcryptCost,
		Logger:     logger,
	})
	if err != nil {
		stores.Close()
		return nil, err
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		stores:          stores,
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

// Run слушает порт до отмены ctx, затем корректно гасит сервер и закрывает хранилище.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.stores.Close()
		return fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	defer s.stores.Close()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server started", zap.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("Server stopped successfully")
	return nil
}
