package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/tenant-task-api/internal/model"
	"github.com/BuzzLyutic/tenant-task-api/internal/repo"
	"github.com/BuzzLyutic/tenant-task-api/internal/token"
	"github.com/BuzzLyutic/tenant-task-api/internal/validation"
)

// bcrypt учитывает не больше 72 байт пароля.
const maxBcryptBytes = 72

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
)

type AuthService struct {
	users      repo.UserRepository
	tokens     *token.Service
	validator  *validation.Validator
	bcryptCost int
	// dummyHash is compared against on unknown emails so a failed login
	// costs the same whether or not the account exists.
	dummyHash []byte
}

func NewAuthService(users repo.UserRepository, tokens *token.Service, v *validation.Validator, bcryptCost int) (*AuthService, error) {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare password hasher: %w", err)
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		validator:  v,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}, nil
}

// Register creates a user with a fresh tenant and returns a token for it.
func (s *AuthService) Register(ctx context.Context, in model.RegisterInput) (string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.validator.ValidateRegistration(in); err != nil {
		return "", err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return "", ErrEmailExists
	} else if !errors.Is(err, repo.ErrorNotFound) {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword(passwordKey(in.Password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		TenantID:     uuid.NewString(), // каждый пользователь - свой тенант
	})
	if errors.Is(err, repo.ErrorConflict) {
		return "", ErrEmailExists
	}
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	return s.tokens.Issue(user.ID, user.TenantID)
}

// Login checks credentials. Unknown email and wrong password both yield
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in model.LoginInput) (string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.validator.ValidateLogin(in); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if errors.Is(err, repo.ErrorNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, passwordKey(in.Password))
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordKey(in.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID, user.TenantID)
}

// Authenticate resolves a bearer token to a principal. The tenant is taken
// from the signed claim; the user lookup only proves the account still exists.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (model.Principal, error) {
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, repo.ErrorNotFound) {
		return model.Principal{}, fmt.Errorf("%w: unknown user", ErrUnauthorized)
	}
	if err != nil {
		return model.Principal{}, fmt.Errorf("lookup user: %w", err)
	}

	return model.Principal{UserID: user.ID, TenantID: claims.TenantID}, nil
}

// passwordKey is what actually goes into bcrypt. Passwords longer than bcrypt
// accepts are folded into a SHA-256 digest, so every byte still counts.
func passwordKey(password string) []byte {
	if len(password) <= maxBcryptBytes {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
