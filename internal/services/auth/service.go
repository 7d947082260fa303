package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/severedgames/mysteryparty/internal/dependencies/clock"
	"github.com/severedgames/mysteryparty/internal/model"
	"github.com/severedgames/mysteryparty/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Service verifies credentials and issues/validates bearer tokens.
//
// Tokens are stateless HS256 JWTs carrying the username as subject; there is
// no server-side session state and no logout operation.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	secret   []byte
	tokenTTL time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	Secret   string
	TokenTTL time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		Secret:   "dev-secret-change-in-production",
		TokenTTL: 8 * time.Hour,
	}
}

// New creates a new auth service
func New(storage storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.Secret == "" {
		cfg.Secret = DefaultConfig().Secret
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}
	return &Service{
		storage:  storage,
		clock:    clk,
		logger:   logger,
		secret:   []byte(cfg.Secret),
		tokenTTL: cfg.TokenTTL,
	}
}

// Login verifies a username/password pair and returns a signed bearer token.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.storage.GetUser(ctx, model.Username(username))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user.Username)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("user logged in", slog.String("username", username))
	return token, user, nil
}

// CurrentUser resolves a bearer token to the user it was issued for.
// Fails with ErrInvalidToken on malformed, forged, or expired tokens.
func (s *Service) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.storage.GetUser(ctx, model.Username(claims.Subject))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// RequireAdmin verifies the user has the admin role
func (s *Service) RequireAdmin(user *model.User) error {
	if !user.IsAdmin() {
		return model.ErrForbidden
	}
	return nil
}

// issueToken signs a token with sub=username and exp=now+TTL
func (s *Service) issueToken(username model.Username) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   string(username),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
