package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcggEz/gradalyze/internal/config"
	"github.com/mcggEz/gradalyze/internal/users"
)

type service struct {
	users  users.System
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

// New creates an auth System backed by the profile system.
func New(cfg *config.AuthConfig, usersSys users.System, logger *slog.Logger) System {
	return &service{
		users:  usersSys,
		secret: []byte(cfg.Secret),
		ttl:    cfg.TokenTTLDuration(),
		logger: logger.With("system", "auth"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Register(ctx context.Context, cmd RegisterCommand) (*Session, error) {
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	if cmd.Email == "" || cmd.Password == "" || cmd.Name == "" {
		return nil, ErrMissingFields
	}
	if len(cmd.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, users.CreateCommand{
		Email:         cmd.Email,
		Name:          cmd.Name,
		StudentNumber: cmd.StudentNumber,
		Program:       cmd.Program,
		PasswordHash:  string(hash),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account registered", "email", user.Email)
	return s.session(user)
}

func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("login succeeded", "email", email)
	return s.session(user)
}

func (s *service) ProfileByEmail(ctx context.Context, email string) (*users.User, error) {
	return s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *service) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *service) session(user *users.User) (*Session, error) {
	expires := time.Now().Add(s.ttl)
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Session{Token: token, ExpiresAt: expires, User: user}, nil
}
