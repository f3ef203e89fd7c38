package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Skotchmaster/order_api/internal/events"
	pkg_hash "github.com/Skotchmaster/order_api/internal/hash"
	"github.com/Skotchmaster/order_api/internal/logging"
	"github.com/Skotchmaster/order_api/internal/models"
	"github.com/Skotchmaster/order_api/internal/repo"
	"github.com/Skotchmaster/order_api/internal/tokens"
	"github.com/Skotchmaster/order_api/internal/transport"
)

const MinPasswordLength = 6

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type AuthService struct {
	Repo      UserStore
	Tokens    *tokens.Issuer
	Publisher events.Publisher
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*transport.AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	email := NormalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)

	if email == "" || name == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email, name and password are required", ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(req.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must have at least %d characters", ErrValidation, MinPasswordLength)
	}
	if len(req.Password) > MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password must have at most %d bytes", ErrValidation, MaxPasswordBytes)
	}

	exists, err := s.Repo.EmailExists(ctx, email)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot check email", "error", err)
		return nil, err
	}
	if exists {
		l.Warn("register_error", "status", 400, "reason", "email already registered")
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	pwHash, err := pkg_hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{Email: email, Name: name, PasswordHash: pwHash}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			l.Warn("register_error", "status", 400, "reason", "email already registered")
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		l.Error("register_error", "status", 500, "reason", "cannot create user", "error", err)
		return nil, err
	}

	res, err := s.authResult(user)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}

	s.publish(ctx, "user_registered", user)
	l.Info("register_success", "user_id", user.ID)
	return res, nil
}

// Login reports a miss and a wrong password identically.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*transport.AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			pkg_hash.BurnCompare(req.Password)
			l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	if !pkg_hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
		return nil, ErrInvalidCredentials
	}

	res, err := s.authResult(*user)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}

	s.publish(ctx, "user_logged_in", *user)
	l.Info("login_successful", "user_id", user.ID)
	return res, nil
}

// Profile answers from the verified token alone.
func (s *AuthService) Profile(claims *tokens.Claims) (transport.UserResponse, error) {
	if claims == nil || claims.UserID == "" {
		return transport.UserResponse{}, fmt.Errorf("%w: no identity", ErrUnauthorized)
	}
	return transport.UserResponse{ID: claims.UserID, Email: claims.Email, Name: claims.Name}, nil
}

func (s *AuthService) authResult(user models.User) (*transport.AuthResult, error) {
	token, exp, err := s.Tokens.Issue(tokens.Identity{UserID: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		return nil, err
	}
	return &transport.AuthResult{User: transport.FromUser(user), Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) publish(ctx context.Context, eventType string, user models.User) {
	if s.Publisher == nil {
		return
	}
	ev := events.New(eventType, map[string]any{"userId": user.ID, "email": user.Email})
	if err := s.Publisher.PublishEvent(ctx, events.TopicUsers, user.ID, ev); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "event", eventType, "error", err)
	}
}
