package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"salonpos-backend/internal/config"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/ports"
	"salonpos-backend/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrGoogleDisabled     = errors.New("google sign-in is not configured")
)

type UserStore interface {
	Create(ctx context.Context, p repository.CreateUserParams) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type AuthService struct {
	Config       config.Config
	Users        UserStore
	Logger       *slog.Logger
	FirebaseAuth *fbauth.Client
	Clock        ports.Clock
}

type AuthResult struct {
	AccessToken string
	User        domain.User
	ExpiresAt   int64
}

type LoginInput struct {
	Email    string
	Password string
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

func (s AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	user, err := s.Users.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, upstream(err)
	}
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(user)
}

// LoginWithGoogle verifies a Google or Firebase ID token and signs in the
// user owning its email. Accounts are never created this way.
func (s AuthService) LoginWithGoogle(ctx context.Context, rawToken string) (*AuthResult, error) {
	var email string
	switch {
	case s.FirebaseAuth != nil:
		tok, err := s.FirebaseAuth.VerifyIDToken(ctx, rawToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		email, _ = tok.Claims["email"].(string)
	case s.Config.GoogleClientID != "":
		payload, err := idtoken.Validate(ctx, rawToken, s.Config.GoogleClientID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		email, _ = payload.Claims["email"].(string)
	default:
		return nil, ErrGoogleDisabled
	}
	if email == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, upstream(err)
	}
	return s.issueToken(user)
}

func (s AuthService) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, in.Role)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: password must have at least 8 characters", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hashed := string(hash)
	user, err := s.Users.Create(ctx, repository.CreateUserParams{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Role:         in.Role,
		PasswordHash: &hashed,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: email already used", domain.ErrConflict)
		}
		return nil, upstream(err)
	}
	if s.Logger != nil {
		s.Logger.Info("user created", "id", user.ID, "role", user.Role)
	}
	return user, nil
}

func (s AuthService) Me(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	return u, upstream(err)
}

func (s AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.Users.List(ctx)
	return users, upstream(err)
}

func (s AuthService) issueToken(user *domain.User) (*AuthResult, error) {
	now := s.Clock.Now()
	exp := now.Add(s.Config.AccessTokenTTL)

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        fmt.Sprintf("%d", user.ID),
		"email":      user.Email,
		"role":       string(user.Role),
		"token_type": "access",
		"exp":        exp.Unix(),
		"iat":        now.Unix(),
	}).SignedString([]byte(s.Config.JWTSecret))
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: access, User: *user, ExpiresAt: exp.Unix()}, nil
}
