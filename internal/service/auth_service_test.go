package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"salonpos-backend/internal/config"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/repository"
)

type fakeUsers struct {
	users []domain.User
}

func (f *fakeUsers) Create(_ context.Context, p repository.CreateUserParams) (*domain.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, p.Email) {
			return nil, domain.ErrConflict
		}
	}
	u := domain.User{ID: int64(len(f.users) + 1), Name: p.Name, Email: p.Email, Role: p.Role, PasswordHash: p.PasswordHash}
	f.users = append(f.users, u)
	return &u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) List(context.Context) ([]domain.User, error) {
	return f.users, nil
}

func newAuthService(users *fakeUsers) AuthService {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	return AuthService{
		Config: config.Config{JWTSecret: "test-secret", AccessTokenTTL: time.Hour},
		Users:  users,
		Clock:  func() time.Time { return now },
	}
}

func TestCreateUserAndLogin(t *testing.T) {
	users := &fakeUsers{}
	svc := newAuthService(users)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateUserInput{Name: "Ana", Email: "Ana@Salon.test", Password: "s3cretpass", Role: domain.RoleReceptionist})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Email != "ana@salon.test" {
		t.Errorf("email = %s, want lowercased", u.Email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("s3cretpass")); err != nil {
		t.Errorf("stored hash does not match: %v", err)
	}

	res, err := svc.Login(ctx, LoginInput{Email: "ana@salon.test", Password: "s3cretpass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	token, err := jwt.Parse(res.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC) }))
	if err != nil || !token.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["role"] != string(domain.RoleReceptionist) || claims["token_type"] != "access" || claims["sub"] != "1" {
		t.Errorf("unexpected claims %v", claims)
	}
	if res.ExpiresAt != time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC).Unix() {
		t.Errorf("expiresAt = %d", res.ExpiresAt)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := &fakeUsers{}
	svc := newAuthService(users)
	ctx := context.Background()
	if _, err := svc.CreateUser(ctx, CreateUserInput{Name: "Ana", Email: "ana@salon.test", Password: "s3cretpass", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "ana@salon.test", Password: "nope"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "ghost@salon.test", Password: "s3cretpass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc := newAuthService(&fakeUsers{})
	ctx := context.Background()
	if _, err := svc.CreateUser(ctx, CreateUserInput{Email: "a@b.c", Password: "longenough", Role: "owner"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.CreateUser(ctx, CreateUserInput{Email: "a@b.c", Password: "short", Role: domain.RoleAdmin}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.CreateUser(ctx, CreateUserInput{Email: "a@b.c", Password: "longenough", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateUser(ctx, CreateUserInput{Email: "A@B.C", Password: "longenough", Role: domain.RoleAdmin}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestGoogleLoginDisabled(t *testing.T) {
	svc := newAuthService(&fakeUsers{})
	if _, err := svc.LoginWithGoogle(context.Background(), "token"); !errors.Is(err, ErrGoogleDisabled) {
		t.Fatalf("err = %v, want ErrGoogleDisabled", err)
	}
}
