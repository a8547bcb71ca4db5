package auth

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	jwtauth "github.com/storylab/backend/internal/auth"
	"github.com/storylab/backend/internal/config"
	"github.com/storylab/backend/internal/domain"
	"github.com/storylab/backend/internal/storage/jsonstore"
)

// newTestService wires a service against a real flat-file store in a temp dir.
func newTestService(t *testing.T) (*Service, *jsonstore.Store) {
	t.Helper()

	store, err := jsonstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("jsonstore.New: %v", err)
	}

	cfg := config.AuthConfig{
		PasswordHashCost: 4, // minimum cost for fast tests
	}
	tokens := jwtauth.NewJWTManager("test-secret-0123456789-0123456789-01", "storylab", time.Hour)

	return NewService(slog.Default(), store.Users(), tokens, cfg), store
}

func register(t *testing.T, svc *Service, email, name string) *AuthResult {
	t.Helper()
	result, err := svc.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: "password",
		Name:     name,
	})
	if err != nil {
		t.Fatalf("Register %s: %v", email, err)
	}
	return result
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	result := register(t, svc, "a@example.com", "A")

	if result.Token == "" {
		t.Error("expected a session token")
	}
	if result.User.PasswordHash == "" {
		t.Error("expected a stored password hash")
	}
	if result.User.Theme.PrimaryColor != domain.DefaultTheme().PrimaryColor {
		t.Error("new user must get the default theme")
	}
	if len(result.User.Friends) != 0 {
		t.Errorf("first user has no one to befriend, got %d friends", len(result.User.Friends))
	}
}

func TestService_Register_DuplicateEmailCaseInsensitive(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	register(t, svc, "a@example.com", "A")

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "A@Example.COM",
		Password: "password",
		Name:     "A2",
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestService_Register_MissingFields(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@example.com"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestService_Register_FriendGraphStaysTotal(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := context.Background()

	a := register(t, svc, "a@example.com", "A")
	b := register(t, svc, "b@example.com", "B")
	c := register(t, svc, "c@example.com", "C")

	users, err := store.Users().Load(ctx)
	if err != nil {
		t.Fatalf("load users: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("users: got=%d, want=3", len(users))
	}

	// Every pair must be mutual friends.
	ids := []uuid.UUID{a.User.ID, b.User.ID, c.User.ID}
	for _, u := range users {
		for _, id := range ids {
			if id == u.ID {
				continue
			}
			if !u.HasFriend(id) {
				t.Errorf("user %s is missing friend %s", u.Name, id)
			}
		}
		if len(u.Friends) != 2 {
			t.Errorf("user %s: got=%d friends, want=2", u.Name, len(u.Friends))
		}
	}
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	registered := register(t, svc, "a@example.com", "A")

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "a@example.com",
		Password: "password",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.User.ID != registered.User.ID {
		t.Errorf("user id: got=%s, want=%s", result.User.ID, registered.User.ID)
	}
	if result.Token == "" {
		t.Error("expected a session token")
	}
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	register(t, svc, "a@example.com", "A")

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "a@example.com",
		Password: "nope",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestService_Login_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: "password",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Login_ExternalAccountHasNoPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.LoginExternal(ctx, ExternalLoginInput{Email: "ext@example.com"})
	if err != nil {
		t.Fatalf("LoginExternal: %v", err)
	}

	_, err = svc.Login(ctx, LoginInput{Email: "ext@example.com", Password: "anything"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for passwordless account, got %v", err)
	}
}

func TestService_LoginExternal_CreatesThenReuses(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := context.Background()
	register(t, svc, "a@example.com", "A")

	first, err := svc.LoginExternal(ctx, ExternalLoginInput{Email: "ext@example.com"})
	if err != nil {
		t.Fatalf("LoginExternal (create): %v", err)
	}
	if first.User.Name != "ext" {
		t.Errorf("name should default to the email local part, got %q", first.User.Name)
	}
	if len(first.User.Friends) != 1 {
		t.Errorf("new external user must be befriended, got %d friends", len(first.User.Friends))
	}

	second, err := svc.LoginExternal(ctx, ExternalLoginInput{Email: "ext@example.com", Name: "Other"})
	if err != nil {
		t.Fatalf("LoginExternal (reuse): %v", err)
	}
	if second.User.ID != first.User.ID {
		t.Error("repeat external login must reuse the account")
	}

	users, err := store.Users().Load(ctx)
	if err != nil {
		t.Fatalf("load users: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("users: got=%d, want=2", len(users))
	}
}

func TestService_ValidateToken(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()
	registered := register(t, svc, "a@example.com", "A")

	userID, err := svc.ValidateToken(ctx, registered.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != registered.User.ID {
		t.Errorf("user id: got=%s, want=%s", userID, registered.User.ID)
	}

	if _, err := svc.ValidateToken(ctx, "garbage"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for garbage token, got %v", err)
	}
}

func TestService_ValidateToken_UnknownSubject(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	// A valid signature whose subject was never persisted.
	tokens := jwtauth.NewJWTManager("test-secret-0123456789-0123456789-01", "storylab", time.Hour)
	token, err := tokens.GenerateToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := svc.ValidateToken(ctx, token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestService_CurrentUser(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()
	registered := register(t, svc, "a@example.com", "A")

	u, err := svc.CurrentUser(ctx, registered.User.ID)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if u.Email != "a@example.com" {
		t.Errorf("email: got=%s, want=a@example.com", u.Email)
	}

	if _, err := svc.CurrentUser(ctx, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
