package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/pitwall/gridbet/internal/domain/user"
	"github.com/pitwall/gridbet/internal/infrastructure/repository/memory"
	"github.com/pitwall/gridbet/internal/platform/id"
)

func newUserFixture(t *testing.T) (*UserService, *memory.UserRepository) {
	t.Helper()
	userRepo := memory.NewUserRepository(nil)
	return NewUserService(userRepo, id.NewRandomGenerator()), userRepo
}

func TestUserService_Create_HashesPasswordAndClearsIt(t *testing.T) {
	t.Parallel()

	service, userRepo := newUserFixture(t)
	created, err := service.Create(context.Background(), CreateUserInput{
		Username: "ayrton",
		Email:    "ayrton@example.com",
		Role:     user.RolePlayer,
		Password: "super-secret",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.PasswordHash != "" {
		t.Fatal("password hash must not leave the service")
	}

	stored, found, err := userRepo.GetByUsername(context.Background(), "ayrton")
	if err != nil || !found {
		t.Fatalf("stored user not found: found=%v err=%v", found, err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "super-secret" {
		t.Fatalf("password must be stored as a bcrypt hash, got %q", stored.PasswordHash)
	}
}

func TestUserService_Create_RejectsDuplicateUsername(t *testing.T) {
	t.Parallel()

	service, _ := newUserFixture(t)
	input := CreateUserInput{
		Username: "ayrton",
		Email:    "ayrton@example.com",
		Role:     user.RolePlayer,
		Password: "super-secret",
	}
	if _, err := service.Create(context.Background(), input); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := service.Create(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate username, got %v", err)
	}
}

func TestUserService_Create_RejectsShortPassword(t *testing.T) {
	t.Parallel()

	service, _ := newUserFixture(t)
	_, err := service.Create(context.Background(), CreateUserInput{
		Username: "ayrton",
		Email:    "ayrton@example.com",
		Role:     user.RolePlayer,
		Password: "short",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestUserService_Profile_ReturnsOwnAccount(t *testing.T) {
	t.Parallel()

	service, _ := newUserFixture(t)
	created, err := service.Create(context.Background(), CreateUserInput{
		Username: "ayrton",
		Email:    "ayrton@example.com",
		Role:     user.RolePlayer,
		Password: "super-secret",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	profile, err := service.Profile(context.Background(), user.Principal{UserID: created.ID, Username: created.Username, Role: created.Role})
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.ID != created.ID || profile.PasswordHash != "" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}
