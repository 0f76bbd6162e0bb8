package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pitwall/gridbet/internal/domain/user"
	"github.com/pitwall/gridbet/internal/platform/id"
)

// UserService is operator-facing account management. There is no self-service
// registration; operators provision accounts.
type UserService struct {
	userRepo user.Repository
	idGen    id.Generator
	now      func() time.Time
}

func NewUserService(userRepo user.Repository, idGen id.Generator) *UserService {
	return &UserService{
		userRepo: userRepo,
		idGen:    idGen,
		now:      time.Now,
	}
}

type CreateUserInput struct {
	Username string
	Email    string
	Role     string
	Password string
}

func (in CreateUserInput) validate() error {
	if in.Username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if in.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !user.ValidRole(in.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}
	if len(in.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Create")
	defer span.End()

	if err := input.validate(); err != nil {
		return user.User{}, err
	}

	_, taken, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return user.User{}, fmt.Errorf("check username availability: %w", err)
	}
	if taken {
		return user.User{}, fmt.Errorf("%w: username %s is taken", ErrInvalidInput, input.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}
	userID, err := s.idGen.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	now := s.now().UTC()
	created := user.User{
		ID:           userID,
		Username:     input.Username,
		Email:        input.Email,
		Role:         input.Role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, created); err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	created.PasswordHash = ""
	return created, nil
}

func (s *UserService) Get(ctx context.Context, userID string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Get")
	defer span.End()

	current, err := s.getUser(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	current.PasswordHash = ""
	return current, nil
}

func (s *UserService) List(ctx context.Context) ([]user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.List")
	defer span.End()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *UserService) Update(ctx context.Context, userID string, patch user.Patch) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Update")
	defer span.End()

	current, err := s.getUser(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	if patch.Username != nil && *patch.Username != current.Username {
		if *patch.Username == "" {
			return user.User{}, fmt.Errorf("%w: username cannot be empty", ErrInvalidInput)
		}
		_, taken, err := s.userRepo.GetByUsername(ctx, *patch.Username)
		if err != nil {
			return user.User{}, fmt.Errorf("check username availability: %w", err)
		}
		if taken {
			return user.User{}, fmt.Errorf("%w: username %s is taken", ErrInvalidInput, *patch.Username)
		}
		current.Username = *patch.Username
	}
	if patch.Email != nil {
		if *patch.Email == "" {
			return user.User{}, fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
		}
		current.Email = *patch.Email
	}
	if patch.Role != nil {
		if !user.ValidRole(*patch.Role) {
			return user.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *patch.Role)
		}
		current.Role = *patch.Role
	}
	if patch.Password != nil {
		if len(*patch.Password) < 8 {
			return user.User{}, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.User{}, fmt.Errorf("hash password: %w", err)
		}
		current.PasswordHash = string(hash)
	}
	current.UpdatedAt = s.now().UTC()

	if err := s.userRepo.Update(ctx, current); err != nil {
		return user.User{}, fmt.Errorf("update user: %w", err)
	}

	current.PasswordHash = ""
	return current, nil
}

func (s *UserService) Delete(ctx context.Context, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Delete")
	defer span.End()

	if _, err := s.getUser(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// Profile returns the signed-in user's own record.
func (s *UserService) Profile(ctx context.Context, principal user.Principal) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Profile")
	defer span.End()

	current, err := s.getUser(ctx, principal.UserID)
	if err != nil {
		return user.User{}, err
	}
	current.PasswordHash = ""
	return current, nil
}

func (s *UserService) getUser(ctx context.Context, userID string) (user.User, error) {
	if userID == "" {
		return user.User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	current, found, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return user.User{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return current, nil
}
