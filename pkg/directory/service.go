package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tendant/simple-admin/pkg/identity"
	"github.com/tendant/simple-admin/pkg/password"
	"golang.org/x/exp/slog"
)

// DirectoryService provides user directory operations over an identity store
type DirectoryService struct {
	store  identity.Store
	hasher password.Hasher
	policy *password.Policy
}

// Option configures a DirectoryService
type Option func(*DirectoryService)

// WithPasswordPolicy overrides the default password policy
func WithPasswordPolicy(policy *password.Policy) Option {
	return func(s *DirectoryService) {
		s.policy = policy
	}
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(store identity.Store, hasher password.Hasher, opts ...Option) *DirectoryService {
	s := &DirectoryService{
		store:  store,
		hasher: hasher,
		policy: password.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListUsers returns all users with the names of the roles they hold.
// The full collection is loaded; there is no pagination.
func (s *DirectoryService) ListUsers(ctx context.Context) ([]UserSummary, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, user := range users {
		roles, err := s.store.GetUserRoles(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get roles for user %s: %w", user.ID, err)
		}
		summaries = append(summaries, UserSummary{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Roles:     roles,
		})
	}
	return summaries, nil
}

// GetUserForEdit returns the edit projection for a user. An empty id means
// "create new" and yields a blank template rather than an error.
func (s *DirectoryService) GetUserForEdit(ctx context.Context, id string) (UserEdit, error) {
	if id == "" {
		return UserEdit{}, nil
	}

	userID, err := uuid.Parse(id)
	if err != nil {
		return UserEdit{}, fmt.Errorf("%w: %s", identity.ErrUserNotFound, id)
	}

	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return UserEdit{}, err
	}

	return UserEdit{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
	}, nil
}

// CreateUser validates the fields, hashes the password, and persists a new
// user. Validation failures come back as a ValidationErrors list; they are
// reported for re-display, never logged as infrastructure errors.
func (s *DirectoryService) CreateUser(ctx context.Context, params CreateUserParams) (uuid.UUID, error) {
	if errs := s.validateCreate(params); len(errs) > 0 {
		return uuid.Nil, errs
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, identity.CreateUserParams{
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PhoneNumber:  params.PhoneNumber,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, identity.ErrDuplicateEmail) {
			return uuid.Nil, ValidationErrors{{Field: "email", Message: "email already in use"}}
		}
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("Created user", "userId", user.ID, "email", user.Email)
	return user.ID, nil
}

// UpdateUser overwrites a user's profile fields and credential hash.
// Email and password are both required on every update; if either is missing
// the update is rejected whole, no partial write happens.
func (s *DirectoryService) UpdateUser(ctx context.Context, params UpdateUserParams) error {
	_, err := s.store.FindUserByID(ctx, params.ID)
	if err != nil {
		return err
	}

	if errs := s.validateUpdate(params); len(errs) > 0 {
		return errs
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.store.UpdateUser(ctx, identity.UpdateUserParams{
		ID:           params.ID,
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PhoneNumber:  params.PhoneNumber,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, identity.ErrDuplicateEmail) {
			return ValidationErrors{{Field: "email", Message: "email already in use"}}
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	slog.Info("Updated user", "userId", params.ID)
	return nil
}
