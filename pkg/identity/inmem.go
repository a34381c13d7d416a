package identity

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore implements Store using in-memory storage
type InMemoryStore struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]User
	roles     map[uuid.UUID]Role
	roleOrder []uuid.UUID // enumeration order for ListRoles
	userRoles map[uuid.UUID][]uuid.UUID
}

// NewInMemoryStore creates a new in-memory identity store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:     make(map[uuid.UUID]User),
		roles:     make(map[uuid.UUID]Role),
		userRoles: make(map[uuid.UUID][]uuid.UUID),
	}
}

// ListUsers returns all users that are not soft-deleted
func (s *InMemoryStore) ListUsers(ctx context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []User
	for _, user := range s.users {
		if user.DeletedAt != nil {
			continue
		}
		result = append(result, user)
	}
	return result, nil
}

// FindUserByID gets a user by ID
func (s *InMemoryStore) FindUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok || user.DeletedAt != nil {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

// CreateUser creates a new user
func (s *InMemoryStore) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.DeletedAt == nil && strings.EqualFold(existing.Email, params.Email) {
			return User{}, ErrDuplicateEmail
		}
	}

	now := time.Now()
	user := User{
		ID:             uuid.New(),
		Email:          params.Email,
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		PhoneNumber:    params.PhoneNumber,
		PasswordHash:   params.PasswordHash,
		CreatedAt:      now,
		LastModifiedAt: now,
	}

	s.users[user.ID] = user
	s.userRoles[user.ID] = []uuid.UUID{}
	return user, nil
}

// UpdateUser overwrites a user's profile fields and credential hash
func (s *InMemoryStore) UpdateUser(ctx context.Context, params UpdateUserParams) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[params.ID]
	if !ok || user.DeletedAt != nil {
		return User{}, ErrUserNotFound
	}

	for id, existing := range s.users {
		if id != params.ID && existing.DeletedAt == nil && strings.EqualFold(existing.Email, params.Email) {
			return User{}, ErrDuplicateEmail
		}
	}

	user.Email = params.Email
	user.FirstName = params.FirstName
	user.LastName = params.LastName
	user.PhoneNumber = params.PhoneNumber
	user.PasswordHash = params.PasswordHash
	user.LastModifiedAt = time.Now()
	s.users[params.ID] = user
	return user, nil
}

// ListRoles returns all roles in insertion order
func (s *InMemoryStore) ListRoles(ctx context.Context) ([]Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roles := make([]Role, 0, len(s.roleOrder))
	for _, id := range s.roleOrder {
		roles = append(roles, s.roles[id])
	}
	return roles, nil
}

// GetUserRoles returns the names of the roles a user holds
func (s *InMemoryStore) GetUserRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return nil, ErrUserNotFound
	}

	roleIDs := s.userRoles[userID]
	names := make([]string, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		if role, ok := s.roles[roleID]; ok {
			names = append(names, role.Name)
		}
	}
	return names, nil
}

// IsUserInRole reports whether a user holds the named role
func (s *InMemoryStore) IsUserInRole(ctx context.Context, userID uuid.UUID, roleName string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, roleID := range s.userRoles[userID] {
		if role, ok := s.roles[roleID]; ok && role.Name == roleName {
			return true, nil
		}
	}
	return false, nil
}

// RemoveUserFromRoles removes a user from every named role
func (s *InMemoryStore) RemoveUserFromRoles(ctx context.Context, userID uuid.UUID, roleNames []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return ErrUserNotFound
	}

	remove := make(map[string]bool, len(roleNames))
	for _, name := range roleNames {
		remove[name] = true
	}

	kept := make([]uuid.UUID, 0, len(s.userRoles[userID]))
	for _, roleID := range s.userRoles[userID] {
		if role, ok := s.roles[roleID]; ok && remove[role.Name] {
			continue
		}
		kept = append(kept, roleID)
	}
	s.userRoles[userID] = kept
	return nil
}

// AddUserToRoles adds a user to every named role.
// Fails with ErrRoleNotFound if any name is unknown to the store.
func (s *InMemoryStore) AddUserToRoles(ctx context.Context, userID uuid.UUID, roleNames []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return ErrUserNotFound
	}

	for _, name := range roleNames {
		roleID, ok := s.roleIDByName(name)
		if !ok {
			return ErrRoleNotFound
		}

		already := false
		for _, held := range s.userRoles[userID] {
			if held == roleID {
				already = true
				break
			}
		}
		if !already {
			s.userRoles[userID] = append(s.userRoles[userID], roleID)
		}
	}
	return nil
}

func (s *InMemoryStore) roleIDByName(name string) (uuid.UUID, bool) {
	for _, id := range s.roleOrder {
		if s.roles[id].Name == name {
			return id, true
		}
	}
	return uuid.Nil, false
}

// SeedUser adds a user directly (for testing/initialization)
func (s *InMemoryStore) SeedUser(user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	if s.userRoles[user.ID] == nil {
		s.userRoles[user.ID] = []uuid.UUID{}
	}
}

// SeedRole adds a role directly (for testing/initialization)
func (s *InMemoryStore) SeedRole(role Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[role.ID]; !ok {
		s.roleOrder = append(s.roleOrder, role.ID)
	}
	s.roles[role.ID] = role
}
