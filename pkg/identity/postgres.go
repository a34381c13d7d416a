package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL identity store
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool: pool,
	}
}

const userColumns = `id, created_at, last_modified_at, deleted_at, email, first_name, last_name, phone_number, password_hash`

func scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.CreatedAt,
		&user.LastModifiedAt,
		&user.DeletedAt,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PhoneNumber,
		&user.PasswordHash,
	)
	return user, err
}

// storeErr maps infrastructure failures to ErrStoreUnavailable so callers can
// distinguish them from domain errors.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ListUsers returns all users that are not soft-deleted
func (s *PostgresStore) ListUsers(ctx context.Context) ([]User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("failed to list users", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, storeErr("failed to scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to list users", err)
	}
	return users, nil
}

// FindUserByID gets a user by ID
func (s *PostgresStore) FindUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`

	user, err := scanUser(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, storeErr("failed to get user", err)
	}
	return user, nil
}

// CreateUser creates a new user
func (s *PostgresStore) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	query := `
		INSERT INTO users (email, first_name, last_name, phone_number, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns + `
	`

	user, err := scanUser(s.pool.QueryRow(ctx, query,
		params.Email,
		params.FirstName,
		params.LastName,
		params.PhoneNumber,
		params.PasswordHash,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrDuplicateEmail
		}
		return User{}, storeErr("failed to create user", err)
	}
	return user, nil
}

// UpdateUser overwrites a user's profile fields and credential hash
func (s *PostgresStore) UpdateUser(ctx context.Context, params UpdateUserParams) (User, error) {
	query := `
		UPDATE users
		SET email = $2,
			first_name = $3,
			last_name = $4,
			phone_number = $5,
			password_hash = $6,
			last_modified_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + userColumns + `
	`

	user, err := scanUser(s.pool.QueryRow(ctx, query,
		params.ID,
		params.Email,
		params.FirstName,
		params.LastName,
		params.PhoneNumber,
		params.PasswordHash,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return User{}, ErrDuplicateEmail
		}
		return User{}, storeErr("failed to update user", err)
	}
	return user, nil
}

// ListRoles returns all roles in name order
func (s *PostgresStore) ListRoles(ctx context.Context) ([]Role, error) {
	query := `
		SELECT id, name
		FROM roles
		ORDER BY name
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("failed to list roles", err)
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, storeErr("failed to scan role", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to list roles", err)
	}
	return roles, nil
}

// GetUserRoles returns the names of the roles a user holds
func (s *PostgresStore) GetUserRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `
		SELECT r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.name
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, storeErr("failed to get user roles", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storeErr("failed to scan role name", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to get user roles", err)
	}
	return names, nil
}

// IsUserInRole reports whether a user holds the named role
func (s *PostgresStore) IsUserInRole(ctx context.Context, userID uuid.UUID, roleName string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM user_roles ur
			JOIN roles r ON r.id = ur.role_id
			WHERE ur.user_id = $1 AND r.name = $2
		)
	`

	var inRole bool
	if err := s.pool.QueryRow(ctx, query, userID, roleName).Scan(&inRole); err != nil {
		return false, storeErr("failed to check role membership", err)
	}
	return inRole, nil
}

// RemoveUserFromRoles removes a user from every named role
func (s *PostgresStore) RemoveUserFromRoles(ctx context.Context, userID uuid.UUID, roleNames []string) error {
	query := `
		DELETE FROM user_roles
		WHERE user_id = $1
		  AND role_id IN (SELECT id FROM roles WHERE name = ANY($2))
	`

	if _, err := s.pool.Exec(ctx, query, userID, roleNames); err != nil {
		return storeErr("failed to remove user from roles", err)
	}
	return nil
}

// AddUserToRoles adds a user to every named role.
// Fails with ErrRoleNotFound if any name is unknown to the store.
func (s *PostgresStore) AddUserToRoles(ctx context.Context, userID uuid.UUID, roleNames []string) error {
	for _, name := range roleNames {
		var roleID uuid.UUID
		err := s.pool.QueryRow(ctx, `SELECT id FROM roles WHERE name = $1`, name).Scan(&roleID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: %s", ErrRoleNotFound, name)
			}
			return storeErr("failed to resolve role", err)
		}

		_, err = s.pool.Exec(ctx, `
			INSERT INTO user_roles (user_id, role_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, userID, roleID)
		if err != nil {
			return storeErr("failed to add user to role", err)
		}
	}
	return nil
}

// CreateRole creates a new role. Used by seeding and tests; role lifecycle is
// otherwise owned by the store's administrators.
func (s *PostgresStore) CreateRole(ctx context.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx, `
		INSERT INTO roles (name)
		VALUES ($1)
		RETURNING id
	`, name).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, fmt.Errorf("role already exists: %s", name)
		}
		return uuid.Nil, storeErr("failed to create role", err)
	}
	return id, nil
}
