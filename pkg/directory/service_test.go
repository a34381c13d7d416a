package directory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-admin/pkg/identity"
	"github.com/tendant/simple-admin/pkg/password"
)

func setupService(t *testing.T) (*DirectoryService, *identity.InMemoryStore) {
	t.Helper()
	store := identity.NewInMemoryStore()
	service := NewDirectoryService(store, password.NewBcryptHasher())
	return service, store
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	service, _ := setupService(t)

	tests := []struct {
		name       string
		params     CreateUserParams
		wantFields []string
	}{
		{
			name: "valid user",
			params: CreateUserParams{
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "jane.doe@example.com",
				Password:  "secret-pass",
			},
		},
		{
			name: "valid user with phone",
			params: CreateUserParams{
				FirstName:   "John",
				LastName:    "Smith",
				Email:       "john.smith@example.com",
				PhoneNumber: "+1 555 0100",
				Password:    "secret-pass",
			},
		},
		{
			name: "missing required fields collected together",
			params: CreateUserParams{
				Email:    "someone@example.com",
				Password: "secret-pass",
			},
			wantFields: []string{"first_name", "last_name"},
		},
		{
			name: "invalid email",
			params: CreateUserParams{
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "not-an-email",
				Password:  "secret-pass",
			},
			wantFields: []string{"email"},
		},
		{
			name: "weak password",
			params: CreateUserParams{
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "jane2@example.com",
				Password:  "short",
			},
			wantFields: []string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := service.CreateUser(ctx, tt.params)
			if len(tt.wantFields) > 0 {
				var validationErrs ValidationErrors
				require.ErrorAs(t, err, &validationErrs)
				assert.Len(t, validationErrs, len(tt.wantFields))
				for i, field := range tt.wantFields {
					assert.Equal(t, field, validationErrs[i].Field)
				}
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, userID)
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	service, _ := setupService(t)

	params := CreateUserParams{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane.doe@example.com",
		Password:  "secret-pass",
	}

	_, err := service.CreateUser(ctx, params)
	require.NoError(t, err)

	_, err = service.CreateUser(ctx, params)
	var validationErrs ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	require.Len(t, validationErrs, 1)
	assert.Equal(t, "email", validationErrs[0].Field)
}

func TestCreateThenGetUserForEdit(t *testing.T) {
	ctx := context.Background()
	service, store := setupService(t)

	userID, err := service.CreateUser(ctx, CreateUserParams{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane.doe@example.com",
		PhoneNumber: "+1 555 0100",
		Password:    "secret-pass",
	})
	require.NoError(t, err)

	edit, err := service.GetUserForEdit(ctx, userID.String())
	require.NoError(t, err)
	assert.Equal(t, userID, edit.ID)
	assert.Equal(t, "Jane", edit.FirstName)
	assert.Equal(t, "Doe", edit.LastName)
	assert.Equal(t, "jane.doe@example.com", edit.Email)
	assert.Equal(t, "+1 555 0100", edit.PhoneNumber)

	// Credential is stored hashed, never as the submitted plaintext
	user, err := store.FindUserByID(ctx, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret-pass", user.PasswordHash)
}

func TestGetUserForEdit(t *testing.T) {
	ctx := context.Background()
	service, _ := setupService(t)

	t.Run("empty id yields blank template", func(t *testing.T) {
		edit, err := service.GetUserForEdit(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, UserEdit{}, edit)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := service.GetUserForEdit(ctx, uuid.New().String())
		assert.ErrorIs(t, err, identity.ErrUserNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := service.GetUserForEdit(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, identity.ErrUserNotFound)
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	service, store := setupService(t)

	store.SeedRole(identity.Role{ID: uuid.New(), Name: "Admin"})

	userID, err := service.CreateUser(ctx, CreateUserParams{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane.doe@example.com",
		Password:  "secret-pass",
	})
	require.NoError(t, err)

	err = store.AddUserToRoles(ctx, userID, []string{"Admin"})
	require.NoError(t, err)

	users, err := service.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, userID, users[0].ID)
	assert.Equal(t, "jane.doe@example.com", users[0].Email)
	assert.Equal(t, []string{"Admin"}, users[0].Roles)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	service, store := setupService(t)

	userID, err := service.CreateUser(ctx, CreateUserParams{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane.doe@example.com",
		Password:  "secret-pass",
	})
	require.NoError(t, err)

	t.Run("unknown user", func(t *testing.T) {
		err := service.UpdateUser(ctx, UpdateUserParams{
			ID:        uuid.New(),
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane.doe@example.com",
			Password:  "secret-pass",
		})
		assert.ErrorIs(t, err, identity.ErrUserNotFound)
	})

	t.Run("empty email performs no update", func(t *testing.T) {
		before, err := store.FindUserByID(ctx, userID)
		require.NoError(t, err)

		err = service.UpdateUser(ctx, UpdateUserParams{
			ID:        userID,
			FirstName: "Janet",
			LastName:  "Doe",
			Email:     "",
			Password:  "secret-pass",
		})

		var validationErrs ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		require.Len(t, validationErrs, 1)
		assert.Equal(t, "email", validationErrs[0].Field)

		after, err := store.FindUserByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("empty email and password both reported", func(t *testing.T) {
		err := service.UpdateUser(ctx, UpdateUserParams{
			ID:        userID,
			FirstName: "Janet",
			LastName:  "Doe",
		})

		var validationErrs ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		require.Len(t, validationErrs, 2)
		assert.Equal(t, "email", validationErrs[0].Field)
		assert.Equal(t, "password", validationErrs[1].Field)
	})

	t.Run("successful update overwrites all fields", func(t *testing.T) {
		before, err := store.FindUserByID(ctx, userID)
		require.NoError(t, err)

		err = service.UpdateUser(ctx, UpdateUserParams{
			ID:          userID,
			FirstName:   "Janet",
			LastName:    "Doette",
			Email:       "janet.doette@example.com",
			PhoneNumber: "+1 555 0199",
			Password:    "new-secret",
		})
		require.NoError(t, err)

		after, err := store.FindUserByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "Janet", after.FirstName)
		assert.Equal(t, "Doette", after.LastName)
		assert.Equal(t, "janet.doette@example.com", after.Email)
		assert.Equal(t, "+1 555 0199", after.PhoneNumber)
		assert.NotEqual(t, before.PasswordHash, after.PasswordHash)
		assert.NotEqual(t, "new-secret", after.PasswordHash)
	})
}
