package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/tendant/simple-admin/pkg/directory"
	"github.com/tendant/simple-admin/pkg/identity"
	"golang.org/x/exp/slog"
)

type Handle struct {
	directoryService *directory.DirectoryService
}

func NewHandle(directoryService *directory.DirectoryService) *Handle {
	return &Handle{
		directoryService: directoryService,
	}
}

type CreateUserRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

type UpdateUserRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// Get a list of users with their roles
// (GET /)
func (h *Handle) GetUsers(w http.ResponseWriter, r *http.Request) *Response {
	users, err := h.directoryService.ListUsers(r.Context())
	if err != nil {
		slog.Error("Failed getting users", "err", err)
		return errorResponse(err)
	}

	return &Response{
		Code: http.StatusOK,
		body: users,
	}
}

// Get the edit projection for a user; a blank template when id is omitted
// (GET /edit?id={id})
func (h *Handle) GetUserEdit(w http.ResponseWriter, r *http.Request) *Response {
	id := r.URL.Query().Get("id")

	user, err := h.directoryService.GetUserForEdit(r.Context(), id)
	if err != nil {
		slog.Error("Failed getting user for edit", "id", id, "err", err)
		return errorResponse(err)
	}

	return &Response{
		Code: http.StatusOK,
		body: user,
	}
}

// Create a new user
// (POST /)
func (h *Handle) PostUsers(w http.ResponseWriter, r *http.Request) *Response {
	var request CreateUserRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		return &Response{
			Code: http.StatusBadRequest,
			body: "unable to parse body",
		}
	}

	params := directory.CreateUserParams{}
	copier.Copy(&params, &request)

	userID, err := h.directoryService.CreateUser(r.Context(), params)
	if err != nil {
		slog.Error("Failed creating user", "email", request.Email, "err", err)
		return errorResponse(err)
	}

	idStr := userID.String()
	return &Response{
		Code: http.StatusCreated,
		body: struct {
			ID *string `json:"id,omitempty"`
		}{
			ID: &idStr,
		},
	}
}

// Update user details by ID
// (PUT /{id})
func (h *Handle) PutUsersID(w http.ResponseWriter, r *http.Request) *Response {
	idStr := chi.URLParam(r, "id")
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return &Response{
			Code: http.StatusBadRequest,
			body: "invalid user id format",
		}
	}

	var request UpdateUserRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		return &Response{
			Code: http.StatusBadRequest,
			body: "unable to parse body",
		}
	}

	params := directory.UpdateUserParams{}
	copier.Copy(&params, &request)
	params.ID = userID

	if err := h.directoryService.UpdateUser(r.Context(), params); err != nil {
		slog.Error("Failed updating user", "userId", userID, "err", err)
		return errorResponse(err)
	}

	return &Response{
		Code: http.StatusOK,
		body: "user updated",
	}
}

// errorResponse maps service errors onto the API error contract: validation
// failures carry the field list, NotFound and store outages get their own
// codes, everything else is a generic failure.
func errorResponse(err error) *Response {
	var validationErrs directory.ValidationErrors
	if errors.As(err, &validationErrs) {
		return &Response{
			Code: http.StatusBadRequest,
			body: struct {
				Errors directory.ValidationErrors `json:"errors"`
			}{
				Errors: validationErrs,
			},
		}
	}

	switch {
	case errors.Is(err, identity.ErrUserNotFound):
		return &Response{
			Code: http.StatusNotFound,
			body: "user not found",
		}
	case errors.Is(err, identity.ErrStoreUnavailable):
		return &Response{
			Code: http.StatusServiceUnavailable,
			body: "identity store unavailable",
		}
	default:
		return &Response{
			Code: http.StatusInternalServerError,
			body: "internal error",
		}
	}
}

// Handler mounts the directory endpoints on a fresh router
func Handler(h *Handle) http.Handler {
	r := chi.NewRouter()
	r.Get("/", wrap(h.GetUsers))
	r.Post("/", wrap(h.PostUsers))
	r.Get("/edit", wrap(h.GetUserEdit))
	r.Put("/{id}", wrap(h.PutUsersID))
	return r
}
