package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/simple-admin/pkg/identity"
	"github.com/tendant/simple-admin/pkg/roleassign"
	"golang.org/x/exp/slog"
)

type Handle struct {
	roleAssignService *roleassign.RoleAssignmentService
}

func NewHandle(roleAssignService *roleassign.RoleAssignmentService) *Handle {
	return &Handle{
		roleAssignService: roleAssignService,
	}
}

type ReconcileRolesRequest struct {
	Roles []string `json:"roles"`
}

// Get every role with a selection flag for the user
// (GET /{userID})
func (h *Handle) GetUserRoles(w http.ResponseWriter, r *http.Request) *Response {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		return &Response{
			Code: http.StatusBadRequest,
			body: "invalid user id format",
		}
	}

	selections, err := h.roleAssignService.ListAllWithSelection(r.Context(), userID)
	if err != nil {
		slog.Error("Failed listing roles for user", "userId", userID, "err", err)
		return errorResponse(err)
	}

	return &Response{
		Code: http.StatusOK,
		body: selections,
	}
}

// Replace the user's role set with the submitted selection
// (PUT /{userID})
func (h *Handle) PutUserRoles(w http.ResponseWriter, r *http.Request) *Response {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		return &Response{
			Code: http.StatusBadRequest,
			body: "invalid user id format",
		}
	}

	var request ReconcileRolesRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		return &Response{
			Code: http.StatusBadRequest,
			body: "unable to parse body",
		}
	}

	if err := h.roleAssignService.ReconcileRoles(r.Context(), userID, request.Roles); err != nil {
		slog.Error("Failed reconciling roles", "userId", userID, "err", err)
		return errorResponse(err)
	}

	return &Response{
		Code: http.StatusOK,
		body: "roles updated",
	}
}

func errorResponse(err error) *Response {
	switch {
	case errors.Is(err, identity.ErrUserNotFound):
		return &Response{
			Code: http.StatusNotFound,
			body: "user not found",
		}
	case errors.Is(err, roleassign.ErrRoleRemovalFailed):
		return &Response{
			Code: http.StatusConflict,
			body: "cannot remove user existing roles",
		}
	case errors.Is(err, roleassign.ErrRoleAdditionFailed):
		return &Response{
			Code: http.StatusConflict,
			body: "cannot add selected roles to user",
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

// Handler mounts the role assignment endpoints on a fresh router
func Handler(h *Handle) http.Handler {
	r := chi.NewRouter()
	r.Get("/{userID}", wrap(h.GetUserRoles))
	r.Put("/{userID}", wrap(h.PutUserRoles))
	return r
}
