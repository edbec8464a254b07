package handlers

import (
	"errors"
	"net/http"

	"helpdesk/internal/models"
	"helpdesk/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/guregu/null/v5"
)

// UserHandler serves the admin-only user management endpoints. Role
// gating happens in the router via RequireRole.
type UserHandler struct {
	store *storage.Store
}

func NewUserHandler(store *storage.Store) *UserHandler {
	return &UserHandler{store: store}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	// Password hashes are excluded by the model's json tags.
	c.JSON(http.StatusOK, users)
}

type updateUserRequest struct {
	Role null.String `json:"role"`
}

// UpdateRole overwrites the target user's role with whatever string the
// admin supplied. An absent role field is a successful no-op.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		errorJSON(c, http.StatusNotFound, "User not found")
		return
	}

	if _, err := h.store.UserByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "User not found")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Role.Valid {
		if err := h.store.SetUserRole(c.Request.Context(), id, models.UserRole(req.Role.String)); err != nil {
			errorJSON(c, http.StatusInternalServerError, "Internal server error")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "User role updated"})
}
