package handlers

import (
	"errors"
	"net/http"

	"helpdesk/internal/middleware"
	"helpdesk/internal/models"
	"helpdesk/internal/storage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	store *storage.Store
}

func NewAuthHandler(store *storage.Store) *AuthHandler {
	return &AuthHandler{store: store}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// Accepted but ignored on registration: accounts always start as
	// plain users.
	Role string `json:"role"`
}

// Register creates a new user-role account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		errorJSON(c, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := h.store.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			errorJSON(c, http.StatusBadRequest, "User already exists")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created", "role": user.Role})
}

// Login verifies credentials and binds the session to the user. A wrong
// password and an unknown username produce the same response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.store.UserByUsername(c.Request.Context(), req.Username)
	if err == nil {
		err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	}
	if err != nil {
		errorJSON(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.SessionUserKey, user.ID)
	if err := sess.Save(); err != nil {
		errorJSON(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged in", "role": user.Role})
}

// Logout clears the session. Routed behind RequireAuth, so calling it
// without an active session yields 401.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	if err := sess.Save(); err != nil {
		errorJSON(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
