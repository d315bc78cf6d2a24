package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"blog-api/globals"
	"blog-api/models"
	"blog-api/pkg/tokens"
	"blog-api/repository"
	"blog-api/types"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// UserStore is the slice of the users repository the auth handlers need.
type UserStore interface {
	CreateUser(username, email, password string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

type AuthHandler struct {
	users  UserStore
	tokens tokens.Store
}

func NewAuthHandler(users UserStore, tokenStore tokens.Store) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokenStore}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header, or returns "".
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// CurrentUser resolves the acting user for a request. A valid bearer
// token wins; an absent or invalid token falls through to the session
// cookie. Returns nil when the request is unauthenticated.
func (h *AuthHandler) CurrentUser(c *gin.Context) (*models.User, error) {
	if token := bearerToken(c); token != "" {
		if userID, ok := h.tokens.Resolve(token); ok {
			user, err := h.users.GetUserByID(userID)
			if err != nil {
				return nil, err
			}
			if user != nil {
				return user, nil
			}
		}
	}

	session := sessions.Default(c)
	if v := session.Get(globals.SessionUserIDKey); v != nil {
		if userID, ok := v.(int); ok {
			return h.users.GetUserByID(userID)
		}
	}

	return nil, nil
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorBody("Request body must be JSON"))
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, types.ErrorBody("Missing username, email, or password"))
		return
	}
	if len(req.Username) < globals.MinUsernameLen {
		c.JSON(http.StatusBadRequest, types.ErrorBody("Username must be at least 3 characters long"))
		return
	}
	if len(req.Password) < globals.MinPasswordLen {
		c.JSON(http.StatusBadRequest, types.ErrorBody("Password must be at least 6 characters long"))
		return
	}

	user, err := h.users.CreateUser(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusConflict, types.ErrorBody("User already exists with that username or email"))
			return
		}
		log.Printf("register: %v", err)
		c.JSON(http.StatusInternalServerError, types.InternalErrorBody())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorBody("Request body must be JSON"))
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, types.ErrorBody("Email and password are required"))
		return
	}

	user, err := h.users.GetUserByEmail(req.Email)
	if err != nil {
		log.Printf("login: %v", err)
		c.JSON(http.StatusInternalServerError, types.InternalErrorBody())
		return
	}
	// Unknown email and wrong password return the same error to avoid
	// user enumeration.
	if user == nil || !h.users.VerifyPassword(user, req.Password) {
		c.JSON(http.StatusUnauthorized, types.ErrorBody("Invalid email or password"))
		return
	}

	token := h.tokens.Issue(user.ID)

	session := sessions.Default(c)
	session.Set(globals.SessionUserIDKey, user.ID)
	session.Set(globals.SessionUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		log.Printf("login: saving session: %v", err)
		c.JSON(http.StatusInternalServerError, types.InternalErrorBody())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Logout revokes the presented bearer token (if any) and clears the
// session. It always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := bearerToken(c); token != "" {
		h.tokens.Revoke(token)
	}

	session := sessions.Default(c)
	session.Delete(globals.SessionUserIDKey)
	session.Delete(globals.SessionUsernameKey)
	if err := session.Save(); err != nil {
		log.Printf("logout: saving session: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.CurrentUser(c)
	if err != nil {
		log.Printf("me: %v", err)
		c.JSON(http.StatusInternalServerError, types.InternalErrorBody())
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, types.ErrorBody("Not authenticated or token invalid/expired"))
		return
	}
	c.JSON(http.StatusOK, user)
}
