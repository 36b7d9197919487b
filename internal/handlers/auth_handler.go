package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stash/internal/errors"
	"stash/internal/middleware"
	"stash/internal/models"
	"stash/internal/services"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	userService    services.UserServicer
	sessionService services.SessionServicer
	auditService   services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService services.UserServicer, sessionService services.SessionServicer, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{
		userService:    userService,
		sessionService: sessionService,
		auditService:   auditService,
	}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func userResponse(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	}
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a new user with email and password; a session cookie is set on success
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} UserResponse "User registered and session opened"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.CreateUser(req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := h.sessionService.Create(user)
	if err != nil {
		respondWithError(c, err)
		return
	}
	middleware.SetSessionCookie(c, token)

	h.auditService.Log(user.ID, "REGISTER", "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, gin.H{"user": userResponse(user)})
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate a user and open a session (cookie-based)
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} UserResponse "User authenticated and session opened"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.AttemptLogin(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := h.sessionService.Create(user)
	if err != nil {
		respondWithError(c, err)
		return
	}
	middleware.SetSessionCookie(c, token)

	h.auditService.Log(user.ID, "LOGIN", "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

// Logout destroys the current session
// @Summary     Logout user
// @Description Destroy the current session and clear the session cookie
// @Tags        auth
// @Accept      json
// @Produce     json
// @Success     200 {object} MessageResponse "Session destroyed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && token != "" {
		if err := h.sessionService.Destroy(token); err != nil {
			respondWithError(c, err)
			return
		}
	}
	middleware.ClearSessionCookie(c)

	if userID, err := getUserID(c); err == nil {
		h.auditService.Log(userID, "LOGOUT", "user", userID, c.ClientIP(), nil)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetSession returns the user bound to the current session
// @Summary     Get current session
// @Description Get the authenticated user's profile for the current session
// @Tags        auth
// @Accept      json
// @Produce     json
// @Success     200 {object} UserResponse "Session user"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/session [get]
func (h *AuthHandler) GetSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}
