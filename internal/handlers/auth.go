package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/confessbox/confessbox/internal/constants"
	"github.com/confessbox/confessbox/internal/flash"
	"github.com/confessbox/confessbox/internal/middleware"
	"github.com/confessbox/confessbox/internal/services"
)

// AuthHandler coordinates registration, login and logout.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Home renders the landing page, or sends an authenticated user straight to
// their dashboard.
func (h *AuthHandler) Home(c *gin.Context) {
	if userID, ok := middleware.GetUserID(c); ok {
		if user, err := h.authService.GetUser(userID); err == nil {
			c.Redirect(http.StatusFound, "/"+user.Username+"/dashboard")
			return
		}
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Flashes": flash.Take(c),
	})
}

// RegisterForm renders the registration form.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Flashes": flash.Take(c),
	})
}

// Register creates a new account from the submitted form.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email    string `form:"email" binding:"required"`
		Username string `form:"username" binding:"required"`
		Password string `form:"password" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Error(c, "/register", "Email, username and password are all required.")
		return
	}

	_, err := h.authService.Register(services.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateEmail):
			flash.Error(c, "/register", "User exists already with this email. Either use another email id or log in.")
		case errors.Is(err, services.ErrDuplicateUsername):
			flash.Error(c, "/register", "Username already taken. Please choose another.")
		default:
			flash.Error(c, "/register", "Registration failed. Please try again.")
		}
		return
	}

	flash.Success(c, "/login", "Registration successful. Please log in.")
}

// LoginForm renders the login form.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flashes": flash.Take(c),
	})
}

// Login authenticates a user by username or email and binds the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `form:"username"`
		Email    string `form:"email"`
		Password string `form:"password"`
	}

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Error(c, "/login", "Invalid login request.")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingIdentifier):
			flash.Error(c, "/login", "Please enter either username or email.")
		case errors.Is(err, services.ErrInvalidCredentials):
			flash.Error(c, "/login", "Invalid credentials. Please try again.")
		default:
			flash.Error(c, "/login", "Login failed. Please try again.")
		}
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		flash.Error(c, "/login", "Failed to start session. Please try again.")
		return
	}

	c.Redirect(http.StatusFound, "/"+user.Username+"/dashboard")
}

// Logout clears the session unconditionally.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()

	flash.Success(c, "/", "You have been logged out.")
}
