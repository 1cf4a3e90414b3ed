package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/confessbox/confessbox/internal/dto"
	"github.com/confessbox/confessbox/internal/flash"
	"github.com/confessbox/confessbox/internal/middleware"
	"github.com/confessbox/confessbox/internal/services"
	"github.com/confessbox/confessbox/internal/utils"
)

// ConfessionHandler serves the confession form, submissions and the
// receiver's dashboard.
type ConfessionHandler struct {
	confessionService *services.ConfessionService
	authService       *services.AuthService
}

// NewConfessionHandler creates a new ConfessionHandler.
func NewConfessionHandler(confessionService *services.ConfessionService, authService *services.AuthService) *ConfessionHandler {
	return &ConfessionHandler{
		confessionService: confessionService,
		authService:       authService,
	}
}

// Form renders the confession form for a receiver. No authentication is
// required: anyone may confess to anyone.
func (h *ConfessionHandler) Form(c *gin.Context) {
	receiver, err := h.confessionService.Receiver(c.Param("username"))
	if err != nil {
		respondReceiverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "confess.html", gin.H{
		"Receiver":   receiver.Username,
		"SenderName": h.senderName(c),
		"Flashes":    flash.Take(c),
	})
}

// Submit stores a confession for the receiver named in the URL.
func (h *ConfessionHandler) Submit(c *gin.Context) {
	username := c.Param("username")
	anonymous := c.PostForm("anonymous") == "on"

	var senderID *uint64
	if id, ok := middleware.GetUserID(c); ok {
		senderID = &id
	}

	confession, err := h.confessionService.Submit(services.SubmitInput{
		ReceiverUsername: username,
		Content:          c.PostForm("confession"),
		Anonymous:        anonymous,
		SenderID:         senderID,
	})
	if err != nil {
		if errors.Is(err, services.ErrMissingContent) {
			flash.Error(c, "/"+username+"/confess", "Please write a confession before sending.")
			return
		}
		respondReceiverError(c, err)
		return
	}

	if confession.Anonymous() {
		flash.Success(c, "/"+username+"/confess", "Your confession has been sent anonymously!")
	} else {
		flash.Success(c, "/"+username+"/confess", "Your confession has been sent!")
	}
}

// Dashboard lists the owner's received confessions, newest first. The owner
// middleware has already verified the session and resolved the user.
func (h *ConfessionHandler) Dashboard(c *gin.Context) {
	user, ok := middleware.GetProfileUser(c)
	if !ok {
		flash.Error(c, "/", "You are not allowed to view this page.")
		return
	}

	params := utils.GetPaginationParams(c)
	confessions, total, err := h.confessionService.ListReceived(user.ID, params)
	if err != nil {
		flash.Error(c, "/", "Failed to load your dashboard. Please try again.")
		return
	}

	view := dto.DashboardView{
		User:        dto.ToUserView(user),
		Confessions: dto.ToConfessionViews(confessions),
		Page:        params.Page,
		TotalPages:  utils.TotalPages(total, params.Limit),
		Total:       total,
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"View":    view,
		"Flashes": flash.Take(c),
	})
}

// senderName resolves the authenticated user's username for display on the
// confession form, empty for anonymous visitors.
func (h *ConfessionHandler) senderName(c *gin.Context) string {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return ""
	}
	user, err := h.authService.GetUser(userID)
	if err != nil {
		return ""
	}
	return user.Username
}

func respondReceiverError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrUserNotFound) {
		flash.Error(c, "/", "User not found.")
		return
	}
	flash.Error(c, "/", "Something went wrong. Please try again.")
}
