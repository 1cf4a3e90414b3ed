package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/confessbox/confessbox/internal/dto"
	"github.com/confessbox/confessbox/internal/flash"
	"github.com/confessbox/confessbox/internal/middleware"
	"github.com/confessbox/confessbox/internal/services"
)

// ProfileHandler serves profile pages, profile edits and stored pictures.
type ProfileHandler struct {
	profileService *services.ProfileService
	maxUploadBytes int64
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService, maxUploadBytes int64) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Show renders a public profile. Owners get an edit link; nothing is hidden
// from visitors beyond that.
func (h *ProfileHandler) Show(c *gin.Context) {
	user, err := h.profileService.Get(c.Param("username"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			flash.Error(c, "/", "User not found.")
		} else {
			flash.Error(c, "/", "Something went wrong. Please try again.")
		}
		return
	}

	isOwner := false
	if userID, ok := middleware.GetUserID(c); ok {
		isOwner = userID == user.ID
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"User":    dto.ToUserView(*user),
		"IsOwner": isOwner,
		"Flashes": flash.Take(c),
	})
}

// EditForm renders the profile edit form for the owner.
func (h *ProfileHandler) EditForm(c *gin.Context) {
	user, ok := middleware.GetProfileUser(c)
	if !ok {
		flash.Error(c, "/", "You are not allowed to view this page.")
		return
	}

	c.HTML(http.StatusOK, "profile_edit.html", gin.H{
		"User":    dto.ToUserView(user),
		"Flashes": flash.Take(c),
	})
}

// Update applies profile changes for the owner. The whole request body is
// capped at the configured upload limit; an oversized request flashes and
// redirects home instead of failing the process.
func (h *ProfileHandler) Update(c *gin.Context) {
	user, ok := middleware.GetProfileUser(c)
	if !ok {
		flash.Error(c, "/", "You are not allowed to view this page.")
		return
	}
	profileURL := "/" + user.Username + "/profile"

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large") {
			flash.Error(c, "/", "Uploaded data is too large. Please try a smaller picture.")
			return
		}
		flash.Error(c, profileURL, "Failed to read the submitted form.")
		return
	}

	input := services.UpdateInput{
		Name: c.PostForm("name"),
		Bio:  c.PostForm("bio"),
	}

	if fileHeader, err := c.FormFile("pfp"); err == nil && fileHeader.Size > 0 {
		file, err := fileHeader.Open()
		if err != nil {
			flash.Error(c, profileURL, "Failed to read the uploaded picture.")
			return
		}
		defer file.Close()

		input.Picture = &services.PictureUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Reader:      file,
		}
	}

	_, err := h.profileService.Update(c.Request.Context(), user.ID, input)
	if err != nil {
		if errors.Is(err, services.ErrNoChanges) {
			flash.Info(c, profileURL, "No changes were made to your profile.")
			return
		}
		flash.Error(c, profileURL, "Failed to update your profile. Please try again.")
		return
	}

	flash.Success(c, profileURL, "Profile updated.")
}

// Picture streams a stored profile picture through the configured store, so
// both the local-directory and object-store backends serve uploads the same
// way.
func (h *ProfileHandler) Picture(c *gin.Context) {
	reader, contentType, err := h.profileService.OpenPicture(c.Request.Context(), c.Param("filename"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
