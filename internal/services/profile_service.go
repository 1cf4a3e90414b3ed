package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/confessbox/confessbox/internal/models"
	"github.com/confessbox/confessbox/internal/repository"
	"github.com/confessbox/confessbox/internal/storage"
	"github.com/confessbox/confessbox/internal/utils"
)

// ErrNoChanges reports that a profile update contained nothing new. It is
// informational, not a failure.
var ErrNoChanges = errors.New("no changes to save")

// ProfileService handles profile reads and updates, including the picture
// file lifecycle.
type ProfileService struct {
	userRepo    repository.UserRepository
	pictures    storage.PictureStore
	allowedExts map[string]struct{}
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repository.UserRepository, pictures storage.PictureStore, allowedExts []string) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		pictures:    pictures,
		allowedExts: utils.ExtAllowedSet(allowedExts),
	}
}

// Get resolves a profile by username.
func (s *ProfileService) Get(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// PictureUpload is an uploaded profile picture ready to be stored.
type PictureUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UpdateInput carries the optional profile changes. Empty Name/Bio mean
// "not supplied", matching the form semantics.
type UpdateInput struct {
	Name    string
	Bio     string
	Picture *PictureUpload
}

// Update applies profile changes for the user. Name and bio change only when
// supplied and different from the current value. A picture with a
// disallowed extension is skipped silently. The new picture file is saved
// before the row is committed, and the old file is deleted only afterwards,
// so a crash never loses both copies.
func (s *ProfileService) Update(ctx context.Context, userID uint64, input UpdateInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	changed := false

	if input.Name != "" && input.Name != user.Name {
		user.Name = input.Name
		changed = true
	}
	if input.Bio != "" && input.Bio != user.Bio {
		user.Bio = input.Bio
		changed = true
	}

	oldPicture := ""
	if input.Picture != nil && utils.ExtAllowed(s.allowedExts, input.Picture.Filename) {
		stored := utils.UploadFilename(input.Picture.Filename)
		if err := s.pictures.Save(ctx, stored, input.Picture.Reader, input.Picture.Size, input.Picture.ContentType); err != nil {
			return nil, fmt.Errorf("failed to save picture: %w", err)
		}
		oldPicture = user.Pfp
		user.Pfp = stored
		changed = true
	}

	if !changed {
		return user, ErrNoChanges
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if oldPicture != "" {
		if err := s.pictures.Remove(ctx, oldPicture); err != nil {
			logrus.WithError(err).WithField("picture", oldPicture).Warn("failed to delete replaced profile picture")
		}
	}

	return user, nil
}

// OpenPicture streams a stored profile picture.
func (s *ProfileService) OpenPicture(ctx context.Context, name string) (io.ReadCloser, string, error) {
	return s.pictures.Open(ctx, name)
}
