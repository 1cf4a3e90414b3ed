package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/confessbox/confessbox/internal/models"
	"github.com/confessbox/confessbox/internal/repository"
	"github.com/confessbox/confessbox/internal/utils"
)

var ErrMissingContent = errors.New("confession content is required")

// ConfessionService handles sending and listing confessions.
type ConfessionService struct {
	userRepo       repository.UserRepository
	confessionRepo repository.ConfessionRepository
}

// NewConfessionService creates a new ConfessionService.
func NewConfessionService(userRepo repository.UserRepository, confessionRepo repository.ConfessionRepository) *ConfessionService {
	return &ConfessionService{
		userRepo:       userRepo,
		confessionRepo: confessionRepo,
	}
}

// Receiver resolves the target of a confession by username.
func (s *ConfessionService) Receiver(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find receiver: %w", err)
	}
	return user, nil
}

// SubmitInput describes a confession submission. SenderID is the
// authenticated user, nil when the submitter is not logged in.
type SubmitInput struct {
	ReceiverUsername string
	Content          string
	Anonymous        bool
	SenderID         *uint64
}

// Submit stores a confession for the receiver. The sender reference is kept
// only when the submitter is authenticated and did not ask for anonymity.
func (s *ConfessionService) Submit(input SubmitInput) (*models.Confession, error) {
	receiver, err := s.Receiver(input.ReceiverUsername)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrMissingContent
	}

	confession := &models.Confession{
		ReceiverID: receiver.ID,
		Content:    content,
	}
	if !input.Anonymous && input.SenderID != nil {
		confession.SenderID = input.SenderID
	}

	if err := s.confessionRepo.Create(confession); err != nil {
		return nil, fmt.Errorf("failed to store confession: %w", err)
	}

	return confession, nil
}

// ListReceived returns a page of the user's received confessions, newest
// first, plus the total count.
func (s *ConfessionService) ListReceived(receiverID uint64, params utils.PaginationParams) ([]models.Confession, int64, error) {
	confessions, total, err := s.confessionRepo.ListByReceiver(receiverID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list confessions: %w", err)
	}
	return confessions, total, nil
}
