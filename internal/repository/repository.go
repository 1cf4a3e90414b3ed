package repository

import (
	"github.com/confessbox/confessbox/internal/models"
	"github.com/confessbox/confessbox/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update persists profile field changes
	Update(user *models.User) error
}

// ConfessionRepository defines the interface for confession data access
type ConfessionRepository interface {
	// Create stores a new confession
	Create(confession *models.Confession) error

	// ListByReceiver retrieves the confessions received by a user, newest
	// first, with the sender preloaded when present. Returns the page of
	// rows and the total count.
	ListByReceiver(receiverID uint64, params utils.PaginationParams) ([]models.Confession, int64, error)
}
