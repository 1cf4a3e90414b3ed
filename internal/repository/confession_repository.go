package repository

import (
	"gorm.io/gorm"

	"github.com/confessbox/confessbox/internal/database"
	"github.com/confessbox/confessbox/internal/models"
	"github.com/confessbox/confessbox/internal/utils"
)

// GormConfessionRepository is a GORM implementation of ConfessionRepository
type GormConfessionRepository struct {
	db *gorm.DB
}

// NewConfessionRepository creates a new ConfessionRepository
func NewConfessionRepository(db *gorm.DB) ConfessionRepository {
	return &GormConfessionRepository{db: db}
}

// Create stores a new confession
func (r *GormConfessionRepository) Create(confession *models.Confession) error {
	return r.db.Create(confession).Error
}

// ListByReceiver retrieves the confessions received by a user, newest first.
func (r *GormConfessionRepository) ListByReceiver(receiverID uint64, params utils.PaginationParams) ([]models.Confession, int64, error) {
	query := r.db.Model(&models.Confession{}).Where("receiver_id = ?", receiverID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var confessions []models.Confession
	err := query.
		Preload("Sender").
		Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&confessions).Error
	if err != nil {
		return nil, 0, err
	}

	return confessions, total, nil
}
