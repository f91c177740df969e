package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"
	"github.com/dominik-hvln/zozoapp-sub000/internal/observability"
)

type DeviceTokenRepository interface {
	ListByUser(userID uint) ([]domain.DeviceToken, error)
	// DeleteTokens prunes tokens the push provider reported as
	// permanently invalid.
	DeleteTokens(tokens []string) error
}

type GormDeviceTokenRepository struct{ db *gorm.DB }

func NewDeviceTokenRepository(db *gorm.DB) DeviceTokenRepository {
	return &GormDeviceTokenRepository{db: db}
}

func (r *GormDeviceTokenRepository) ListByUser(userID uint) ([]domain.DeviceToken, error) {
	var tokens []domain.DeviceToken
	if err := r.db.Where("user_id = ?", userID).Find(&tokens).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "device_token", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "device_token", "list", "success")
	return tokens, nil
}

func (r *GormDeviceTokenRepository) DeleteTokens(tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	if err := r.db.Where("token IN ?", tokens).Delete(&domain.DeviceToken{}).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "device_token", "delete", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "device_token", "delete", "success")
	return nil
}
