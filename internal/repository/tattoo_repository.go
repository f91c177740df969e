package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"
	"github.com/dominik-hvln/zozoapp-sub000/internal/observability"
)

var (
	ErrTattooNotFound = errors.New("tattoo instance not found")
	ErrTattooNotNew   = errors.New("tattoo instance is not in new state")
)

type TattooRepository interface {
	FindByCode(code string) (*domain.TattooInstance, error)
	// Activate flips a `new` instance to `active` and creates the
	// assignment in one transaction. The status guard on the update makes
	// concurrent activations of the same code lose with ErrTattooNotNew.
	Activate(instanceID uint, expiresAt time.Time, assignment *domain.Assignment) error
	ExpireOlderThan(cutoff time.Time) (int64, error)
}

type GormTattooRepository struct{ db *gorm.DB }

func NewTattooRepository(db *gorm.DB) TattooRepository {
	return &GormTattooRepository{db: db}
}

func (r *GormTattooRepository) FindByCode(code string) (*domain.TattooInstance, error) {
	var instance domain.TattooInstance
	err := r.db.Where("code = ?", strings.TrimSpace(code)).First(&instance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "tattoo_instance", "find_by_code", "not_found")
			return nil, ErrTattooNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "tattoo_instance", "find_by_code", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "tattoo_instance", "find_by_code", "success")
	return &instance, nil
}

func (r *GormTattooRepository) Activate(instanceID uint, expiresAt time.Time, assignment *domain.Assignment) error {
	now := time.Now().UTC()
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.TattooInstance{}).
			Where("id = ? AND status = ?", instanceID, domain.TattooStatusNew).
			Updates(map[string]any{
				"status":       domain.TattooStatusActive,
				"activated_at": now,
				"expires_at":   expiresAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTattooNotNew
		}
		assignment.TattooInstanceID = instanceID
		assignment.Active = true
		return tx.Create(assignment).Error
	})
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrTattooNotNew) {
			outcome = "invalid_state"
		}
		observability.RecordRepositoryOperation(context.Background(), "tattoo_instance", "activate", outcome)
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "tattoo_instance", "activate", "success")
	return nil
}

func (r *GormTattooRepository) ExpireOlderThan(cutoff time.Time) (int64, error) {
	var expired int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.TattooInstance{}).
			Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", domain.TattooStatusActive, cutoff).
			Update("status", domain.TattooStatusInactive)
		if res.Error != nil {
			return res.Error
		}
		expired = res.RowsAffected
		if expired == 0 {
			return nil
		}
		return tx.Model(&domain.Assignment{}).
			Where("active = ? AND tattoo_instance_id IN (?)", true,
				tx.Model(&domain.TattooInstance{}).Select("id").Where("status = ?", domain.TattooStatusInactive),
			).
			Update("active", false).Error
	})
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "tattoo_instance", "expire", "error")
		return 0, err
	}
	observability.RecordRepositoryOperation(context.Background(), "tattoo_instance", "expire", "success")
	return expired, nil
}
