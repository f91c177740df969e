package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"
	"github.com/dominik-hvln/zozoapp-sub000/internal/observability"
)

var ErrAssignmentNotFound = errors.New("no active assignment for this code")

type AssignmentRepository interface {
	// FindActiveByCode resolves a scanned code to the single active
	// assignment whose tattoo instance carries that code and is itself
	// active. Child and User come preloaded for the scan projection.
	FindActiveByCode(code string) (*domain.Assignment, error)
	Deactivate(assignmentID uint) error
}

type GormAssignmentRepository struct{ db *gorm.DB }

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

func (r *GormAssignmentRepository) FindActiveByCode(code string) (*domain.Assignment, error) {
	var assignment domain.Assignment
	err := r.db.
		Joins("JOIN tattoo_instances ON tattoo_instances.id = assignments.tattoo_instance_id").
		Where("tattoo_instances.code = ? AND tattoo_instances.status = ? AND assignments.active = ?",
			strings.TrimSpace(code), domain.TattooStatusActive, true).
		Preload("Child").
		Preload("User").
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "assignment", "find_active_by_code", "not_found")
			return nil, ErrAssignmentNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "assignment", "find_active_by_code", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "assignment", "find_active_by_code", "success")
	return &assignment, nil
}

// Deactivate retires the assignment and its tattoo instance together;
// an instance never returns to circulation once its assignment ends.
func (r *GormAssignmentRepository) Deactivate(assignmentID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var assignment domain.Assignment
		if err := tx.First(&assignment, assignmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssignmentNotFound
			}
			return err
		}
		if err := tx.Model(&domain.Assignment{}).Where("id = ?", assignmentID).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Model(&domain.TattooInstance{}).Where("id = ?", assignment.TattooInstanceID).
			Update("status", domain.TattooStatusInactive).Error
	})
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrAssignmentNotFound) {
			outcome = "not_found"
		}
		observability.RecordRepositoryOperation(context.Background(), "assignment", "deactivate", outcome)
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "assignment", "deactivate", "success")
	return nil
}
