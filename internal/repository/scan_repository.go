package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"
	"github.com/dominik-hvln/zozoapp-sub000/internal/observability"
)

var ErrScanEventNotFound = errors.New("scan event not found")

type ScanRepository interface {
	Create(event *domain.ScanEvent) error
	// LatestSince returns the newest scan event for the assignment
	// created after the cutoff, or nil when there is none. This is the
	// dedup-window query; it is not a lock, so two scans racing inside
	// the window can both record. Accepted, the consequence is one
	// extra notification.
	LatestSince(assignmentID uint, cutoff time.Time) (*domain.ScanEvent, error)
	LatestForAssignment(assignmentID uint) (*domain.ScanEvent, error)
	AttachLocation(scanID uint, latitude, longitude float64) error
}

type GormScanRepository struct{ db *gorm.DB }

func NewScanRepository(db *gorm.DB) ScanRepository {
	return &GormScanRepository{db: db}
}

func (r *GormScanRepository) Create(event *domain.ScanEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "scan_event", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "scan_event", "create", "success")
	return nil
}

func (r *GormScanRepository) LatestSince(assignmentID uint, cutoff time.Time) (*domain.ScanEvent, error) {
	var event domain.ScanEvent
	err := r.db.
		Where("assignment_id = ? AND created_at > ?", assignmentID, cutoff).
		Order("created_at desc").Order("id desc").
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "scan_event", "latest_since", "not_found")
			return nil, nil
		}
		observability.RecordRepositoryOperation(context.Background(), "scan_event", "latest_since", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "scan_event", "latest_since", "success")
	return &event, nil
}

func (r *GormScanRepository) LatestForAssignment(assignmentID uint) (*domain.ScanEvent, error) {
	var event domain.ScanEvent
	err := r.db.
		Where("assignment_id = ?", assignmentID).
		Order("created_at desc").Order("id desc").
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "scan_event", "latest", "not_found")
			return nil, ErrScanEventNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "scan_event", "latest", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "scan_event", "latest", "success")
	return &event, nil
}

func (r *GormScanRepository) AttachLocation(scanID uint, latitude, longitude float64) error {
	res := r.db.Model(&domain.ScanEvent{}).Where("id = ?", scanID).Updates(map[string]any{
		"latitude":  latitude,
		"longitude": longitude,
	})
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "scan_event", "attach_location", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "scan_event", "attach_location", "not_found")
		return ErrScanEventNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "scan_event", "attach_location", "success")
	return nil
}
