package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"
	"github.com/dominik-hvln/zozoapp-sub000/internal/observability"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(notification *domain.Notification) error
	MarkRead(userID, notificationID uint) error
	ListUnread(userID uint) ([]domain.Notification, error)
}

type GormNotificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Create(notification *domain.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "notification", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "notification", "create", "success")
	return nil
}

func (r *GormNotificationRepository) MarkRead(userID, notificationID uint) error {
	res := r.db.Model(&domain.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "notification", "mark_read", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "notification", "mark_read", "not_found")
		return ErrNotificationNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "notification", "mark_read", "success")
	return nil
}

func (r *GormNotificationRepository) ListUnread(userID uint) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := r.db.Where("user_id = ? AND read = ?", userID, false).
		Order("created_at desc").
		Find(&notifications).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "notification", "list_unread", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "notification", "list_unread", "success")
	return notifications, nil
}
