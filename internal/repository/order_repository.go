package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"
	"github.com/dominik-hvln/zozoapp-sub000/internal/observability"
)

var (
	ErrOrderNotFound            = errors.New("order not found")
	ErrDuplicateCheckoutSession = errors.New("order already exists for this checkout session")
)

type OrderRepository interface {
	// CreateWithItems persists the order and its item snapshot in one
	// transaction; partial item sets are never observable. A second
	// create for the same checkout session id fails with
	// ErrDuplicateCheckoutSession off the unique index.
	CreateWithItems(order *domain.Order, items []domain.OrderItem) error
	CreateShippingAddress(address *domain.ShippingAddress) error
	FindByCheckoutSessionID(sessionID string) (*domain.Order, error)
	FindByCheckoutSessionIDForUser(sessionID string, userID uint) (*domain.Order, error)
	// CompleteIfPending is the compare-and-swap both reconciliation
	// paths ride on: it reports true only for the caller that actually
	// moved the row out of PENDING.
	CompleteIfPending(orderID uint, totalCents int64, paymentIntentID string) (bool, error)
}

type GormOrderRepository struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) CreateWithItems(order *domain.Order, items []domain.OrderItem) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			observability.RecordRepositoryOperation(context.Background(), "order", "create", "duplicate")
			return ErrDuplicateCheckoutSession
		}
		observability.RecordRepositoryOperation(context.Background(), "order", "create", "error")
		return err
	}
	order.Items = items
	observability.RecordRepositoryOperation(context.Background(), "order", "create", "success")
	return nil
}

func (r *GormOrderRepository) CreateShippingAddress(address *domain.ShippingAddress) error {
	if err := r.db.Create(address).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "shipping_address", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "shipping_address", "create", "success")
	return nil
}

func (r *GormOrderRepository) FindByCheckoutSessionID(sessionID string) (*domain.Order, error) {
	return r.findOrder(r.db.Where("checkout_session_id = ?", sessionID))
}

func (r *GormOrderRepository) FindByCheckoutSessionIDForUser(sessionID string, userID uint) (*domain.Order, error) {
	return r.findOrder(r.db.Where("checkout_session_id = ? AND user_id = ?", sessionID, userID))
}

func (r *GormOrderRepository) findOrder(query *gorm.DB) (*domain.Order, error) {
	var order domain.Order
	err := query.Preload("Items").First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "order", "find_by_session", "not_found")
			return nil, ErrOrderNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "order", "find_by_session", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "order", "find_by_session", "success")
	return &order, nil
}

func (r *GormOrderRepository) CompleteIfPending(orderID uint, totalCents int64, paymentIntentID string) (bool, error) {
	updates := map[string]any{
		"status":      domain.OrderStatusCompleted,
		"total_cents": totalCents,
	}
	if paymentIntentID != "" {
		updates["payment_intent_id"] = paymentIntentID
	}
	res := r.db.Model(&domain.Order{}).
		Where("id = ? AND status = ?", orderID, domain.OrderStatusPending).
		Updates(updates)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "order", "complete_if_pending", "error")
		return false, res.Error
	}
	outcome := "already_completed"
	if res.RowsAffected > 0 {
		outcome = "success"
	}
	observability.RecordRepositoryOperation(context.Background(), "order", "complete_if_pending", outcome)
	return res.RowsAffected > 0, nil
}
