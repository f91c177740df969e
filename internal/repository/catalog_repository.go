package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"
	"github.com/dominik-hvln/zozoapp-sub000/internal/observability"
)

var (
	ErrVariantNotFound        = errors.New("product variant not found")
	ErrShippingMethodNotFound = errors.New("shipping method not found")
)

type CatalogRepository interface {
	// FindVariantsByStripePriceIDs returns variants keyed by their
	// Stripe price reference. Callers must check for missing keys; a
	// requested price id with no local variant is a hard error during
	// checkout.
	FindVariantsByStripePriceIDs(priceIDs []string) (map[string]domain.ProductVariant, error)
	FindShippingMethod(id uint) (*domain.ShippingMethod, error)
}

type GormCatalogRepository struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) FindVariantsByStripePriceIDs(priceIDs []string) (map[string]domain.ProductVariant, error) {
	var variants []domain.ProductVariant
	err := r.db.Where("stripe_price_id IN ? AND active = ?", priceIDs, true).Find(&variants).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "product_variant", "find_by_price_ids", "error")
		return nil, err
	}
	out := make(map[string]domain.ProductVariant, len(variants))
	for _, v := range variants {
		out[v.StripePriceID] = v
	}
	observability.RecordRepositoryOperation(context.Background(), "product_variant", "find_by_price_ids", "success")
	return out, nil
}

func (r *GormCatalogRepository) FindShippingMethod(id uint) (*domain.ShippingMethod, error) {
	var method domain.ShippingMethod
	err := r.db.First(&method, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "shipping_method", "find_by_id", "not_found")
			return nil, ErrShippingMethodNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "shipping_method", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "shipping_method", "find_by_id", "success")
	return &method, nil
}
