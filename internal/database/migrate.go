package database

import (
	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Child{},
		&domain.TattooInstance{},
		&domain.Assignment{},
		&domain.ScanEvent{},
		&domain.Product{},
		&domain.ProductVariant{},
		&domain.ShippingMethod{},
		&domain.ShippingAddress{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.Notification{},
		&domain.DeviceToken{},
	)
}
