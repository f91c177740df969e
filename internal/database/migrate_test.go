package database

import (
	"testing"

	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrateCreatesSchema(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:migrate_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, model := range []any{
		&domain.User{}, &domain.Child{}, &domain.TattooInstance{}, &domain.Assignment{},
		&domain.ScanEvent{}, &domain.Order{}, &domain.OrderItem{}, &domain.Notification{},
		&domain.DeviceToken{}, &domain.ProductVariant{}, &domain.ShippingMethod{},
	} {
		if !db.Migrator().HasTable(model) {
			t.Fatalf("expected table for %T", model)
		}
	}
}

func TestMigrateEnforcesSessionUniqueness(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:migrate_unique_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	first := domain.Order{UserID: 1, OrderNumber: "ord-1", CheckoutSessionID: "cs_test_dup", TotalCents: 5000}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("create first order: %v", err)
	}
	second := domain.Order{UserID: 1, OrderNumber: "ord-2", CheckoutSessionID: "cs_test_dup", TotalCents: 5000}
	if err := db.Create(&second).Error; err == nil {
		t.Fatal("expected unique constraint violation for duplicate checkout session id")
	}
}
