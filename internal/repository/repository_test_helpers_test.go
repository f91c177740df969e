package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dominik-hvln/zozoapp-sub000/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRepositoryDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
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
	); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	return db
}

func seedGuardianWithChild(t *testing.T, db *gorm.DB) (domain.User, domain.Child) {
	t.Helper()
	user := domain.User{Email: t.Name() + "@example.com", FullName: "Anna Kowalska", Phone: "+48123456789"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	child := domain.Child{UserID: user.ID, Name: "Zosia"}
	if err := db.Create(&child).Error; err != nil {
		t.Fatalf("create child: %v", err)
	}
	return user, child
}

func seedActiveAssignment(t *testing.T, db *gorm.DB, code string) domain.Assignment {
	t.Helper()
	user, child := seedGuardianWithChild(t, db)
	instance := domain.TattooInstance{Code: code, Status: domain.TattooStatusActive}
	if err := db.Create(&instance).Error; err != nil {
		t.Fatalf("create instance: %v", err)
	}
	assignment := domain.Assignment{
		UserID:           user.ID,
		ChildID:          child.ID,
		TattooInstanceID: instance.ID,
		Active:           true,
	}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	return assignment
}
