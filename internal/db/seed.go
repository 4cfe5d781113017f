package db

import (
	"errors"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mfp/backend/internal/auth"
	"github.com/mfp/backend/internal/models"
)

// Seed inserts development fixtures: an admin account plus a small catalog.
// Every insert is guarded by a lookup so seeding stays idempotent.
func Seed(conn *gorm.DB, log *zap.Logger) error {
	var admin models.User
	err := conn.Where("username = ?", "admin").First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			password = "admin"
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		admin = models.User{Username: "admin", Email: "admin@mfp.local", PasswordHash: hash, Role: models.RoleAdmin}
		if err := conn.Create(&admin).Error; err != nil {
			return err
		}
		log.Info("seeded admin user")
	} else if err != nil {
		return err
	}

	baseProducts := []models.Product{
		{Name: "Filter Coffee 1kg", UnitPrice: decimal.NewFromFloat(100.00), VATRate: decimal.NewFromInt(20)},
		{Name: "Tea Glass Set", UnitPrice: decimal.NewFromFloat(7.99), VATRate: decimal.NewFromInt(10)},
		{Name: "Delivery Service", UnitPrice: decimal.NewFromFloat(25.00), VATRate: models.VATRateOutOfScope},
	}
	for _, p := range baseProducts {
		var existing models.Product
		if err := conn.Where("name = ?", p.Name).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			if err := conn.Create(&p).Error; err != nil {
				return err
			}
		}
	}

	var customer models.Customer
	if err := conn.Where("name = ?", "Ertan Market").First(&customer).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{Name: "Ertan Market", TaxNumber: "1234567890", DefaultDiscount: decimal.Zero}
		if err := conn.Create(&customer).Error; err != nil {
			return err
		}
	}
	return nil
}
