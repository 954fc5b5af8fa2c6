package postgres

import (
	"log"

	"github.com/marchelxyz/mariko-vld-sub000/internal/config"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.FulfillmentConfig) *gorm.DB {
	dsn := cfg.FulfillmentDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.OrderModel{}, &models.PaymentModel{}, &models.IntegrationConfigModel{}, &models.IntegrationJobLogModel{}, &models.BookingNotificationModel{})

	return db
}
