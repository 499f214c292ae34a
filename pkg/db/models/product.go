package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/enums"
)

// Product represents a catalog listing available to shoppers.
type Product struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string                `gorm:"column:name;not null"`
	Description   *string               `gorm:"column:description"`
	Price         decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null"`
	ImageURL      *string               `gorm:"column:image_url"`
	Category      enums.ProductCategory `gorm:"column:category;not null"`
	StockQuantity int                   `gorm:"column:stock_quantity;not null;default:0"`
	IsActive      bool                  `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
