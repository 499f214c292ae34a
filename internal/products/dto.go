package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/db/models"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/enums"
)

// ProductDTO is the catalog representation returned to clients.
type ProductDTO struct {
	ID            uuid.UUID             `json:"id"`
	Name          string                `json:"name"`
	Description   *string               `json:"description,omitempty"`
	Price         decimal.Decimal       `json:"price"`
	ImageURL      *string               `json:"image_url,omitempty"`
	Category      enums.ProductCategory `json:"category"`
	StockQuantity int                   `json:"stock_quantity"`
	CreatedAt     time.Time             `json:"created_at"`
}

// ProductListResult is a cursor-paginated catalog page.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// ListFilters narrows the catalog listing.
type ListFilters struct {
	Category *enums.ProductCategory
	Query    string
}

func toDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		ImageURL:      p.ImageURL,
		Category:      p.Category,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
	}
}
