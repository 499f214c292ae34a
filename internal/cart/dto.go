package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/db/models"
)

// CartLine is a cart row joined with its product snapshot.
type CartLine struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	ImageURL     *string         `json:"image_url,omitempty"`
	Quantity     int             `json:"quantity"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// CartView is the assembled cart with derived totals. Total and Count are
// recomputed from the lines on every read, never stored.
type CartView struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// EmptyView returns the canonical empty cart.
func EmptyView() *CartView {
	return &CartView{
		Items: []CartLine{},
		Total: decimal.Zero,
	}
}

// BuildView assembles the derived cart from raw rows. Rows whose product is
// missing or retired are dropped rather than surfaced with stale prices.
func BuildView(rows []models.CartItem) *CartView {
	view := EmptyView()
	for _, row := range rows {
		if row.Product == nil || !row.Product.IsActive {
			continue
		}
		lineTotal := row.Product.Price.Mul(decimal.NewFromInt(int64(row.Quantity)))
		view.Items = append(view.Items, CartLine{
			ID:           row.ID,
			ProductID:    row.ProductID,
			ProductName:  row.Product.Name,
			ProductPrice: row.Product.Price,
			ImageURL:     row.Product.ImageURL,
			Quantity:     row.Quantity,
			LineTotal:    lineTotal,
		})
		view.Total = view.Total.Add(lineTotal)
		view.Count += row.Quantity
	}
	return view
}
