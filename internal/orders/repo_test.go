package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/db/models"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/enums"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS order_items`).Error)
	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS orders`).Error)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  payment_id TEXT,
  shipping_address TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  product_name TEXT NOT NULL,
  product_price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, repo Repository, userID uuid.UUID, total string, status enums.OrderStatus, created time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:          uuid.New(),
		UserID:      userID,
		TotalAmount: decimal.RequireFromString(total),
		Status:      status,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	_, err := repo.Create(context.Background(), order)
	require.NoError(t, err)

	items := []models.OrderItem{
		{
			ID:           uuid.New(),
			OrderID:      order.ID,
			ProductName:  "Dog Food",
			ProductPrice: decimal.RequireFromString("49.99"),
			Quantity:     2,
			CreatedAt:    created,
		},
		{
			ID:           uuid.New(),
			OrderID:      order.ID,
			ProductName:  "Cat Toy",
			ProductPrice: decimal.RequireFromString("19.99"),
			Quantity:     1,
			CreatedAt:    created,
		},
	}
	require.NoError(t, repo.CreateItems(context.Background(), items))
	return order
}

func TestRepositoryCreateAndLoadWithItems(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()

	order := seedOrder(t, db, repo, userID, "119.97", enums.OrderStatusConfirmed, time.Now().UTC())

	got, err := repo.FindByIDAndUser(context.Background(), order.ID, userID)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("119.97")))
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Dog Food", got.Items[0].ProductName)

	_, err = repo.FindByIDAndUser(context.Background(), order.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByUser_pagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()

	now := time.Now().UTC()
	seedOrder(t, db, repo, userID, "10.00", enums.OrderStatusDelivered, now.Add(-2*time.Hour))
	newer := seedOrder(t, db, repo, userID, "20.00", enums.OrderStatusPending, now)
	seedOrder(t, db, repo, uuid.New(), "99.00", enums.OrderStatusPending, now)

	list, err := repo.ListByUser(context.Background(), userID, pagination.Params{Limit: 1})
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, newer.ID, list.Orders[0].ID)
	assert.NotEmpty(t, list.NextCursor)

	second, err := repo.ListByUser(context.Background(), userID, pagination.Params{Limit: 1, Cursor: list.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Orders, 1)
	assert.True(t, second.Orders[0].TotalAmount.Equal(decimal.RequireFromString("10.00")))
	assert.Empty(t, second.NextCursor)
}

func TestRepositoryUpdateStatusAndPayment(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()

	order := seedOrder(t, db, repo, userID, "50.00", enums.OrderStatusPending, time.Now().UTC())

	require.NoError(t, repo.UpdateStatus(context.Background(), order.ID, enums.OrderStatusConfirmed))
	require.NoError(t, repo.UpdatePayment(context.Background(), order.ID, "pay_123"))

	got, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusConfirmed, got.Status)
	require.NotNil(t, got.PaymentID)
	assert.Equal(t, "pay_123", *got.PaymentID)
}
