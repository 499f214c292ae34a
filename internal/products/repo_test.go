package product

import (
	"context"
	"fmt"
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
	pkgerrors "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/errors"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/pagination"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  image_url TEXT,
  category TEXT NOT NULL,
  stock_quantity INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS products`).Error)
	require.NoError(t, db.Exec(products).Error)
	return db
}

func newProduct(t *testing.T, db *gorm.DB, name string, category enums.ProductCategory, active bool, created time.Time) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:            uuid.New(),
		Name:          name,
		Price:         decimal.RequireFromString("49.99"),
		Category:      category,
		StockQuantity: 10,
		IsActive:      active,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestRepositoryListActive_pagination(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		newProduct(t, db, fmt.Sprintf("Dog Food %d", i), enums.ProductCategoryFood, true, now.Add(time.Duration(-i)*time.Hour))
	}
	newProduct(t, db, "Hidden Toy", enums.ProductCategoryToys, false, now)

	list, err := repo.ListActive(context.Background(), pagination.Params{Limit: 2}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, list.Products, 2)
	assert.NotEmpty(t, list.NextCursor)
	assert.Equal(t, "Dog Food 0", list.Products[0].Name)

	second, err := repo.ListActive(context.Background(), pagination.Params{Limit: 2, Cursor: list.NextCursor}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, second.Products, 1)
	assert.Equal(t, "Dog Food 2", second.Products[0].Name)
	assert.Empty(t, second.NextCursor)
}

func TestRepositoryListActive_filters(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	newProduct(t, db, "Salmon Kibble", enums.ProductCategoryFood, true, now)
	newProduct(t, db, "Rope Tug", enums.ProductCategoryToys, true, now.Add(-time.Minute))

	category := enums.ProductCategoryToys
	list, err := repo.ListActive(context.Background(), pagination.Params{Limit: 10}, ListFilters{Category: &category})
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Rope Tug", list.Products[0].Name)

	list, err = repo.ListActive(context.Background(), pagination.Params{Limit: 10}, ListFilters{Query: "salmon"})
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Salmon Kibble", list.Products[0].Name)
}

func TestRepositoryFindActiveByID(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	active := newProduct(t, db, "Visible", enums.ProductCategoryHealth, true, time.Now().UTC())
	inactive := newProduct(t, db, "Retired", enums.ProductCategoryHealth, false, time.Now().UTC())

	got, err := repo.FindActiveByID(context.Background(), active.ID)
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)

	_, err = repo.FindActiveByID(context.Background(), inactive.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err = repo.FindByID(context.Background(), inactive.ID)
	require.NoError(t, err)
	assert.Equal(t, inactive.ID, got.ID)
}

func TestListProductsRejectsMalformedCursor(t *testing.T) {
	db := setupProductsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	_, err = svc.ListProducts(context.Background(), pagination.Params{Cursor: "not-base64!"}, ListFilters{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
