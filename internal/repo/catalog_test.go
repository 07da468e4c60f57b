package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chicfit/storefront/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.Order{}, &models.OrderItem{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	p := models.Product{Name: name, Description: name, Price: price, Category: "women", Stock: stock}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestDecrementStockGuard(t *testing.T) {
	db := initTestDB(t)
	cat := Catalog{DB: db}
	ctx := context.Background()

	p := seedProduct(t, db, "dress", 49.90, 3)

	ok, err := cat.DecrementStock(ctx, p.ID, 2)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = cat.DecrementStock(ctx, p.ID, 2)
	require.NoError(t, err)
	require.False(t, ok, "decrement past available stock must be refused")

	got, err := cat.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Stock, "refused decrement must not change stock")

	ok, err = cat.DecrementStock(ctx, p.ID, 1)
	require.NoError(t, err)
	require.True(t, ok)

	got, err = cat.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.Stock)
}

func TestDecrementStockUnknownProduct(t *testing.T) {
	db := initTestDB(t)
	cat := Catalog{DB: db}

	ok, err := cat.DecrementStock(context.Background(), 999, 1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIncrementStock(t *testing.T) {
	db := initTestDB(t)
	cat := Catalog{DB: db}
	ctx := context.Background()

	p := seedProduct(t, db, "coat", 120, 0)

	require.NoError(t, cat.IncrementStock(ctx, p.ID, 4))
	got, err := cat.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 4, got.Stock)

	// Restock of a product deleted after ordering is a no-op.
	require.NoError(t, cat.IncrementStock(ctx, 999, 2))
}

func TestGetProductsCategoryFilter(t *testing.T) {
	db := initTestDB(t)
	cat := Catalog{DB: db}
	ctx := context.Background()

	seedProduct(t, db, "dress", 49.90, 3)
	p := models.Product{Name: "belt", Description: "belt", Price: 15, Category: "accessories", Stock: 5}
	require.NoError(t, db.Create(&p).Error)

	total, items, err := cat.GetProducts(ctx, "accessories", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, "belt", items[0].Name)

	total, items, err = cat.GetProducts(ctx, "", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, items, 2)
}

func TestGetProductsByIDs(t *testing.T) {
	db := initTestDB(t)
	cat := Catalog{DB: db}

	a := seedProduct(t, db, "a", 10, 1)
	b := seedProduct(t, db, "b", 20, 1)

	got, err := cat.GetProductsByIDs(context.Background(), []uint{a.ID, b.ID, 999})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[a.ID].Name)
	require.Equal(t, "b", got[b.ID].Name)
}

func TestDeleteProductNotFound(t *testing.T) {
	db := initTestDB(t)
	cat := Catalog{DB: db}

	err := cat.DeleteProduct(context.Background(), 42)
	require.True(t, IsNotFound(err))
}
