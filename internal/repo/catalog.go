package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/chicfit/storefront/internal/models"
)

// Catalog owns Product rows. Stock is only ever written through
// DecrementStock/IncrementStock so every mutation stays a single
// conditional update.
type Catalog struct {
	DB *gorm.DB
}

func (r *Catalog) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductsByIDs returns the products keyed by id. Callers compare the
// result size with the request size to detect missing products.
func (r *Catalog) GetProductsByIDs(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]models.Product, len(items))
	for _, p := range items {
		out[p.ID] = p
	}
	return out, nil
}

func (r *Catalog) GetProducts(ctx context.Context, category string, offset, limit int) (int64, []models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *Catalog) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *Catalog) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Save(prod).Error
}

func (r *Catalog) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementStock performs the guarded decrement
//
//	UPDATE products SET stock = stock - qty WHERE id = ? AND stock >= qty
//
// and reports whether it took effect. The guard makes check-and-decrement a
// single atomic statement, so two concurrent checkouts for the last unit
// cannot both succeed. Run it inside a transaction to make a multi-item
// reservation all-or-nothing.
func (r *Catalog) DecrementStock(ctx context.Context, id uint, qty int) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// IncrementStock restores previously reserved stock, used when an order is
// cancelled before shipment. Zero affected rows means the product was
// deleted after the order was placed; there is nothing left to restock.
func (r *Catalog) IncrementStock(ctx context.Context, id uint, qty int) error {
	return r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty)).Error
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
