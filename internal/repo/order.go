package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/chicfit/storefront/internal/models"
)

type Orders struct {
	DB *gorm.DB
}

func (r *Orders) Create(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *Orders) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// OwnerID fetches just the owning user of an order, for authorization
// checks that must not pay for a full preloaded read.
func (r *Orders) OwnerID(ctx context.Context, id uint) (uint, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Select("user_id").First(&order, id).Error; err != nil {
		return 0, err
	}
	return order.UserID, nil
}

func (r *Orders) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Orders) ListPage(ctx context.Context, offset, limit int) (int64, []models.Order, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

// SetStatus writes the new status guarded by the current one, so a
// concurrent transition cannot sneak between validation and the write.
func (r *Orders) SetStatus(ctx context.Context, id uint, from, to models.OrderStatus) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
