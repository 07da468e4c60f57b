package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/chicfit/storefront/internal/logging"
	"github.com/chicfit/storefront/internal/models"
	"github.com/chicfit/storefront/internal/notify"
	"github.com/chicfit/storefront/internal/util"
)

type ReturnItemInput struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Price     float64 `json:"price"`
	Reason    string  `json:"reason"`
}

type ReturnInput struct {
	Items          []ReturnItemInput `json:"items"`
	ShippingMethod string            `json:"shippingMethod"`
}

// Returns carries the return-request workflow. A return keeps denormalized
// item copies and its own status machine; it never mutates the parent order.
type Returns struct {
	DB     *gorm.DB
	Mailer notify.Mailer
}

func (s *Returns) Create(ctx context.Context, userID uint, userEmail, userName string, in ReturnInput) (*models.Return, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	if in.ShippingMethod == "" {
		return nil, fmt.Errorf("%w: shippingMethod required", ErrValidation)
	}

	ret := &models.Return{
		UserID:         userID,
		Status:         models.ReturnStatusPending,
		ShippingMethod: in.ShippingMethod,
	}
	for _, item := range in.Items {
		if item.ProductID == 0 || item.Name == "" {
			return nil, fmt.Errorf("%w: item product and name required", ErrValidation)
		}
		if !models.ReturnReasons[item.Reason] {
			return nil, fmt.Errorf("%w: unknown return reason %q", ErrValidation, item.Reason)
		}
		ret.Items = append(ret.Items, models.ReturnItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Size:      item.Size,
			Price:     item.Price,
			Reason:    item.Reason,
		})
	}

	if err := s.DB.WithContext(ctx).Create(ret).Error; err != nil {
		return nil, err
	}

	if s.Mailer != nil {
		if err := s.Mailer.Send(ctx, notify.ReturnConfirmation(ret, userEmail, userName)); err != nil {
			logging.FromContext(ctx).Error("return confirmation email failed",
				"return_id", ret.ID, "error", err)
		}
	}
	return ret, nil
}

func (s *Returns) ListForUser(ctx context.Context, userID uint) ([]models.Return, error) {
	var returns []models.Return
	err := s.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&returns).Error
	if err != nil {
		return nil, err
	}
	return returns, nil
}

func (s *Returns) Get(ctx context.Context, returnID, callerID uint, callerRole string) (*models.Return, error) {
	var ret models.Return
	if err := s.DB.WithContext(ctx).Preload("Items").First(&ret, returnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: return %d", ErrNotFound, returnID)
		}
		return nil, err
	}
	if ret.UserID != callerID && callerRole != RoleAdmin {
		return nil, fmt.Errorf("%w: not your return", ErrForbidden)
	}
	return &ret, nil
}

func (s *Returns) ListPage(ctx context.Context, callerRole string, page, size int) (int64, []models.Return, error) {
	if callerRole != RoleAdmin {
		return 0, nil, fmt.Errorf("%w: admin access required", ErrForbidden)
	}
	offset, limit := util.Calculate(page, size)

	var total int64
	if err := s.DB.WithContext(ctx).Model(&models.Return{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var returns []models.Return
	err := s.DB.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&returns).Error
	if err != nil {
		return 0, nil, err
	}
	return total, returns, nil
}

func (s *Returns) Transition(ctx context.Context, returnID uint, next models.ReturnStatus, returnLabel, callerRole string) (*models.Return, error) {
	if callerRole != RoleAdmin {
		return nil, fmt.Errorf("%w: admin access required", ErrForbidden)
	}
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	var ret models.Return
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&ret, returnID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: return %d", ErrNotFound, returnID)
			}
			return err
		}

		if !ret.Status.CanTransition(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ret.Status, next)
		}

		now := time.Now().UTC()
		ret.Status = next
		switch next {
		case models.ReturnStatusApproved:
			ret.ApprovedAt = &now
			if returnLabel != "" {
				ret.ReturnLabel = returnLabel
			}
		case models.ReturnStatusCompleted:
			ret.CompletedAt = &now
		}

		return tx.Save(&ret).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return &ret, nil
}
