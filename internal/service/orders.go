package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/chicfit/storefront/internal/events"
	"github.com/chicfit/storefront/internal/logging"
	"github.com/chicfit/storefront/internal/models"
	"github.com/chicfit/storefront/internal/notify"
	"github.com/chicfit/storefront/internal/repo"
	"github.com/chicfit/storefront/internal/util"
)

// StatusCache is the slice of the redis cache the order services touch;
// tests swap in a map-backed stub.
type StatusCache interface {
	SetOrderStatus(ctx context.Context, orderID uint, status models.OrderStatus)
	GetOrderStatus(ctx context.Context, orderID uint) (models.OrderStatus, bool)
}

// Orders owns the order lifecycle after creation: queries scoped by caller
// and the admin status transitions.
type Orders struct {
	DB        *gorm.DB
	Mailer    notify.Mailer
	Events    events.Publisher
	Cache     StatusCache
	PublicURL string
}

func (s *Orders) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	orders := repo.Orders{DB: s.DB}
	return orders.ListForUser(ctx, userID)
}

// Get enforces ownership: a caller only sees their own order unless admin.
func (s *Orders) Get(ctx context.Context, orderID, callerID uint, callerRole string) (*models.Order, error) {
	orders := repo.Orders{DB: s.DB}
	order, err := orders.Get(ctx, orderID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	if order.UserID != callerID && callerRole != RoleAdmin {
		return nil, fmt.Errorf("%w: not your order", ErrForbidden)
	}
	return order, nil
}

// Status serves the poll endpoint cache-aside: redis first, DB fallback.
// Ownership is checked against the database before the cache is consulted;
// a warm cache must never let a caller read someone else's order.
func (s *Orders) Status(ctx context.Context, orderID, callerID uint, callerRole string) (models.OrderStatus, error) {
	orders := repo.Orders{DB: s.DB}
	ownerID, err := orders.OwnerID(ctx, orderID)
	if err != nil {
		if repo.IsNotFound(err) {
			return "", fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return "", err
	}
	if ownerID != callerID && callerRole != RoleAdmin {
		return "", fmt.Errorf("%w: not your order", ErrForbidden)
	}

	if s.Cache != nil {
		if status, ok := s.Cache.GetOrderStatus(ctx, orderID); ok {
			return status, nil
		}
	}
	order, err := orders.Get(ctx, orderID)
	if err != nil {
		if repo.IsNotFound(err) {
			return "", fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return "", err
	}
	if s.Cache != nil {
		s.Cache.SetOrderStatus(ctx, orderID, order.Status)
	}
	return order.Status, nil
}

func (s *Orders) ListPage(ctx context.Context, callerRole string, page, size int) (int64, []models.Order, error) {
	if callerRole != RoleAdmin {
		return 0, nil, fmt.Errorf("%w: admin access required", ErrForbidden)
	}
	offset, limit := util.Calculate(page, size)
	orders := repo.Orders{DB: s.DB}
	return orders.ListPage(ctx, offset, limit)
}

// Transition moves an order along the status machine. A move into
// cancelled from pending/processing restocks every item in the same
// transaction as the status write.
func (s *Orders) Transition(ctx context.Context, orderID uint, next models.OrderStatus, callerRole string) (*models.Order, error) {
	if callerRole != RoleAdmin {
		return nil, fmt.Errorf("%w: admin access required", ErrForbidden)
	}
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	var order *models.Order
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := repo.Orders{DB: tx}
		current, err := orders.Get(ctx, orderID)
		if err != nil {
			if repo.IsNotFound(err) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		if !current.Status.CanTransition(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
		}

		moved, err := orders.SetStatus(ctx, orderID, current.Status, next)
		if err != nil {
			return err
		}
		if !moved {
			// Lost a race with a concurrent transition.
			return fmt.Errorf("%w: order %d changed concurrently", ErrInvalidTransition, orderID)
		}

		if next == models.OrderStatusCancelled {
			cat := repo.Catalog{DB: tx}
			for _, item := range current.Items {
				if err := cat.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}

		current.Status = next
		order = current
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.afterTransition(ctx, order)
	return order, nil
}

func (s *Orders) afterTransition(ctx context.Context, order *models.Order) {
	l := logging.FromContext(ctx)

	if s.Mailer != nil {
		if err := s.Mailer.Send(ctx, notify.OrderStatusUpdate(order, s.PublicURL)); err != nil {
			l.Error("status update email failed", "order_id", order.ID, "error", err)
		}
	}

	if s.Events != nil {
		ev := events.NewEnvelope("order_status_changed", map[string]any{
			"order_id": order.ID,
			"status":   order.Status,
		})
		if err := s.Events.PublishEvent(ctx, events.TopicOrderEvents, fmt.Sprint(order.ID), ev); err != nil {
			l.Error("order event publish failed", "order_id", order.ID, "error", err)
		}
	}

	if s.Cache != nil {
		s.Cache.SetOrderStatus(ctx, order.ID, order.Status)
	}
}
