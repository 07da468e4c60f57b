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
)

type CheckoutItem struct {
	ProductID     uint   `json:"product"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
}

type CheckoutInput struct {
	Items           []CheckoutItem         `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// Checkout turns a cart into a persisted order with reserved inventory.
// Inventory decrement and order creation share one transaction; email,
// event and cache writes afterwards are best-effort.
type Checkout struct {
	DB     *gorm.DB
	Mailer notify.Mailer
	Events events.Publisher
	Cache  StatusCache
}

func (s *Checkout) Checkout(ctx context.Context, userID uint, in CheckoutInput) (*models.Order, error) {
	if err := validateCheckout(in); err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(in.Items))
	for _, item := range in.Items {
		ids = append(ids, item.ProductID)
	}

	catalog := repo.Catalog{DB: s.DB}
	products, err := catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, item := range in.Items {
		if _, ok := products[item.ProductID]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrProductNotFound, item.ProductID)
		}
	}

	order := &models.Order{
		UserID:          userID,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Status:          models.OrderStatusProcessing,
		PaymentStatus:   models.PaymentStatusPaid, // simulated payment
	}

	var total float64
	for _, item := range in.Items {
		p := products[item.ProductID]
		// Server-trusted snapshot price; the client never supplies one.
		total += p.Price * float64(item.Quantity)
		order.Items = append(order.Items, models.OrderItem{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			Price:         p.Price,
			SelectedSize:  item.SelectedSize,
			SelectedColor: item.SelectedColor,
		})
	}
	order.TotalAmount = total

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat := repo.Catalog{DB: tx}
		for _, item := range in.Items {
			ok, err := cat.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// Re-read inside the tx so the reported availability is
				// the one that caused the rejection.
				current, err := cat.GetProduct(ctx, item.ProductID)
				if err != nil {
					return err
				}
				return fmt.Errorf("%w: %s (available %d)",
					ErrInsufficientStock, current.Name, current.Stock)
			}
		}

		orders := repo.Orders{DB: tx}
		return orders.Create(ctx, order)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.afterCheckout(ctx, order, products)
	return order, nil
}

func validateCheckout(in CheckoutInput) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: items required", ErrValidation)
	}
	for _, item := range in.Items {
		if item.ProductID == 0 {
			return fmt.Errorf("%w: product required", ErrValidation)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}
	}
	addr := in.ShippingAddress
	for field, v := range map[string]string{
		"firstName":  addr.FirstName,
		"lastName":   addr.LastName,
		"address":    addr.Address,
		"city":       addr.City,
		"country":    addr.Country,
		"postalCode": addr.PostalCode,
		"email":      addr.Email,
	} {
		if v == "" {
			return fmt.Errorf("%w: shippingAddress.%s required", ErrValidation, field)
		}
	}
	if in.PaymentMethod == "" {
		return fmt.Errorf("%w: paymentMethod required", ErrValidation)
	}
	return nil
}

// afterCheckout runs the side channels that must never fail the order.
func (s *Checkout) afterCheckout(ctx context.Context, order *models.Order, products map[uint]models.Product) {
	l := logging.FromContext(ctx)

	if s.Mailer != nil {
		names := make(map[uint]string, len(products))
		for id, p := range products {
			names[id] = p.Name
		}
		if err := s.Mailer.Send(ctx, notify.OrderConfirmation(order, names)); err != nil {
			l.Error("order confirmation email failed", "order_id", order.ID, "error", err)
		}
	}

	if s.Events != nil {
		ev := events.NewEnvelope("order_created", map[string]any{
			"order_id":     order.ID,
			"user_id":      order.UserID,
			"total_amount": order.TotalAmount,
			"items":        order.Items,
		})
		if err := s.Events.PublishEvent(ctx, events.TopicOrderEvents, fmt.Sprint(order.ID), ev); err != nil {
			l.Error("order event publish failed", "order_id", order.ID, "error", err)
		}
	}

	if s.Cache != nil {
		s.Cache.SetOrderStatus(ctx, order.ID, order.Status)
	}
}
