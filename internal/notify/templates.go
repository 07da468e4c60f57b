package notify

import (
	"fmt"
	"strings"

	"github.com/chicfit/storefront/internal/models"
)

func OrderConfirmation(order *models.Order, names map[uint]string) Email {
	var lines strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&lines, "<li>%s x %d - $%.2f</li>",
			names[item.ProductID], item.Quantity, item.Price*float64(item.Quantity))
	}

	return Email{
		To:      order.ShippingAddress.Email,
		Subject: fmt.Sprintf("Order Confirmation #%d", order.ID),
		Text: fmt.Sprintf("Thank you for your order! Your order #%d has been confirmed.",
			order.ID),
		HTML: fmt.Sprintf(
			"<h1>Order Confirmation</h1><p>Thank you for your order!</p>"+
				"<p>Order #: %d</p><p>Total: $%.2f</p><h2>Items:</h2><ul>%s</ul>",
			order.ID, order.TotalAmount, lines.String()),
	}
}

func OrderStatusUpdate(order *models.Order, publicURL string) Email {
	return Email{
		To:      order.ShippingAddress.Email,
		Subject: fmt.Sprintf("Order Status Update #%d", order.ID),
		Text: fmt.Sprintf("Your order #%d status has been updated to %s.",
			order.ID, order.Status),
		HTML: fmt.Sprintf(
			"<h1>Order Status Update</h1><p>Your order #%d has been updated.</p>"+
				"<p>New Status: %s</p>"+
				`<p>Track your order here: <a href="%s/orders/%d">View Order</a></p>`,
			order.ID, order.Status, publicURL, order.ID),
	}
}

func ReturnConfirmation(ret *models.Return, to, name string) Email {
	var lines strings.Builder
	for _, item := range ret.Items {
		fmt.Fprintf(&lines, "<li>%s (Size: %s)<br>Reason: %s</li>",
			item.Name, item.Size, item.Reason)
	}

	return Email{
		To:      to,
		Subject: "Return Request Confirmation - ChicFit",
		Text: fmt.Sprintf(
			"Dear %s,\n\nYour return request has been received. Return Request ID: %d\n\n"+
				"We will review your request and get back to you shortly.\n\n"+
				"Best regards,\nChicFit Team", name, ret.ID),
		HTML: fmt.Sprintf(
			"<h1>Return Request Confirmation</h1><p>Dear %s,</p>"+
				"<p>We have received your return request. Our team will review it shortly.</p>"+
				"<p><strong>Return Request ID:</strong> %d</p>"+
				"<h2>Items to Return:</h2><ul>%s</ul>"+
				"<p><strong>Shipping Method:</strong> %s</p>",
			name, ret.ID, lines.String(), ret.ShippingMethod),
	}
}
