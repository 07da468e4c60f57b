package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chicfit/storefront/internal/service"
)

type CheckoutHandler struct {
	Checkout *service.Checkout
}

func (h *CheckoutHandler) Create(c echo.Context) error {
	userID, _ := userFrom(c)

	var in service.CheckoutInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Checkout.Checkout(c.Request().Context(), userID, in)
	if err != nil {
		return domainError(c, err)
	}

	// clientSecret mirrors the shape a payment provider integration would
	// return; payment here settles synchronously.
	return c.JSON(http.StatusCreated, echo.Map{
		"orderId":      order.ID,
		"clientSecret": fmt.Sprintf("sim_%d_secret", order.ID),
		"order":        order,
	})
}
