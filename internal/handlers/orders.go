package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chicfit/storefront/internal/models"
	"github.com/chicfit/storefront/internal/service"
	"github.com/chicfit/storefront/internal/util"
)

type OrderHandler struct {
	Orders *service.Orders
}

func (h *OrderHandler) List(c echo.Context) error {
	userID, _ := userFrom(c)

	orders, err := h.Orders.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	userID, role := userFrom(c)

	order, err := h.Orders.Get(c.Request().Context(), id, userID, role)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Status(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	userID, role := userFrom(c)

	status, err := h.Orders.Status(c.Request().Context(), id, userID, role)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"orderId": id, "status": status})
}

func (h *OrderHandler) AdminList(c echo.Context) error {
	_, role := userFrom(c)
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	total, orders, err := h.Orders.ListPage(c.Request().Context(), role, page, size)
	if err != nil {
		return domainError(c, err)
	}

	offset, limit := util.Calculate(page, size)
	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": pageMeta(page, limit, offset, total),
	})
}

func (h *OrderHandler) AdminTransition(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	_, role := userFrom(c)

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status required")
	}

	order, err := h.Orders.Transition(c.Request().Context(), id, req.Status, role)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}
