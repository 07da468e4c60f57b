package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/chicfit/storefront/internal/models"
	"github.com/chicfit/storefront/internal/service"
	"github.com/chicfit/storefront/internal/util"
)

type ReturnHandler struct {
	DB      *gorm.DB
	Returns *service.Returns
}

func (h *ReturnHandler) Create(c echo.Context) error {
	userID, _ := userFrom(c)

	var in service.ReturnInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}

	ret, err := h.Returns.Create(c.Request().Context(), userID, user.Email, user.Name, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, ret)
}

func (h *ReturnHandler) List(c echo.Context) error {
	userID, _ := userFrom(c)

	returns, err := h.Returns.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, returns)
}

func (h *ReturnHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	userID, role := userFrom(c)

	ret, err := h.Returns.Get(c.Request().Context(), id, userID, role)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, ret)
}

func (h *ReturnHandler) AdminList(c echo.Context) error {
	_, role := userFrom(c)
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	total, returns, err := h.Returns.ListPage(c.Request().Context(), role, page, size)
	if err != nil {
		return domainError(c, err)
	}

	offset, limit := util.Calculate(page, size)
	return c.JSON(http.StatusOK, map[string]any{
		"data": returns,
		"meta": pageMeta(page, limit, offset, total),
	})
}

func (h *ReturnHandler) AdminTransition(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	_, role := userFrom(c)

	var req struct {
		Status      models.ReturnStatus `json:"status"`
		ReturnLabel string              `json:"returnLabel"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status required")
	}

	ret, err := h.Returns.Transition(c.Request().Context(), id, req.Status, req.ReturnLabel, role)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, ret)
}
