package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/chicfit/storefront/internal/logging"
	"github.com/chicfit/storefront/internal/models"
	"github.com/chicfit/storefront/internal/util"
)

type ContactHandler struct {
	DB *gorm.DB
}

func (h *ContactHandler) Create(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "contact_create")

	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Email == "" || req.Subject == "" || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email, subject and message are required")
	}
	if !strings.Contains(req.Email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	msg := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.DB.Create(&msg).Error; err != nil {
		l.Error("contact_create_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusCreated, echo.Map{"status": "received", "id": msg.ID})
}

func (h *ContactHandler) AdminList(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	var total int64
	if err := h.DB.Model(&models.ContactMessage{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	var msgs []models.ContactMessage
	if err := h.DB.Order("created_at DESC").Offset(offset).Limit(limit).Find(&msgs).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": msgs,
		"meta": pageMeta(page, limit, offset, total),
	})
}

var contactStatuses = map[string]bool{"new": true, "read": true, "replied": true}

func (h *ContactHandler) AdminUpdateStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if !contactStatuses[req.Status] {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be new, read or replied")
	}

	res := h.DB.Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("status", req.Status)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "message not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": req.Status, "id": id})
}

func (h *ContactHandler) AdminDelete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	res := h.DB.Delete(&models.ContactMessage{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "message not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted", "id": id})
}
