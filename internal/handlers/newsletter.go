package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/chicfit/storefront/internal/logging"
	"github.com/chicfit/storefront/internal/models"
)

type NewsletterHandler struct {
	DB *gorm.DB
}

// Subscribe is idempotent; resubscribing an existing address succeeds.
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "newsletter_subscribe")

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	var existing models.NewsletterSubscriber
	err := h.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return c.JSON(http.StatusOK, echo.Map{"status": "subscribed"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("newsletter_lookup_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := h.DB.Create(&models.NewsletterSubscriber{Email: req.Email}).Error; err != nil {
		l.Error("newsletter_subscribe_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusCreated, echo.Map{"status": "subscribed"})
}

func (h *NewsletterHandler) Unsubscribe(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email required")
	}

	res := h.DB.Where("email = ?", req.Email).Delete(&models.NewsletterSubscriber{})
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "not subscribed")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "unsubscribed"})
}

func (h *NewsletterHandler) AdminList(c echo.Context) error {
	var subs []models.NewsletterSubscriber
	if err := h.DB.Order("created_at DESC").Find(&subs).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": subs, "total": len(subs)})
}

func (h *NewsletterHandler) AdminDelete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	res := h.DB.Delete(&models.NewsletterSubscriber{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "subscriber not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted", "id": id})
}
