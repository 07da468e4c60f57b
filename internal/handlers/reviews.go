package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/chicfit/storefront/internal/logging"
	"github.com/chicfit/storefront/internal/models"
	"github.com/chicfit/storefront/internal/repo"
	"github.com/chicfit/storefront/internal/util"
)

type ReviewHandler struct {
	DB *gorm.DB
}

// Create stores one review per user per product; a second submission
// overwrites the first.
func (h *ReviewHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review_create")

	productID, err := parseID(c)
	if err != nil {
		return err
	}
	userID, _ := userFrom(c)

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	cat := repo.Catalog{DB: h.DB}
	if _, err := cat.GetProduct(ctx, productID); err != nil {
		if repo.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	review := models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	var existing models.Review
	err = h.DB.Where("product_id = ? AND user_id = ?", productID, userID).First(&existing).Error
	switch {
	case err == nil:
		existing.Rating = req.Rating
		existing.Comment = req.Comment
		if err := h.DB.Save(&existing).Error; err != nil {
			l.Error("review_update_failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		return c.JSON(http.StatusOK, existing)
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := h.DB.Create(&review).Error; err != nil {
			l.Error("review_create_failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		return c.JSON(http.StatusCreated, review)
	default:
		l.Error("review_lookup_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func (h *ReviewHandler) ListForProduct(c echo.Context) error {
	productID, err := parseID(c)
	if err != nil {
		return err
	}

	var reviews []models.Review
	if err := h.DB.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	var avg float64
	for _, r := range reviews {
		avg += float64(r.Rating)
	}
	if len(reviews) > 0 {
		avg /= float64(len(reviews))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"reviews": reviews,
		"count":   len(reviews),
		"average": avg,
	})
}

func (h *ReviewHandler) AdminList(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	var total int64
	if err := h.DB.Model(&models.Review{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	var reviews []models.Review
	if err := h.DB.Order("created_at DESC").Offset(offset).Limit(limit).Find(&reviews).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": reviews,
		"meta": pageMeta(page, limit, offset, total),
	})
}

func (h *ReviewHandler) AdminDelete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	res := h.DB.Delete(&models.Review{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "review not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted", "id": id})
}
