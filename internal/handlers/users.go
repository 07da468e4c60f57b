package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/chicfit/storefront/internal/logging"
	"github.com/chicfit/storefront/internal/models"
	"github.com/chicfit/storefront/internal/util"
)

// UserHandler covers the admin user directory. All routes behind the admin
// middleware.
type UserHandler struct {
	DB *gorm.DB
}

func (h *UserHandler) List(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	var total int64
	if err := h.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	var users []models.User
	if err := h.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": users,
		"meta": pageMeta(page, limit, offset, total),
	})
}

func (h *UserHandler) PatchRole(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "user_patch_role")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Role != "user" && req.Role != "admin" {
		return echo.NewHTTPError(http.StatusBadRequest, "role must be user or admin")
	}

	callerID, _ := userFrom(c)
	if id == callerID {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot change your own role")
	}

	res := h.DB.Model(&models.User{}).Where("id = ?", id).Update("role", req.Role)
	if res.Error != nil {
		l.Error("user_patch_role_failed", "user_id", id, "error", res.Error)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}

	l.Info("user_role_changed", "user_id", id, "role", req.Role)
	return c.JSON(http.StatusOK, echo.Map{"id": id, "role": req.Role})
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	callerID, _ := userFrom(c)
	if id == callerID {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot delete your own account")
	}

	res := h.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted", "id": id})
}
