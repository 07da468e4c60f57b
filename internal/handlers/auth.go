package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/chicfit/storefront/internal/events"
	"github.com/chicfit/storefront/internal/hash"
	"github.com/chicfit/storefront/internal/logging"
	"github.com/chicfit/storefront/internal/models"
	"github.com/chicfit/storefront/internal/service/token"
)

type AuthHandler struct {
	DB     *gorm.DB
	Tokens *token.TokenService
	Events events.Publisher
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		l.Warn("register_failed", "status", 400, "reason", "missing fields")
		return echo.NewHTTPError(http.StatusBadRequest, "name, email and a password of at least 8 characters are required")
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			l.Error("register_failed", "status", 500, "reason", "db_error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	} else {
		l.Warn("register_failed", "status", 409, "reason", "user_exists")
		return echo.NewHTTPError(http.StatusConflict, "user already exists")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot hash the password", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(pwHash),
		Role:         "user",
	}
	if err := h.DB.Create(&user).Error; err != nil {
		l.Error("register_failed", "status", 500, "reason", "db_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if h.Events != nil {
		ev := events.NewEnvelope("user_registered", map[string]any{
			"user_id": user.ID,
			"email":   user.Email,
		})
		if err := h.Events.PublishEvent(ctx, events.TopicUserEvents, fmt.Sprint(user.ID), ev); err != nil {
			l.Error("user event publish failed", "user_id", user.ID, "error", err)
		}
	}

	l.Info("register_success", "status", 201, "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"id": user.ID, "name": user.Name, "email": user.Email, "role": user.Role,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		l.Warn("login_failed", "status", 401, "reason", "invalid email or password")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "invalid email or password")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	access, err := token.SignAccessToken(user.ID, user.Role, h.Tokens.JWTSecret)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "sign access", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	refresh, err := token.SignRefreshToken(user.ID, user.Role, h.Tokens.RefreshSecret)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "sign refresh", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if err := token.SaveRefreshToken(h.DB, refresh, user.ID, user.Role); err != nil {
		l.Error("login_failed", "status", 500, "reason", "db_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	c.SetCookie(token.CreateCookie("accessToken", access, "/", time.Now().Add(token.AccessTTL)))
	c.SetCookie(token.CreateCookie("refreshToken", refresh, "/", time.Now().Add(token.RefreshTTL)))

	l.Info("login_success", "status", 200, "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"id": user.ID, "name": user.Name, "email": user.Email, "role": user.Role,
	})
}

// Refresh rotates the refresh cookie explicitly; the auth middleware also
// rotates transparently when the access cookie has expired.
func (h *AuthHandler) Refresh(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth_refresh")

	rf, err := c.Cookie("refreshToken")
	if err != nil || rf.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}

	access, refresh, _, err := h.Tokens.RotateToken(rf.Value)
	if err != nil {
		l.Warn("refresh_failed", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "cannot refresh session")
	}

	c.SetCookie(token.CreateCookie("accessToken", access, "/", time.Now().Add(token.AccessTTL)))
	c.SetCookie(token.CreateCookie("refreshToken", refresh, "/", time.Now().Add(token.RefreshTTL)))
	return c.JSON(http.StatusOK, echo.Map{"status": "refreshed"})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth_logout")

	if rf, err := c.Cookie("refreshToken"); err == nil && rf.Value != "" {
		if err := h.Tokens.RevokeRefresh(rf.Value); err != nil {
			l.Error("logout_revoke_failed", "error", err)
		}
	}

	c.SetCookie(token.CreateCookie("accessToken", "", "/", time.Unix(0, 0)))
	c.SetCookie(token.CreateCookie("refreshToken", "", "/", time.Unix(0, 0)))

	l.Info("logout_success", "status", 200)
	return c.JSON(http.StatusOK, echo.Map{"status": "logged out"})
}

// Me returns the profile of the authenticated caller.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := userFrom(c)

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}
	return c.JSON(http.StatusOK, user)
}
