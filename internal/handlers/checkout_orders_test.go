package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/chicfit/storefront/internal/models"
)

func TestCheckoutEndpoint(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct("dress", 25.00, 1)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/checkout", validCheckoutPayload(p.ID, 1))
	as(c, 7, "user")

	require.NoError(t, env.Checkout.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		OrderID      uint   `json:"orderId"`
		ClientSecret string `json:"clientSecret"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.OrderID)
	require.NotEmpty(t, resp.ClientSecret)

	var stored models.Order
	require.NoError(t, env.DB.Preload("Items").First(&stored, resp.OrderID).Error)
	require.Equal(t, models.OrderStatusProcessing, stored.Status)
	require.InDelta(t, 25.00, stored.TotalAmount, 0.001)
}

func TestCheckoutEndpointInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct("dress", 25.00, 1)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/checkout", validCheckoutPayload(p.ID, 2))
	as(c, 7, "user")

	err := env.Checkout.Create(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)

	var stock models.Product
	require.NoError(t, env.DB.First(&stock, p.ID).Error)
	require.Equal(t, 1, stock.Stock)
}

func TestGetOrderOwnership(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct("dress", 25.00, 2)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/checkout", validCheckoutPayload(p.ID, 1))
	as(c, 7, "user")
	require.NoError(t, env.Checkout.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		OrderID uint `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Owner sees the order.
	recGet, cGet := env.doJSONRequest(http.MethodGet, "/", nil)
	cGet.SetPath("/api/v1/orders/:id")
	cGet.SetParamNames("id")
	cGet.SetParamValues(fmt.Sprint(resp.OrderID))
	as(cGet, 7, "user")
	require.NoError(t, env.Orders.Get(cGet))
	require.Equal(t, http.StatusOK, recGet.Code)

	// A different user is refused.
	_, cOther := env.doJSONRequest(http.MethodGet, "/", nil)
	cOther.SetPath("/api/v1/orders/:id")
	cOther.SetParamNames("id")
	cOther.SetParamValues(fmt.Sprint(resp.OrderID))
	as(cOther, 8, "user")

	err := env.Orders.Get(cOther)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusForbidden, he.Code)

	// An admin is not.
	recAdmin, cAdmin := env.doJSONRequest(http.MethodGet, "/", nil)
	cAdmin.SetPath("/api/v1/orders/:id")
	cAdmin.SetParamNames("id")
	cAdmin.SetParamValues(fmt.Sprint(resp.OrderID))
	as(cAdmin, 8, "admin")
	require.NoError(t, env.Orders.Get(cAdmin))
	require.Equal(t, http.StatusOK, recAdmin.Code)
}

func TestAdminTransitionEndpoint(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct("dress", 25.00, 2)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/checkout", validCheckoutPayload(p.ID, 2))
	as(c, 7, "user")
	require.NoError(t, env.Checkout.Create(c))

	var resp struct {
		OrderID uint `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	patch := func(status string, role string) (*echo.HTTPError, int) {
		recP, cP := env.doJSONRequest(http.MethodPatch, "/", map[string]string{"status": status})
		cP.SetPath("/api/v1/admin/orders/:id")
		cP.SetParamNames("id")
		cP.SetParamValues(fmt.Sprint(resp.OrderID))
		as(cP, 1, role)
		err := env.Orders.AdminTransition(cP)
		if err != nil {
			he, ok := err.(*echo.HTTPError)
			require.True(t, ok, "expected HTTPError")
			return he, recP.Code
		}
		return nil, recP.Code
	}

	// Illegal jump refused.
	he, _ := patch("delivered", "admin")
	require.NotNil(t, he)
	require.Equal(t, http.StatusBadRequest, he.Code)

	// Legal move applied.
	he, code := patch("shipped", "admin")
	require.Nil(t, he)
	require.Equal(t, http.StatusOK, code)

	var stored models.Order
	require.NoError(t, env.DB.First(&stored, resp.OrderID).Error)
	require.Equal(t, models.OrderStatusShipped, stored.Status)
}

func TestOrderStatusEndpoint(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct("dress", 25.00, 1)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/checkout", validCheckoutPayload(p.ID, 1))
	as(c, 7, "user")
	require.NoError(t, env.Checkout.Create(c))

	var resp struct {
		OrderID uint `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	recS, cS := env.doJSONRequest(http.MethodGet, "/", nil)
	cS.SetPath("/api/v1/orders/:id/status")
	cS.SetParamNames("id")
	cS.SetParamValues(fmt.Sprint(resp.OrderID))
	as(cS, 7, "user")

	require.NoError(t, env.Orders.Status(cS))
	require.Equal(t, http.StatusOK, recS.Code)

	var status struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(recS.Body.Bytes(), &status))
	require.Equal(t, "processing", status.Status)
}
