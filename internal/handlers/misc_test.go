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

func TestNewsletterSubscribeIdempotent(t *testing.T) {
	env := newTestEnv(t)
	h := &NewsletterHandler{DB: env.DB}

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/newsletter", map[string]string{"email": "Ada@Example.com"})
	require.NoError(t, h.Subscribe(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same address again, different casing: still fine, still one row.
	rec2, c2 := env.doJSONRequest(http.MethodPost, "/api/v1/newsletter", map[string]string{"email": "ada@example.com"})
	require.NoError(t, h.Subscribe(c2))
	require.Equal(t, http.StatusOK, rec2.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.NewsletterSubscriber{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	rec3, c3 := env.doJSONRequest(http.MethodDelete, "/api/v1/newsletter", map[string]string{"email": "ada@example.com"})
	require.NoError(t, h.Unsubscribe(c3))
	require.Equal(t, http.StatusOK, rec3.Code)

	_, c4 := env.doJSONRequest(http.MethodDelete, "/api/v1/newsletter", map[string]string{"email": "ada@example.com"})
	err := h.Unsubscribe(c4)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestContactCreate(t *testing.T) {
	env := newTestEnv(t)
	h := &ContactHandler{DB: env.DB}

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/contact", map[string]string{
		"name":    "Ada",
		"email":   "ada@example.com",
		"subject": "Sizing question",
		"message": "Does the linen dress run small?",
	})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var msg models.ContactMessage
	require.NoError(t, env.DB.First(&msg).Error)
	require.Equal(t, "new", msg.Status)

	_, cBad := env.doJSONRequest(http.MethodPost, "/api/v1/contact", map[string]string{"name": "Ada"})
	err := h.Create(cBad)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestReviewCreateAndOverwrite(t *testing.T) {
	env := newTestEnv(t)
	h := &ReviewHandler{DB: env.DB}
	p := env.seedProduct("dress", 49.90, 3)

	post := func(rating int) (*httpTestResult, error) {
		rec, c := env.doJSONRequest(http.MethodPost, "/", map[string]any{"rating": rating, "comment": "nice"})
		c.SetPath("/api/v1/products/:id/reviews")
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(p.ID))
		as(c, 7, "user")
		err := h.Create(c)
		return &httpTestResult{rec.Code, rec.Body.Bytes()}, err
	}

	res, err := post(4)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, res.Code)

	// Second submission by the same user replaces the first.
	res, err = post(2)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.Review{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	recList, cList := env.doJSONRequest(http.MethodGet, "/", nil)
	cList.SetPath("/api/v1/products/:id/reviews")
	cList.SetParamNames("id")
	cList.SetParamValues(fmt.Sprint(p.ID))
	require.NoError(t, h.ListForProduct(cList))

	var listResp struct {
		Count   int     `json:"count"`
		Average float64 `json:"average"`
	}
	require.NoError(t, json.Unmarshal(recList.Body.Bytes(), &listResp))
	require.Equal(t, 1, listResp.Count)
	require.InDelta(t, 2.0, listResp.Average, 0.001)
}

func TestReviewRejectsBadRating(t *testing.T) {
	env := newTestEnv(t)
	h := &ReviewHandler{DB: env.DB}
	p := env.seedProduct("dress", 49.90, 3)

	for _, rating := range []int{0, 6, -1} {
		_, c := env.doJSONRequest(http.MethodPost, "/", map[string]any{"rating": rating})
		c.SetPath("/api/v1/products/:id/reviews")
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(p.ID))
		as(c, 7, "user")
		err := h.Create(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok, "expected HTTPError for rating %d", rating)
		require.Equal(t, http.StatusBadRequest, he.Code)
	}
}

type httpTestResult struct {
	Code int
	Body []byte
}
