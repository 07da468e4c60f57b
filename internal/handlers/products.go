package handlers

import (
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/chicfit/storefront/internal/events"
	"github.com/chicfit/storefront/internal/logging"
	"github.com/chicfit/storefront/internal/models"
	"github.com/chicfit/storefront/internal/repo"
	"github.com/chicfit/storefront/internal/search"
	"github.com/chicfit/storefront/internal/util"
)

type ProductHandler struct {
	DB     *gorm.DB
	ES     *elasticsearch.Client
	Events events.Publisher
}

type productInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Stock       *int     `json:"stock"`
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	cat := repo.Catalog{DB: h.DB}
	product, err := cat.GetProduct(c.Request().Context(), id)
	if err != nil {
		if repo.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	category := c.QueryParam("category")

	if category != "" && !models.ProductCategories[category] {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown category")
	}

	offset, limit := util.Calculate(page, size)

	cat := repo.Catalog{DB: h.DB}
	total, items, err := cat.GetProducts(c.Request().Context(), category, offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": pageMeta(page, limit, offset, total),
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_create")

	var req productInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Category == "" || req.Price == nil || *req.Price < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name, category and a non-negative price are required")
	}
	if !models.ProductCategories[req.Category] {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown category")
	}

	prod := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "stock cannot be negative")
		}
		prod.Stock = *req.Stock
	}

	cat := repo.Catalog{DB: h.DB}
	if err := cat.CreateProduct(ctx, &prod); err != nil {
		l.Error("product_create_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.afterWrite(c, "product_created", &prod)
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_patch")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req productInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat := repo.Catalog{DB: h.DB}
	prod, err := cat.GetProduct(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if req.Name != "" {
		prod.Name = req.Name
	}
	if req.Description != "" {
		prod.Description = req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "price cannot be negative")
		}
		prod.Price = *req.Price
	}
	if req.Category != "" {
		if !models.ProductCategories[req.Category] {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown category")
		}
		prod.Category = req.Category
	}
	if req.Image != "" {
		prod.Image = req.Image
	}
	if req.Sizes != nil {
		prod.Sizes = req.Sizes
	}
	if req.Colors != nil {
		prod.Colors = req.Colors
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "stock cannot be negative")
		}
		prod.Stock = *req.Stock
	}

	if err := cat.SaveProduct(ctx, prod); err != nil {
		l.Error("product_patch_failed", "product_id", id, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.afterWrite(c, "product_updated", prod)
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_delete")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	cat := repo.Catalog{DB: h.DB}
	if err := cat.DeleteProduct(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("product_delete_failed", "product_id", id, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if h.ES != nil {
		if err := search.DeleteProduct(ctx, h.ES, search.ProductIndex, id); err != nil {
			l.Error("product index delete failed", "product_id", id, "error", err)
		}
	}
	if h.Events != nil {
		ev := events.NewEnvelope("product_deleted", map[string]any{"product_id": id})
		if err := h.Events.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(id), ev); err != nil {
			l.Error("product event publish failed", "product_id", id, "error", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "deleted", "id": id})
}

// afterWrite keeps the search index and the event stream in step with the
// catalog, best-effort.
func (h *ProductHandler) afterWrite(c echo.Context, eventType string, prod *models.Product) {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx)

	if h.ES != nil {
		if err := search.IndexProduct(ctx, h.ES, search.ProductIndex, prod); err != nil {
			l.Error("product index failed", "product_id", prod.ID, "error", err)
		}
	}
	if h.Events != nil {
		ev := events.NewEnvelope(eventType, map[string]any{
			"product_id": prod.ID,
			"name":       prod.Name,
			"price":      prod.Price,
			"stock":      prod.Stock,
		})
		if err := h.Events.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(prod.ID), ev); err != nil {
			l.Error("product event publish failed", "product_id", prod.ID, "error", err)
		}
	}
}
