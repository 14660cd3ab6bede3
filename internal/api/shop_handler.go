package api

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mluvul69-gif/linea-store/internal/repository"
	"github.com/mluvul69-gif/linea-store/internal/service"
)

const featuredLimit = 4

type ShopHandler struct {
	catalog *service.CatalogService
}

func NewShopHandler(catalog *service.CatalogService) *ShopHandler {
	return &ShopHandler{catalog: catalog}
}

// Home serves the landing page data --> /
func (h *ShopHandler) Home(c echo.Context) error {
	featured, err := h.catalog.FeaturedProducts(c.Request().Context(), featuredLimit)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, map[string]interface{}{"featured": featured})
}

// ListProducts lists the whole catalog --> /shop
func (h *ShopHandler) ListProducts(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, map[string]interface{}{"products": products})
}

// GetProduct serves one product's detail --> /product/:id
func (h *ShopHandler) GetProduct(c echo.Context) error {
	id := c.Param("id")
	idInt, err := strconv.Atoi(id)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}

	product, err := h.catalog.GetProduct(c.Request().Context(), idInt)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(404, map[string]string{"error": "Product not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, product)
}
