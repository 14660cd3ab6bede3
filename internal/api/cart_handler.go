package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mluvul69-gif/linea-store/internal/repository"
	"github.com/mluvul69-gif/linea-store/internal/service"
)

// SessionIdentifier resolves the browser's session id, minting one when the
// request has none yet.
type SessionIdentifier interface {
	SessionID(r *http.Request, w http.ResponseWriter) (string, error)
}

type CartHandler struct {
	carts    *service.CartService
	sessions SessionIdentifier
}

func NewCartHandler(carts *service.CartService, sessions SessionIdentifier) *CartHandler {
	return &CartHandler{
		carts:    carts,
		sessions: sessions,
	}
}

// ViewCart serves the resolved cart with subtotals --> /cart
func (h *CartHandler) ViewCart(c echo.Context) error {
	sid, err := h.sessions.SessionID(c.Request(), c.Response())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	view, err := h.carts.ViewCart(c.Request().Context(), sid)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, view)
}

// AddToCart merges a product into the session cart --> /add-to-cart
func (h *CartHandler) AddToCart(c echo.Context) error {
	productID, err := strconv.Atoi(c.FormValue("product_id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}

	quantity := 1
	if q := c.FormValue("quantity"); q != "" {
		quantity, err = strconv.Atoi(q)
		if err != nil {
			return c.JSON(400, map[string]string{"error": "Invalid quantity"})
		}
	}

	sid, err := h.sessions.SessionID(c.Request(), c.Response())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	if err := h.carts.AddToCart(c.Request().Context(), sid, productID, quantity); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(404, map[string]string{"error": "Product not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.Redirect(http.StatusSeeOther, "/cart")
}
