package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mluvul69-gif/linea-store/internal/entity"
	"github.com/mluvul69-gif/linea-store/internal/service"
)

// AdminCookieName carries the signed admin token; the dashboard routes are
// guarded by JWT middleware reading this cookie.
const AdminCookieName = "admin_token"

type AdminHandler struct {
	admins  *service.AdminService
	catalog *service.CatalogService
	orders  *service.OrderService
}

func NewAdminHandler(admins *service.AdminService, catalog *service.CatalogService, orders *service.OrderService) *AdminHandler {
	return &AdminHandler{
		admins:  admins,
		catalog: catalog,
		orders:  orders,
	}
}

// LoginForm answers the login page fetch --> GET /admin-login
func (h *AdminHandler) LoginForm(c echo.Context) error {
	return c.JSON(200, map[string]string{"message": "Submit username and password to /admin-login"})
}

// Login authenticates the admin account --> POST /admin-login
// Unknown usernames and wrong passwords get the same answer.
func (h *AdminHandler) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	token, err := h.admins.Login(c.Request().Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(401, map[string]string{"error": "invalid credentials"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	c.SetCookie(&http.Cookie{
		Name:     AdminCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.admins.TokenTTL()),
		HttpOnly: true,
	})

	return c.JSON(200, map[string]string{"message": "Logged in"})
}

// Dashboard serves the catalog and order books --> /admin-dashboard
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	orders, err := h.orders.ListOrders(ctx)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]interface{}{
		"products": products,
		"orders":   orders,
	})
}

// AddProduct inserts a catalog row --> POST /admin-add-product
func (h *AdminHandler) AddProduct(c echo.Context) error {
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid price"})
	}

	product := &entity.Product{
		Name:        c.FormValue("name"),
		Category:    c.FormValue("category"),
		Price:       price,
		Color:       c.FormValue("color"),
		Size:        c.FormValue("size"),
		ImagePath:   c.FormValue("image_path"),
		Description: c.FormValue("description"),
	}

	created, err := h.catalog.AddProduct(c.Request().Context(), product)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, created)
}
