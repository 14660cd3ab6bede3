package entity

// CartEntry is what the session holds: a product reference and a quantity.
// At most one entry exists per product id; adding an existing product merges
// quantities instead of appending.
type CartEntry struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// CartItem is a cart entry resolved against the catalog at view time.
type CartItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImagePath string  `json:"image_path"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type CartView struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}
