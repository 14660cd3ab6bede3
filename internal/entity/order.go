package entity

import "time"

type Order struct {
	ID              int         `json:"id"`
	StripeSessionID string      `json:"stripe_session_id"`
	CustomerEmail   string      `json:"customer_email"`
	Total           float64     `json:"total"`
	CreatedAt       time.Time   `json:"created_at"`
	Items           []OrderItem `json:"items"`
}

// OrderItem snapshots the product name and unit price at settlement time, so
// orders survive later catalog edits.
type OrderItem struct {
	ID          int     `json:"id"`
	OrderID     int     `json:"order_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

/*
Mysql Tables

CREATE TABLE orders (
	id INT AUTO_INCREMENT PRIMARY KEY,
	stripe_session_id VARCHAR(255) NOT NULL UNIQUE,
	customer_email VARCHAR(255) NOT NULL,
	total DOUBLE NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE order_items (
	id INT AUTO_INCREMENT PRIMARY KEY,
	order_id INT NOT NULL,
	product_name VARCHAR(255) NOT NULL,
	quantity INT NOT NULL,
	unit_price DOUBLE NOT NULL,
	FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
);
*/
