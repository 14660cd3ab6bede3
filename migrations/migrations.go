package migrations

import (
	"database/sql"
	"time"
)

// AutoMigrateProducts creates the products table if it does not exist.
func AutoMigrateProducts(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS products (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100) NOT NULL,
			price DOUBLE NOT NULL,
			color VARCHAR(50),
			size VARCHAR(50),
			image_path VARCHAR(255) NOT NULL,
			description TEXT,
			popularity INT DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	return execWithRetry(db, query, retries)
}

// AutoMigrateOrders creates the orders table if it does not exist. The unique
// index on stripe_session_id is what keeps replayed payment webhooks from
// inserting a second order.
func AutoMigrateOrders(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS orders (
			id INT AUTO_INCREMENT PRIMARY KEY,
			stripe_session_id VARCHAR(255) NOT NULL UNIQUE,
			customer_email VARCHAR(255) NOT NULL,
			total DOUBLE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	return execWithRetry(db, query, retries)
}

// AutoMigrateOrderItems creates the order_items table if it does not exist.
func AutoMigrateOrderItems(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS order_items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			order_id INT NOT NULL,
			product_name VARCHAR(255) NOT NULL,
			quantity INT NOT NULL,
			unit_price DOUBLE NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
		);
	`
	return execWithRetry(db, query, retries)
}

// AutoMigrateAdmin creates the admin table if it does not exist.
func AutoMigrateAdmin(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS admin (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(50) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL
		);
	`
	return execWithRetry(db, query, retries)
}

func execWithRetry(db *sql.DB, query string, retries int) error {
	_, err := db.Exec(query)
	if err != nil {
		for i := 0; i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(query)
			if err == nil {
				break
			}
		}
	}
	return err
}

// SeedProducts inserts the starter catalog when the products table is empty.
func SeedProducts(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []struct {
		name, category     string
		price              float64
		color, size, image string
		description        string
	}{
		{"Series II-Black Hoodie", "Men", 128, "Black", "S,M,L", "static/images/products/black-hood.png", "High-quality hoodie: heavyweight cotton fleece, soft brushed inside, strong stitching, thick ribbing, and a double-layer hood."},
		{"Series II-White Hoodie", "Men", 128, "White", "M,L,XL", "static/images/products/white-hood.png", "High-quality hoodie: heavyweight cotton fleece, soft brushed inside, strong stitching, thick ribbing, and a double-layer hood."},
		{"Series I Cap", "Men", 48, "White", "M,L", "static/images/products/hat.png", "Premium wool-blend hat crafted from heavyweight fabric with structured design."},
		{"White-Form Trousers", "Men", 128, "Black", "M,L,XL", "static/images/products/trousers.png", "Tailored men's trousers crafted from premium wool-blend suiting fabric."},
		{"Black Signature-Trousers", "Boys", 88, "Black", "S,M,L", "static/images/products/black-pant.png", "Modern tailored trousers cut from high-grade wool-blend suiting fabric."},
		{"White Signature-Trousers", "Men", 88, "White", "M,L,XL", "static/images/products/white-pant.png", "Modern tailored trousers cut from high-grade wool-blend suiting fabric."},
		{"First Collection-Black tee", "Boys", 102, "Black", "M,L", "static/images/products/black-tee.png", "Luxury heavyweight T-shirt crafted from premium combed cotton."},
		{"First Collection-White tee", "Boys", 102, "White", "M,L,XL", "static/images/products/white-tee.png", "Luxury heavyweight T-shirt crafted from premium combed cotton."},
		{"White Soft-Socks", "Boys", 22, "White", "M,L,XL", "static/images/products/socks.png", "Premium soft-socks to keep you going."},
		{"Edition II Mens-Shorts", "Boys", 62, "White", "M,L,XL", "static/images/products/shorts.png", "Quality made shorts."},
		{"Linea Women-Duo", "Boys", 342, "White", "M,L,XL", "static/images/products/duo.png", "Our special premium offer, high quality women clothing."},
	}

	query := `INSERT INTO products (name, category, price, color, size, image_path, description) VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, p := range samples {
		if _, err := db.Exec(query, p.name, p.category, p.price, p.color, p.size, p.image, p.description); err != nil {
			return err
		}
	}
	return nil
}
