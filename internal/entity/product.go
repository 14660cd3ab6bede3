package entity

import "time"

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Color       string    `json:"color"`
	Size        string    `json:"size"` // comma-joined set, e.g. "S,M,L"
	ImagePath   string    `json:"image_path"`
	Description string    `json:"description"`
	Popularity  int       `json:"popularity"`
	CreatedAt   time.Time `json:"created_at"`
}

/*
Mysql Table

CREATE TABLE products (
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
*/
