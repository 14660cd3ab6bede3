package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mluvul69-gif/linea-store/internal/entity"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db}
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	query := `SELECT id, name, category, price, color, size, image_path, description, popularity, created_at FROM products WHERE id = ?`
	product := &entity.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.Category, &product.Price,
		&product.Color, &product.Size, &product.ImagePath, &product.Description,
		&product.Popularity, &product.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return product, nil
}

func (r *ProductRepository) GetProducts(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT id, name, category, price, color, size, image_path, description, popularity, created_at FROM products ORDER BY id`
	return r.queryProducts(ctx, query)
}

// GetFeaturedProducts returns the most added-to-cart products for the landing page.
func (r *ProductRepository) GetFeaturedProducts(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := `SELECT id, name, category, price, color, size, image_path, description, popularity, created_at FROM products ORDER BY popularity DESC, id LIMIT ?`
	return r.queryProducts(ctx, query, limit)
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*entity.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var product entity.Product
		err := rows.Scan(
			&product.ID, &product.Name, &product.Category, &product.Price,
			&product.Color, &product.Size, &product.ImagePath, &product.Description,
			&product.Popularity, &product.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		products = append(products, &product)
	}

	return products, rows.Err()
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	query := `INSERT INTO products (name, category, price, color, size, image_path, description) VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, product.Name, product.Category, product.Price, product.Color, product.Size, product.ImagePath, product.Description)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	product.ID = int(id)
	return product, nil
}

func (r *ProductRepository) IncrementPopularity(ctx context.Context, id int) error {
	query := `UPDATE products SET popularity = popularity + 1 WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
