package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mluvul69-gif/linea-store/internal/entity"
)

var ErrAdminNotFound = errors.New("admin not found")

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db}
}

func (r *AdminRepository) GetAdminByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	query := `SELECT id, username, password_hash FROM admin WHERE username = ?`
	admin := &entity.Admin{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&admin.ID, &admin.Username, &admin.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	return admin, nil
}

// UpsertAdmin seeds the single admin account from configuration. The stored
// hash follows the configured one, so rotating ADMIN_PASSWORD_HASH takes
// effect on the next restart.
func (r *AdminRepository) UpsertAdmin(ctx context.Context, username, passwordHash string) error {
	query := `INSERT INTO admin (username, password_hash) VALUES (?, ?) ON DUPLICATE KEY UPDATE password_hash = VALUES(password_hash)`
	_, err := r.db.ExecContext(ctx, query, username, passwordHash)
	return err
}
