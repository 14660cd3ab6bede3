package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mluvul69-gif/linea-store/internal/entity"
	"github.com/mluvul69-gif/linea-store/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AdminRepo is the slice of the admin repository the service needs.
type AdminRepo interface {
	GetAdminByUsername(ctx context.Context, username string) (*entity.Admin, error)
}

type AdminService struct {
	adminRepo AdminRepo
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAdminService(adminRepo AdminRepo, jwtSecret string) *AdminService {
	return &AdminService{
		adminRepo: adminRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
	}
}

type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Login verifies the credentials and returns a signed admin token. Unknown
// usernames and wrong passwords share one failure path and one error.
func (s *AdminService) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.adminRepo.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			// Burn a comparison so unknown users cost the same as bad passwords.
			bcrypt.CompareHashAndPassword([]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"), []byte(password))
			return "", ErrInvalidCredentials
		}
		logger.Error().Err(err).Msg("Error loading admin account")
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := &AdminClaims{
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		logger.Error().Err(err).Msg("Error signing admin token")
		return "", err
	}

	return signed, nil
}

// TokenTTL is how long an issued admin token stays valid, exposed so the
// handler can align the cookie lifetime.
func (s *AdminService) TokenTTL() time.Duration {
	return s.tokenTTL
}
