package userRepo

import (
	"context"

	"stayledger/models"
)

// UserRepository defines methods for tenant data access.
type UserRepository interface {
	// GetByID retrieves a tenant by identity number.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a tenant by email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetAll retrieves all tenants.
	GetAll(ctx context.Context) ([]models.User, error)
	// Create inserts a new tenant record.
	Create(ctx context.Context, user *models.User) error
}
