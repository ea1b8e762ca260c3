package repositories

import "billing/internal/models"

// UserRepository defines the interface for operator-account data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByUserID(userID string) (*models.User, error)
	GetAll() ([]models.User, error)
	Delete(userID string) error
}
