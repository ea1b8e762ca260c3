package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"billing/internal/apperrors"
	"billing/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user, generating its public ID when absent.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by their email.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "user", ID: email}
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByUserID retrieves a user by their public identifier.
func (r *GORMUserRepository) GetByUserID(userID string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "user", ID: userID}
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", userID, err)
	}
	return &user, nil
}

// GetAll retrieves all users.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// Delete deletes a user by their public identifier.
func (r *GORMUserRepository) Delete(userID string) error {
	res := r.db.Delete(&models.User{}, "user_id = ?", userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return &apperrors.NotFoundError{Resource: "user", ID: userID}
	}
	return nil
}
