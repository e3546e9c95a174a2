package owners

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository handles owner-profile persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to owner-profile operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows profile listings.
type ListFilter struct {
	Status    *enums.OwnerStatus
	OwnerType *enums.OwnerType
}

// Create persists a new owner profile.
func (r *Repository) Create(ctx context.Context, profile *models.OwnerProfile) (*models.OwnerProfile, error) {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// FindByID loads a profile with its user account.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.OwnerProfile, error) {
	var profile models.OwnerProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByUserID loads the profile attached to a user account, if any.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.OwnerProfile, error) {
	var profile models.OwnerProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByUsername returns profiles whose account matches the exact username.
func (r *Repository) FindByUsername(ctx context.Context, username string) ([]models.OwnerProfile, error) {
	var profiles []models.OwnerProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = owner_profiles.user_id").
		Where("users.username = ?", username).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// List returns profiles matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.OwnerProfile, error) {
	query := r.db.WithContext(ctx).
		Model(&models.OwnerProfile{}).
		Preload("User")

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.OwnerType != nil {
		query = query.Where("owner_type = ?", *filter.OwnerType)
	}

	var profiles []models.OwnerProfile
	if err := query.Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// Recent returns the newest profiles up to limit.
func (r *Repository) Recent(ctx context.Context, limit int) ([]models.OwnerProfile, error) {
	var profiles []models.OwnerProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Exists reports whether a profile with the id is present.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OwnerProfile{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// ExistsForUser reports whether the user already holds a profile.
func (r *Repository) ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OwnerProfile{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

// Count returns the total number of profiles.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OwnerProfile{}).Count(&count).Error
	return count, err
}

// Update saves the provided profile.
func (r *Repository) Update(ctx context.Context, profile *models.OwnerProfile) error {
	if profile == nil {
		return fmt.Errorf("profile is required")
	}
	return r.db.WithContext(ctx).Save(profile).Error
}

// Delete removes a profile by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.OwnerProfile{}, "id = ?", id).Error
}
