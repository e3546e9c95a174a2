package applications

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository handles application and approval persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to application operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows application listings.
type ListFilter struct {
	ApplicantID     *uuid.UUID
	ParcelID        *uuid.UUID
	ApplicationType *enums.ApplicationType
	Status          *string
}

// Create persists a new application.
func (r *Repository) Create(ctx context.Context, application *models.Application) (*models.Application, error) {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		return nil, err
	}
	return application, nil
}

// FindByID loads an application with its parcel.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var application models.Application
	if err := r.db.WithContext(ctx).
		Preload("Parcel").
		First(&application, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// List returns applications matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Application, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Preload("Parcel")

	if filter.ApplicantID != nil {
		query = query.Where("applicant_id = ?", *filter.ApplicantID)
	}
	if filter.ParcelID != nil {
		query = query.Where("parcel_id = ?", *filter.ParcelID)
	}
	if filter.ApplicationType != nil {
		query = query.Where("application_type = ?", *filter.ApplicationType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var applications []models.Application
	if err := query.Order("submitted_date DESC").Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// Update saves the provided application.
func (r *Repository) Update(ctx context.Context, application *models.Application) error {
	if application == nil {
		return fmt.Errorf("application is required")
	}
	return r.db.WithContext(ctx).Save(application).Error
}

// Delete removes an application by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Application{}, "id = ?", id).Error
}

// CreateApproval persists a reviewer decision.
func (r *Repository) CreateApproval(ctx context.Context, approval *models.Approval) (*models.Approval, error) {
	if err := r.db.WithContext(ctx).Create(approval).Error; err != nil {
		return nil, err
	}
	return approval, nil
}

// ListApprovals returns the decisions recorded for an application, newest first.
func (r *Repository) ListApprovals(ctx context.Context, applicationID uuid.UUID) ([]models.Approval, error) {
	var approvals []models.Approval
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("date DESC").
		Find(&approvals).Error
	if err != nil {
		return nil, err
	}
	return approvals, nil
}
