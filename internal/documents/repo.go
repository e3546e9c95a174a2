package documents

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgpagination "github.com/sadmanhossain/urbanland-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository handles document persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to document operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows document listings.
type ListFilter struct {
	OwnershipRecordID *uuid.UUID
	ParcelID          *uuid.UUID
	DocType           *enums.DocumentType
	IsVerified        *bool
}

type listQuery struct {
	filter ListFilter
	limit  int
	cursor *pkgpagination.Cursor
}

// Create persists a new document row.
func (r *Repository) Create(ctx context.Context, document *models.Document) (*models.Document, error) {
	if err := r.db.WithContext(ctx).Create(document).Error; err != nil {
		return nil, err
	}
	return document, nil
}

// FindByID loads a document by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	var document models.Document
	if err := r.db.WithContext(ctx).First(&document, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

// List returns documents matching the filter, newest upload first, using
// cursor pagination on (uploaded_at, id).
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Document, error) {
	query := r.db.WithContext(ctx).Model(&models.Document{})

	if opts.filter.OwnershipRecordID != nil {
		query = query.Where("ownership_record_id = ?", *opts.filter.OwnershipRecordID)
	}
	if opts.filter.ParcelID != nil {
		query = query.Where("parcel_id = ?", *opts.filter.ParcelID)
	}
	if opts.filter.DocType != nil {
		query = query.Where("doc_type = ?", *opts.filter.DocType)
	}
	if opts.filter.IsVerified != nil {
		query = query.Where("is_verified = ?", *opts.filter.IsVerified)
	}

	if opts.cursor != nil {
		query = query.Where("(uploaded_at < ?) OR (uploaded_at = ? AND id < ?)", opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID)
	}

	query = query.Order("uploaded_at DESC").Order("id DESC").Limit(opts.limit)

	var documents []models.Document
	if err := query.Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

// Update saves the provided document.
func (r *Repository) Update(ctx context.Context, document *models.Document) error {
	if document == nil {
		return fmt.Errorf("document is required")
	}
	return r.db.WithContext(ctx).Save(document).Error
}

// Delete removes a document by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Document{}, "id = ?", id).Error
}
