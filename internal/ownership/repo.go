package ownership

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository handles ownership-record persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to ownership-record operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows record listings.
type ListFilter struct {
	ParcelID           *uuid.UUID
	OwnerID            *uuid.UUID
	VerificationStatus *enums.VerificationStatus
	CurrentOnly        bool
}

// Create persists a new ownership record.
func (r *Repository) Create(ctx context.Context, record *models.OwnershipRecord) (*models.OwnershipRecord, error) {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// CreateWithTx persists a record inside the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, record *models.OwnershipRecord) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(record).Error
}

// FindByID loads a record with its owner and parcel.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.OwnershipRecord, error) {
	var record models.OwnershipRecord
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Parcel").
		First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByIDWithTx re-loads a record inside the transaction so transfer decisions
// see committed state only.
func (r *Repository) FindByIDWithTx(tx *gorm.DB, id uuid.UUID) (*models.OwnershipRecord, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var record models.OwnershipRecord
	if err := tx.First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns records matching the filter, newest acquisition first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.OwnershipRecord, error) {
	query := r.db.WithContext(ctx).
		Model(&models.OwnershipRecord{}).
		Preload("Owner").
		Preload("Parcel")

	if filter.ParcelID != nil {
		query = query.Where("parcel_id = ?", *filter.ParcelID)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.VerificationStatus != nil {
		query = query.Where("verification_status = ?", *filter.VerificationStatus)
	}
	if filter.CurrentOnly {
		query = query.Where("is_current_owner = ?", true)
	}

	var records []models.OwnershipRecord
	if err := query.Order("acquisition_date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CurrentByParcel returns the parcel's current records, newest acquisition first.
func (r *Repository) CurrentByParcel(ctx context.Context, parcelID uuid.UUID) ([]models.OwnershipRecord, error) {
	return r.List(ctx, ListFilter{ParcelID: &parcelID, CurrentOnly: true})
}

// CurrentByOwner returns an owner's current records with parcels preloaded.
func (r *Repository) CurrentByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.OwnershipRecord, error) {
	return r.List(ctx, ListFilter{OwnerID: &ownerID, CurrentOnly: true})
}

// OwnedParcels returns the distinct parcels joined through an owner's current records.
func (r *Repository) OwnedParcels(ctx context.Context, ownerID uuid.UUID) ([]models.LandParcel, error) {
	var parcels []models.LandParcel
	err := r.db.WithContext(ctx).
		Model(&models.LandParcel{}).
		Distinct("land_parcels.*").
		Joins("JOIN ownership_records ON ownership_records.parcel_id = land_parcels.id").
		Where("ownership_records.owner_id = ? AND ownership_records.is_current_owner = ?", ownerID, true).
		Find(&parcels).Error
	if err != nil {
		return nil, err
	}
	return parcels, nil
}

// SumCurrentPercentage totals the current ownership percentages on a parcel,
// optionally excluding one record.
func (r *Repository) SumCurrentPercentage(ctx context.Context, parcelID uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error) {
	return sumCurrentPercentage(r.db.WithContext(ctx), parcelID, excludeID)
}

// SumCurrentPercentageWithTx is the transactional variant used during transfer.
func (r *Repository) SumCurrentPercentageWithTx(tx *gorm.DB, parcelID uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error) {
	if tx == nil {
		return decimal.Zero, gorm.ErrInvalidTransaction
	}
	return sumCurrentPercentage(tx, parcelID, excludeID)
}

func sumCurrentPercentage(db *gorm.DB, parcelID uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error) {
	query := db.
		Model(&models.OwnershipRecord{}).
		Where("parcel_id = ? AND is_current_owner = ?", parcelID, true)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var rows []models.OwnershipRecord
	if err := query.Select("ownership_percentage").Find(&rows).Error; err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.OwnershipPercentage)
	}
	return total, nil
}

// Update saves the provided record.
func (r *Repository) Update(ctx context.Context, record *models.OwnershipRecord) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}
	return r.db.WithContext(ctx).Save(record).Error
}

// UpdateWithTx persists the record using the provided transaction.
func (r *Repository) UpdateWithTx(tx *gorm.DB, record *models.OwnershipRecord) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if record == nil {
		return fmt.Errorf("record is required")
	}
	return tx.Save(record).Error
}

// Delete removes a record by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.OwnershipRecord{}, "id = ?", id).Error
}
