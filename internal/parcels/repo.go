package parcels

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository handles land-parcel persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to parcel operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows parcel listings. Search matches the identifying text
// columns; OwnerID and OwnerName reach through current ownership records.
type ListFilter struct {
	Status              *enums.ParcelStatus
	LandUseZone         *enums.LandUseZone
	DevelopmentStatus   *enums.DevelopmentStatus
	IsActive            *bool
	RegistrationDateGTE *time.Time
	RegistrationDateLTE *time.Time
	MarketValueGTE      *decimal.Decimal
	MarketValueLTE      *decimal.Decimal
	AreaGTE             *float64
	AreaLTE             *float64
	Search              string
	OwnerID             *uuid.UUID
	OwnerName           string
	Ordering            string
}

// orderings whitelists the client-supplied sort keys.
var orderings = map[string]string{
	"created_at":            "land_parcels.created_at ASC",
	"-created_at":           "land_parcels.created_at DESC",
	"area":                  "land_parcels.area ASC",
	"-area":                 "land_parcels.area DESC",
	"registration_date":     "land_parcels.registration_date ASC",
	"-registration_date":    "land_parcels.registration_date DESC",
	"current_market_value":  "land_parcels.current_market_value ASC",
	"-current_market_value": "land_parcels.current_market_value DESC",
	"cadastral_number":      "land_parcels.cadastral_number ASC",
	"-cadastral_number":     "land_parcels.cadastral_number DESC",
}

// IsValidOrdering reports whether the sort key is allowed.
func IsValidOrdering(key string) bool {
	_, ok := orderings[key]
	return ok
}

var searchColumns = []string{
	"cadastral_number",
	"registration_number",
	"title_deed_number",
	"survey_number",
	"block_number",
	"sector_number",
	"mouza_name",
	"location",
}

// Create persists a new parcel.
func (r *Repository) Create(ctx context.Context, parcel *models.LandParcel) (*models.LandParcel, error) {
	if err := r.db.WithContext(ctx).Create(parcel).Error; err != nil {
		return nil, err
	}
	return parcel, nil
}

// FindByID loads a parcel by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.LandParcel, error) {
	var parcel models.LandParcel
	if err := r.db.WithContext(ctx).First(&parcel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &parcel, nil
}

// List returns parcels matching the filter.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.LandParcel, error) {
	query := r.db.WithContext(ctx).Model(&models.LandParcel{})

	if filter.Status != nil {
		query = query.Where("land_parcels.status = ?", *filter.Status)
	}
	if filter.LandUseZone != nil {
		query = query.Where("land_parcels.land_use_zone = ?", *filter.LandUseZone)
	}
	if filter.DevelopmentStatus != nil {
		query = query.Where("land_parcels.development_status = ?", *filter.DevelopmentStatus)
	}
	if filter.IsActive != nil {
		query = query.Where("land_parcels.is_active = ?", *filter.IsActive)
	}
	if filter.RegistrationDateGTE != nil {
		query = query.Where("land_parcels.registration_date >= ?", *filter.RegistrationDateGTE)
	}
	if filter.RegistrationDateLTE != nil {
		query = query.Where("land_parcels.registration_date <= ?", *filter.RegistrationDateLTE)
	}
	if filter.MarketValueGTE != nil {
		query = query.Where("land_parcels.current_market_value >= ?", *filter.MarketValueGTE)
	}
	if filter.MarketValueLTE != nil {
		query = query.Where("land_parcels.current_market_value <= ?", *filter.MarketValueLTE)
	}
	if filter.AreaGTE != nil {
		query = query.Where("land_parcels.area >= ?", *filter.AreaGTE)
	}
	if filter.AreaLTE != nil {
		query = query.Where("land_parcels.area <= ?", *filter.AreaLTE)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		clauses := make([]string, 0, len(searchColumns))
		args := make([]any, 0, len(searchColumns))
		for _, column := range searchColumns {
			clauses = append(clauses, fmt.Sprintf("LOWER(land_parcels.%s) LIKE ?", column))
			args = append(args, pattern)
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}

	if filter.OwnerID != nil {
		query = query.
			Joins("JOIN ownership_records ON ownership_records.parcel_id = land_parcels.id").
			Where("ownership_records.owner_id = ? AND ownership_records.is_current_owner = ?", *filter.OwnerID, true).
			Distinct("land_parcels.*")
	} else if name := strings.TrimSpace(filter.OwnerName); name != "" {
		pattern := "%" + strings.ToLower(name) + "%"
		query = query.
			Joins("JOIN ownership_records ON ownership_records.parcel_id = land_parcels.id").
			Joins("JOIN owner_profiles ON owner_profiles.id = ownership_records.owner_id").
			Where("ownership_records.is_current_owner = ?", true).
			Where("LOWER(owner_profiles.first_name) LIKE ? OR LOWER(owner_profiles.last_name) LIKE ?", pattern, pattern).
			Distinct("land_parcels.*")
	}

	order := "land_parcels.created_at DESC"
	if clause, ok := orderings[filter.Ordering]; ok {
		order = clause
	}

	var parcels []models.LandParcel
	if err := query.Order(order).Find(&parcels).Error; err != nil {
		return nil, err
	}
	return parcels, nil
}

// Exists reports whether a parcel with the id is present.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LandParcel{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// Stats aggregates parcel counts, value, and area for the registry.
type Stats struct {
	Total      int64
	Active     int64
	Inactive   int64
	Pending    int64
	TotalValue decimal.Decimal
	TotalArea  float64
}

// AggregateStats computes the registry-wide parcel statistics.
func (r *Repository) AggregateStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{TotalValue: decimal.Zero}

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.LandParcel{})
	}
	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", enums.ParcelStatusActive).Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", enums.ParcelStatusInactive).Count(&stats.Inactive).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", enums.ParcelStatusPending).Count(&stats.Pending).Error; err != nil {
		return nil, err
	}

	var totals struct {
		Value decimal.NullDecimal
		Area  *float64
	}
	if err := base().
		Select("SUM(current_market_value) AS value, SUM(area) AS area").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	if totals.Value.Valid {
		stats.TotalValue = totals.Value.Decimal
	}
	if totals.Area != nil {
		stats.TotalArea = *totals.Area
	}
	return stats, nil
}

// SumMarketValue totals current_market_value across all parcels, null as zero.
func (r *Repository) SumMarketValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.LandParcel{}).
		Select("SUM(current_market_value)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// CountByStatus returns the number of parcels in the given status.
func (r *Repository) CountByStatus(ctx context.Context, status enums.ParcelStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LandParcel{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// Count returns the total number of parcels.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LandParcel{}).Count(&count).Error
	return count, err
}

// Update saves the provided parcel.
func (r *Repository) Update(ctx context.Context, parcel *models.LandParcel) error {
	if parcel == nil {
		return fmt.Errorf("parcel is required")
	}
	return r.db.WithContext(ctx).Save(parcel).Error
}

// Delete removes a parcel by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.LandParcel{}, "id = ?", id).Error
}
