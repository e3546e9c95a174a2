package parcels

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// ParcelDTO is the API shape of a land parcel.
type ParcelDTO struct {
	ID                 uuid.UUID               `json:"id"`
	CadastralNumber    string                  `json:"cadastral_number"`
	Location           string                  `json:"location"`
	Area               float64                 `json:"area"`
	LandUseType        string                  `json:"land_use_type"`
	Status             enums.ParcelStatus      `json:"status"`
	BoundaryNorth      *string                 `json:"boundary_north,omitempty"`
	BoundaryEast       *string                 `json:"boundary_east,omitempty"`
	BoundaryWest       *string                 `json:"boundary_west,omitempty"`
	BoundarySouth      *string                 `json:"boundary_south,omitempty"`
	SurveyNumber       *string                 `json:"survey_number,omitempty"`
	BlockNumber        *string                 `json:"block_number,omitempty"`
	SectorNumber       *string                 `json:"sector_number,omitempty"`
	MouzaName          *string                 `json:"mouza_name,omitempty"`
	LandUseZone        *enums.LandUseZone      `json:"land_use_zone,omitempty"`
	RegistrationDate   *time.Time              `json:"registration_date,omitempty"`
	RegistrationNumber *string                 `json:"registration_number,omitempty"`
	TitleDeedNumber    *string                 `json:"title_deed_number,omitempty"`
	CurrentMarketValue *decimal.Decimal        `json:"current_market_value,omitempty"`
	AnnualTaxValue     *decimal.Decimal        `json:"annual_tax_value,omitempty"`
	DevelopmentStatus  enums.DevelopmentStatus `json:"development_status"`
	HasStructures      bool                    `json:"has_structures"`
	IsActive           bool                    `json:"is_active"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

// StatsDTO is the aggregate payload for /parcels/stats.
type StatsDTO struct {
	TotalParcels    int64           `json:"total_parcels"`
	ActiveParcels   int64           `json:"active_parcels"`
	InactiveParcels int64           `json:"inactive_parcels"`
	PendingParcels  int64           `json:"pending_parcels"`
	TotalValue      decimal.Decimal `json:"total_value"`
	TotalArea       float64         `json:"total_area"`
}

// CreateParcelInput captures a new parcel registration.
type CreateParcelInput struct {
	CadastralNumber    string
	Location           string
	Area               float64
	LandUseType        string
	Status             enums.ParcelStatus
	BoundaryNorth      *string
	BoundaryEast       *string
	BoundaryWest       *string
	BoundarySouth      *string
	SurveyNumber       *string
	BlockNumber        *string
	SectorNumber       *string
	MouzaName          *string
	LandUseZone        *enums.LandUseZone
	RegistrationDate   *time.Time
	RegistrationNumber *string
	TitleDeedNumber    *string
	CurrentMarketValue *decimal.Decimal
	AnnualTaxValue     *decimal.Decimal
	DevelopmentStatus  enums.DevelopmentStatus
	HasStructures      bool
}

// UpdateParcelInput carries the mutable parcel fields.
type UpdateParcelInput struct {
	Location           *string
	Area               *float64
	LandUseType        *string
	Status             *enums.ParcelStatus
	BoundaryNorth      *string
	BoundaryEast       *string
	BoundaryWest       *string
	BoundarySouth      *string
	SurveyNumber       *string
	BlockNumber        *string
	SectorNumber       *string
	MouzaName          *string
	LandUseZone        *enums.LandUseZone
	RegistrationDate   *time.Time
	RegistrationNumber *string
	TitleDeedNumber    *string
	CurrentMarketValue *decimal.Decimal
	AnnualTaxValue     *decimal.Decimal
	DevelopmentStatus  *enums.DevelopmentStatus
	HasStructures      *bool
	IsActive           *bool
}

// ToDTO converts a parcel model to its API shape.
func ToDTO(parcel *models.LandParcel) *ParcelDTO {
	if parcel == nil {
		return nil
	}
	return &ParcelDTO{
		ID:                 parcel.ID,
		CadastralNumber:    parcel.CadastralNumber,
		Location:           parcel.Location,
		Area:               parcel.Area,
		LandUseType:        parcel.LandUseType,
		Status:             parcel.Status,
		BoundaryNorth:      parcel.BoundaryNorth,
		BoundaryEast:       parcel.BoundaryEast,
		BoundaryWest:       parcel.BoundaryWest,
		BoundarySouth:      parcel.BoundarySouth,
		SurveyNumber:       parcel.SurveyNumber,
		BlockNumber:        parcel.BlockNumber,
		SectorNumber:       parcel.SectorNumber,
		MouzaName:          parcel.MouzaName,
		LandUseZone:        parcel.LandUseZone,
		RegistrationDate:   parcel.RegistrationDate,
		RegistrationNumber: parcel.RegistrationNumber,
		TitleDeedNumber:    parcel.TitleDeedNumber,
		CurrentMarketValue: parcel.CurrentMarketValue,
		AnnualTaxValue:     parcel.AnnualTaxValue,
		DevelopmentStatus:  parcel.DevelopmentStatus,
		HasStructures:      parcel.HasStructures,
		IsActive:           parcel.IsActive,
		CreatedAt:          parcel.CreatedAt,
		UpdatedAt:          parcel.UpdatedAt,
	}
}

// ToDTOs converts a parcel slice to API shapes.
func ToDTOs(parcels []models.LandParcel) []ParcelDTO {
	out := make([]ParcelDTO, 0, len(parcels))
	for i := range parcels {
		out = append(out, *ToDTO(&parcels[i]))
	}
	return out
}
