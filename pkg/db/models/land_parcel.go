package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LandParcel is the registry unit of land. Ownership is never stored on the
// parcel itself; it is derived from current OwnershipRecord rows.
type LandParcel struct {
	ID                 uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	CadastralNumber    string                  `gorm:"column:cadastral_number;type:text;not null;uniqueIndex"`
	Location           string                  `gorm:"column:location;not null"`
	Area               float64                 `gorm:"column:area;not null"`
	LandUseType        string                  `gorm:"column:land_use_type"`
	Status             enums.ParcelStatus      `gorm:"column:status;type:text;not null;default:'active'"`
	BoundaryNorth      *string                 `gorm:"column:boundary_north"`
	BoundaryEast       *string                 `gorm:"column:boundary_east"`
	BoundaryWest       *string                 `gorm:"column:boundary_west"`
	BoundarySouth      *string                 `gorm:"column:boundary_south"`
	SurveyNumber       *string                 `gorm:"column:survey_number"`
	BlockNumber        *string                 `gorm:"column:block_number"`
	SectorNumber       *string                 `gorm:"column:sector_number"`
	MouzaName          *string                 `gorm:"column:mouza_name"`
	LandUseZone        *enums.LandUseZone      `gorm:"column:land_use_zone;type:text"`
	RegistrationDate   *time.Time              `gorm:"column:registration_date"`
	RegistrationNumber *string                 `gorm:"column:registration_number;uniqueIndex"`
	TitleDeedNumber    *string                 `gorm:"column:title_deed_number"`
	CurrentMarketValue *decimal.Decimal        `gorm:"column:current_market_value;type:numeric(14,2)"`
	AnnualTaxValue     *decimal.Decimal        `gorm:"column:annual_tax_value;type:numeric(14,2)"`
	DevelopmentStatus  enums.DevelopmentStatus `gorm:"column:development_status;type:text;not null;default:'Undeveloped'"`
	HasStructures      bool                    `gorm:"column:has_structures;not null;default:false"`
	IsActive           bool                    `gorm:"column:is_active;not null;default:true"`
	CreatedAt          time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *LandParcel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
