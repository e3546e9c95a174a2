package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OwnershipRecord ties an owner profile to a parcel for a period of time.
// A parcel's current owners are the rows with is_current_owner=true; older
// rows stay in place as history.
type OwnershipRecord struct {
	ID                  uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	ParcelID            uuid.UUID                `gorm:"column:parcel_id;type:uuid;not null;index:idx_records_parcel_current,priority:1"`
	Parcel              *LandParcel              `gorm:"foreignKey:ParcelID"`
	OwnerID             uuid.UUID                `gorm:"column:owner_id;type:uuid;not null;index:idx_records_owner_current,priority:1"`
	Owner               *OwnerProfile            `gorm:"foreignKey:OwnerID"`
	OwnershipType       enums.OwnershipType      `gorm:"column:ownership_type;type:text;not null;default:'Sole'"`
	OwnershipPercentage decimal.Decimal          `gorm:"column:ownership_percentage;type:numeric(5,2);not null"`
	AcquisitionType     enums.AcquisitionType    `gorm:"column:acquisition_type;type:text;not null"`
	AcquisitionDate     time.Time                `gorm:"column:acquisition_date;not null"`
	AcquisitionValue    *decimal.Decimal         `gorm:"column:acquisition_value;type:numeric(14,2)"`
	DeedNumber          *string                  `gorm:"column:deed_number"`
	DeedDate            *time.Time               `gorm:"column:deed_date"`
	RegistrationOffice  *string                  `gorm:"column:registration_office"`
	RegistrationNumber  *string                  `gorm:"column:registration_number"`
	RegistrationDate    *time.Time               `gorm:"column:registration_date"`
	StartDate           *time.Time               `gorm:"column:start_date"`
	EndDate             *time.Time               `gorm:"column:end_date"`
	LeaseAmount         *decimal.Decimal         `gorm:"column:lease_amount;type:numeric(14,2)"`
	MortgageAmount      *decimal.Decimal         `gorm:"column:mortgage_amount;type:numeric(14,2)"`
	MortgageeName       *string                  `gorm:"column:mortgagee_name"`
	TransferDate        *time.Time               `gorm:"column:transfer_date"`
	TransferType        *enums.TransferType      `gorm:"column:transfer_type;type:text"`
	TransferToID        *uuid.UUID               `gorm:"column:transfer_to_id;type:uuid"`
	TransferTo          *OwnerProfile            `gorm:"foreignKey:TransferToID"`
	VerificationStatus  enums.VerificationStatus `gorm:"column:verification_status;type:text;not null;default:'Pending'"`
	VerifiedByID        *uuid.UUID               `gorm:"column:verified_by_id;type:uuid"`
	VerificationDate    *time.Time               `gorm:"column:verification_date"`
	VerificationNotes   *string                  `gorm:"column:verification_notes"`
	IsCurrentOwner      bool                     `gorm:"column:is_current_owner;not null;default:true;index:idx_records_parcel_current,priority:2;index:idx_records_owner_current,priority:2"`
	CreatedByID         *uuid.UUID               `gorm:"column:created_by_id;type:uuid"`
	HistoryNotes        *string                  `gorm:"column:history_notes"`
	CreatedAt           time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

func (r *OwnershipRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
