package ownership

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// RecordDTO is the API shape of an ownership record.
type RecordDTO struct {
	ID                  uuid.UUID                `json:"id"`
	ParcelID            uuid.UUID                `json:"parcel_id"`
	CadastralNumber     string                   `json:"cadastral_number,omitempty"`
	OwnerID             uuid.UUID                `json:"owner_id"`
	OwnerName           string                   `json:"owner_name,omitempty"`
	OwnershipType       enums.OwnershipType      `json:"ownership_type"`
	OwnershipPercentage decimal.Decimal          `json:"ownership_percentage"`
	AcquisitionType     enums.AcquisitionType    `json:"acquisition_type"`
	AcquisitionDate     time.Time                `json:"acquisition_date"`
	AcquisitionValue    *decimal.Decimal         `json:"acquisition_value,omitempty"`
	DeedNumber          *string                  `json:"deed_number,omitempty"`
	DeedDate            *time.Time               `json:"deed_date,omitempty"`
	RegistrationOffice  *string                  `json:"registration_office,omitempty"`
	RegistrationNumber  *string                  `json:"registration_number,omitempty"`
	RegistrationDate    *time.Time               `json:"registration_date,omitempty"`
	StartDate           *time.Time               `json:"start_date,omitempty"`
	EndDate             *time.Time               `json:"end_date,omitempty"`
	LeaseAmount         *decimal.Decimal         `json:"lease_amount,omitempty"`
	MortgageAmount      *decimal.Decimal         `json:"mortgage_amount,omitempty"`
	MortgageeName       *string                  `json:"mortgagee_name,omitempty"`
	TransferDate        *time.Time               `json:"transfer_date,omitempty"`
	TransferType        *enums.TransferType      `json:"transfer_type,omitempty"`
	TransferToID        *uuid.UUID               `json:"transfer_to_id,omitempty"`
	VerificationStatus  enums.VerificationStatus `json:"verification_status"`
	VerifiedByID        *uuid.UUID               `json:"verified_by_id,omitempty"`
	VerificationDate    *time.Time               `json:"verification_date,omitempty"`
	VerificationNotes   *string                  `json:"verification_notes,omitempty"`
	IsCurrentOwner      bool                     `json:"is_current_owner"`
	HistoryNotes        *string                  `json:"history_notes,omitempty"`
	CreatedAt           time.Time                `json:"created_at"`
	UpdatedAt           time.Time                `json:"updated_at"`
}

// CurrentOwnerDTO is the derived view of who holds a parcel today.
type CurrentOwnerDTO struct {
	RecordID            uuid.UUID             `json:"record_id"`
	OwnerID             uuid.UUID             `json:"owner_id"`
	OwnerName           string                `json:"owner_name"`
	NationalID          string                `json:"national_id,omitempty"`
	OwnershipType       enums.OwnershipType   `json:"ownership_type"`
	OwnershipPercentage decimal.Decimal       `json:"ownership_percentage"`
	AcquisitionType     enums.AcquisitionType `json:"acquisition_type"`
	AcquisitionDate     time.Time             `json:"acquisition_date"`
}

// CreateRecordInput captures a new ownership record.
type CreateRecordInput struct {
	ParcelID            uuid.UUID
	OwnerID             uuid.UUID
	OwnershipType       enums.OwnershipType
	OwnershipPercentage decimal.Decimal
	AcquisitionType     enums.AcquisitionType
	AcquisitionDate     time.Time
	AcquisitionValue    *decimal.Decimal
	DeedNumber          *string
	DeedDate            *time.Time
	RegistrationOffice  *string
	RegistrationNumber  *string
	RegistrationDate    *time.Time
	StartDate           *time.Time
	EndDate             *time.Time
	LeaseAmount         *decimal.Decimal
	MortgageAmount      *decimal.Decimal
	MortgageeName       *string
	HistoryNotes        *string
}

// UpdateRecordInput carries the mutable legal fields; derived state
// (is_current_owner, verification) is managed by dedicated operations.
type UpdateRecordInput struct {
	OwnershipType      *enums.OwnershipType
	AcquisitionValue   *decimal.Decimal
	DeedNumber         *string
	DeedDate           *time.Time
	RegistrationOffice *string
	RegistrationNumber *string
	RegistrationDate   *time.Time
	StartDate          *time.Time
	EndDate            *time.Time
	LeaseAmount        *decimal.Decimal
	MortgageAmount     *decimal.Decimal
	MortgageeName      *string
	HistoryNotes       *string
}

// TransferInput describes an ownership transfer from an existing current record.
type TransferInput struct {
	NewOwnerID       uuid.UUID
	TransferType     enums.TransferType
	TransferDate     time.Time
	Percentage       *decimal.Decimal
	AcquisitionType  *enums.AcquisitionType
	AcquisitionValue *decimal.Decimal
	DeedNumber       *string
	HistoryNotes     *string
}

func toRecordDTO(record *models.OwnershipRecord) *RecordDTO {
	if record == nil {
		return nil
	}
	dto := &RecordDTO{
		ID:                  record.ID,
		ParcelID:            record.ParcelID,
		OwnerID:             record.OwnerID,
		OwnershipType:       record.OwnershipType,
		OwnershipPercentage: record.OwnershipPercentage,
		AcquisitionType:     record.AcquisitionType,
		AcquisitionDate:     record.AcquisitionDate,
		AcquisitionValue:    record.AcquisitionValue,
		DeedNumber:          record.DeedNumber,
		DeedDate:            record.DeedDate,
		RegistrationOffice:  record.RegistrationOffice,
		RegistrationNumber:  record.RegistrationNumber,
		RegistrationDate:    record.RegistrationDate,
		StartDate:           record.StartDate,
		EndDate:             record.EndDate,
		LeaseAmount:         record.LeaseAmount,
		MortgageAmount:      record.MortgageAmount,
		MortgageeName:       record.MortgageeName,
		TransferDate:        record.TransferDate,
		TransferType:        record.TransferType,
		TransferToID:        record.TransferToID,
		VerificationStatus:  record.VerificationStatus,
		VerifiedByID:        record.VerifiedByID,
		VerificationDate:    record.VerificationDate,
		VerificationNotes:   record.VerificationNotes,
		IsCurrentOwner:      record.IsCurrentOwner,
		HistoryNotes:        record.HistoryNotes,
		CreatedAt:           record.CreatedAt,
		UpdatedAt:           record.UpdatedAt,
	}
	if record.Parcel != nil {
		dto.CadastralNumber = record.Parcel.CadastralNumber
	}
	if record.Owner != nil {
		dto.OwnerName = record.Owner.FullName()
	}
	return dto
}

func toCurrentOwnerDTO(record *models.OwnershipRecord) CurrentOwnerDTO {
	dto := CurrentOwnerDTO{
		RecordID:            record.ID,
		OwnerID:             record.OwnerID,
		OwnershipType:       record.OwnershipType,
		OwnershipPercentage: record.OwnershipPercentage,
		AcquisitionType:     record.AcquisitionType,
		AcquisitionDate:     record.AcquisitionDate,
	}
	if record.Owner != nil {
		dto.OwnerName = record.Owner.FullName()
		dto.NationalID = record.Owner.NationalID
	}
	return dto
}
