package owners

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// OwnerDTO is the API shape of an owner profile.
type OwnerDTO struct {
	ID                uuid.UUID         `json:"id"`
	UserID            uuid.UUID         `json:"user_id"`
	Username          string            `json:"username,omitempty"`
	NationalID        string            `json:"national_id"`
	FirstName         string            `json:"first_name"`
	MiddleName        *string           `json:"middle_name,omitempty"`
	LastName          string            `json:"last_name"`
	FullName          string            `json:"full_name"`
	DateOfBirth       *time.Time        `json:"date_of_birth,omitempty"`
	Gender            *enums.Gender     `json:"gender,omitempty"`
	ProfilePictureURL *string           `json:"profile_picture_url,omitempty"`
	IDCardFrontURL    *string           `json:"id_card_front_url,omitempty"`
	IDCardBackURL     *string           `json:"id_card_back_url,omitempty"`
	SignatureURL      *string           `json:"signature_url,omitempty"`
	ContactPhone      *string           `json:"contact_phone,omitempty"`
	ContactEmail      *string           `json:"contact_email,omitempty"`
	PermanentAddress  *string           `json:"permanent_address,omitempty"`
	CurrentAddress    *string           `json:"current_address,omitempty"`
	OwnerType         enums.OwnerType   `json:"owner_type"`
	RegistrationNo    *string           `json:"registration_number,omitempty"`
	TaxID             *string           `json:"tax_id,omitempty"`
	ContactPerson     *string           `json:"contact_person,omitempty"`
	Notes             *string           `json:"notes,omitempty"`
	Status            enums.OwnerStatus `json:"status"`
	OwnedLands        []OwnedLandDTO    `json:"owned_lands"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// OwnedLandDTO summarizes a parcel the owner currently holds.
type OwnedLandDTO struct {
	ParcelID            uuid.UUID             `json:"parcel_id"`
	CadastralNumber     string                `json:"cadastral_number"`
	Location            string                `json:"location"`
	Area                float64               `json:"area"`
	OwnershipType       enums.OwnershipType   `json:"ownership_type"`
	OwnershipPercentage decimal.Decimal       `json:"ownership_percentage"`
	AcquisitionType     enums.AcquisitionType `json:"acquisition_type"`
	AcquisitionDate     time.Time             `json:"acquisition_date"`
}

// CreateOwnerInput captures a new owner profile.
type CreateOwnerInput struct {
	UserID           uuid.UUID
	NationalID       string
	FirstName        string
	MiddleName       *string
	LastName         string
	DateOfBirth      *time.Time
	Gender           *enums.Gender
	ProfilePicture   *string
	IDCardFront      *string
	IDCardBack       *string
	Signature        *string
	ContactPhone     *string
	ContactEmail     *string
	PermanentAddress *string
	CurrentAddress   *string
	OwnerType        enums.OwnerType
	RegistrationNo   *string
	TaxID            *string
	ContactPerson    *string
	Notes            *string
}

// UpdateOwnerInput carries the mutable profile fields.
type UpdateOwnerInput struct {
	FirstName        *string
	MiddleName       *string
	LastName         *string
	DateOfBirth      *time.Time
	Gender           *enums.Gender
	ProfilePicture   *string
	IDCardFront      *string
	IDCardBack       *string
	Signature        *string
	ContactPhone     *string
	ContactEmail     *string
	PermanentAddress *string
	CurrentAddress   *string
	OwnerType        *enums.OwnerType
	RegistrationNo   *string
	TaxID            *string
	ContactPerson    *string
	Notes            *string
	Status           *enums.OwnerStatus
}

func toOwnedLandDTOs(records []models.OwnershipRecord) []OwnedLandDTO {
	lands := make([]OwnedLandDTO, 0, len(records))
	for i := range records {
		record := &records[i]
		land := OwnedLandDTO{
			ParcelID:            record.ParcelID,
			OwnershipType:       record.OwnershipType,
			OwnershipPercentage: record.OwnershipPercentage,
			AcquisitionType:     record.AcquisitionType,
			AcquisitionDate:     record.AcquisitionDate,
		}
		if record.Parcel != nil {
			land.CadastralNumber = record.Parcel.CadastralNumber
			land.Location = record.Parcel.Location
			land.Area = record.Parcel.Area
		}
		lands = append(lands, land)
	}
	return lands
}
