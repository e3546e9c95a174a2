package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"gorm.io/gorm"
)

// OwnerProfile holds the registry identity of a land owner, linked one-to-one
// with a User account.
type OwnerProfile struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	UserID           uuid.UUID         `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	User             *User             `gorm:"foreignKey:UserID"`
	NationalID       string            `gorm:"column:national_id;type:text;not null;uniqueIndex"`
	FirstName        string            `gorm:"column:first_name;not null"`
	MiddleName       *string           `gorm:"column:middle_name"`
	LastName         string            `gorm:"column:last_name;not null"`
	DateOfBirth      *time.Time        `gorm:"column:date_of_birth"`
	Gender           *enums.Gender     `gorm:"column:gender;type:text"`
	ProfilePicture   *string           `gorm:"column:profile_picture"`
	IDCardFront      *string           `gorm:"column:id_card_front"`
	IDCardBack       *string           `gorm:"column:id_card_back"`
	Signature        *string           `gorm:"column:signature"`
	ContactPhone     *string           `gorm:"column:contact_phone"`
	ContactEmail     *string           `gorm:"column:contact_email"`
	PermanentAddress *string           `gorm:"column:permanent_address"`
	CurrentAddress   *string           `gorm:"column:current_address"`
	OwnerType        enums.OwnerType   `gorm:"column:owner_type;type:text;not null;default:'Individual'"`
	RegistrationNo   *string           `gorm:"column:registration_number"`
	TaxID            *string           `gorm:"column:tax_id"`
	ContactPerson    *string           `gorm:"column:contact_person"`
	Notes            *string           `gorm:"column:notes"`
	Status           enums.OwnerStatus `gorm:"column:status;type:text;not null;default:'Active'"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *OwnerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// FullName joins the name parts, skipping an absent middle name.
func (p *OwnerProfile) FullName() string {
	if p.MiddleName != nil && *p.MiddleName != "" {
		return p.FirstName + " " + *p.MiddleName + " " + p.LastName
	}
	return p.FirstName + " " + p.LastName
}
