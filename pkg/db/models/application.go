package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"gorm.io/gorm"
)

// Application is a land-use request filed by a user against a parcel.
type Application struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	ApplicantID     uuid.UUID             `gorm:"column:applicant_id;type:uuid;not null;index"`
	Applicant       *User                 `gorm:"foreignKey:ApplicantID"`
	ParcelID        uuid.UUID             `gorm:"column:parcel_id;type:uuid;not null;index"`
	Parcel          *LandParcel           `gorm:"foreignKey:ParcelID"`
	ApplicationType enums.ApplicationType `gorm:"column:application_type;type:text;not null"`
	SubmittedDate   time.Time             `gorm:"column:submitted_date;autoCreateTime"`
	Status          string                `gorm:"column:status;not null;default:'pending'"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Approval records a reviewer's decision on an application.
type Approval struct {
	ID            uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	ApplicationID uuid.UUID    `gorm:"column:application_id;type:uuid;not null;index"`
	Application   *Application `gorm:"foreignKey:ApplicationID"`
	ReviewerID    uuid.UUID    `gorm:"column:reviewer_id;type:uuid;not null"`
	Reviewer      *User        `gorm:"foreignKey:ReviewerID"`
	Status        string       `gorm:"column:status;not null;default:'pending'"`
	Comments      *string      `gorm:"column:comments"`
	Date          time.Time    `gorm:"column:date;autoCreateTime"`
}

func (a *Approval) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
