package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"gorm.io/gorm"
)

// Document is an uploaded file tied to an ownership record or a parcel.
// At least one of the two references must be set.
type Document struct {
	ID                uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	OwnershipRecordID *uuid.UUID         `gorm:"column:ownership_record_id;type:uuid;index"`
	OwnershipRecord   *OwnershipRecord   `gorm:"foreignKey:OwnershipRecordID"`
	ParcelID          *uuid.UUID         `gorm:"column:parcel_id;type:uuid;index"`
	Parcel            *LandParcel        `gorm:"foreignKey:ParcelID"`
	DocType           enums.DocumentType `gorm:"column:doc_type;type:text;not null"`
	DocumentNumber    *string            `gorm:"column:document_number"`
	DocumentDate      *time.Time         `gorm:"column:document_date"`
	IssuingAuthority  *string            `gorm:"column:issuing_authority"`
	StorageKey        string             `gorm:"column:storage_key;not null"`
	FileURL           *string            `gorm:"column:file_url"`
	FileSize          *int64             `gorm:"column:file_size"`
	FileType          *string            `gorm:"column:file_type"`
	Description       *string            `gorm:"column:description"`
	UploadedByID      *uuid.UUID         `gorm:"column:uploaded_by_id;type:uuid"`
	IsVerified        bool               `gorm:"column:is_verified;not null;default:false"`
	VerifiedByID      *uuid.UUID         `gorm:"column:verified_by_id;type:uuid"`
	VerificationDate  *time.Time         `gorm:"column:verification_date"`
	UploadedAt        time.Time          `gorm:"column:uploaded_at;autoCreateTime"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
