package documents

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgpagination "github.com/sadmanhossain/urbanland-backend/pkg/pagination"
)

// ListParams combines the column filters with cursor pagination inputs.
type ListParams struct {
	ListFilter
	pkgpagination.Params
}

// ListResult is one page of documents plus the cursor for the next page.
// Cursor is empty on the last page.
type ListResult struct {
	Items  []DocumentDTO `json:"items"`
	Cursor string        `json:"cursor"`
}

// DocumentDTO is the API shape of a registry document. FileURL carries a
// freshly signed download link.
type DocumentDTO struct {
	ID                uuid.UUID          `json:"id"`
	OwnershipRecordID *uuid.UUID         `json:"ownership_record_id,omitempty"`
	ParcelID          *uuid.UUID         `json:"parcel_id,omitempty"`
	DocType           enums.DocumentType `json:"doc_type"`
	DocumentNumber    *string            `json:"document_number,omitempty"`
	DocumentDate      *time.Time         `json:"document_date,omitempty"`
	IssuingAuthority  *string            `json:"issuing_authority,omitempty"`
	StorageKey        string             `json:"storage_key"`
	FileURL           *string            `json:"file_url,omitempty"`
	FileSize          *int64             `json:"file_size,omitempty"`
	FileType          *string            `json:"file_type,omitempty"`
	Description       *string            `json:"description,omitempty"`
	UploadedByID      *uuid.UUID         `json:"uploaded_by_id,omitempty"`
	IsVerified        bool               `json:"is_verified"`
	VerifiedByID      *uuid.UUID         `json:"verified_by_id,omitempty"`
	VerificationDate  *time.Time         `json:"verification_date,omitempty"`
	UploadedAt        time.Time          `json:"uploaded_at"`
}

// CreateDocumentInput captures a new document referencing an ownership record
// or a parcel.
type CreateDocumentInput struct {
	OwnershipRecordID *uuid.UUID
	ParcelID          *uuid.UUID
	DocType           enums.DocumentType
	DocumentNumber    *string
	DocumentDate      *time.Time
	IssuingAuthority  *string
	StorageKey        string
	FileSize          *int64
	FileType          *string
	Description       *string
}

// UpdateDocumentInput carries the mutable metadata fields.
type UpdateDocumentInput struct {
	DocType          *enums.DocumentType
	DocumentNumber   *string
	DocumentDate     *time.Time
	IssuingAuthority *string
	Description      *string
}

func toDocumentDTO(document *models.Document, fileURL *string) *DocumentDTO {
	if document == nil {
		return nil
	}
	return &DocumentDTO{
		ID:                document.ID,
		OwnershipRecordID: document.OwnershipRecordID,
		ParcelID:          document.ParcelID,
		DocType:           document.DocType,
		DocumentNumber:    document.DocumentNumber,
		DocumentDate:      document.DocumentDate,
		IssuingAuthority:  document.IssuingAuthority,
		StorageKey:        document.StorageKey,
		FileURL:           fileURL,
		FileSize:          document.FileSize,
		FileType:          document.FileType,
		Description:       document.Description,
		UploadedByID:      document.UploadedByID,
		IsVerified:        document.IsVerified,
		VerifiedByID:      document.VerifiedByID,
		VerificationDate:  document.VerificationDate,
		UploadedAt:        document.UploadedAt,
	}
}
