package applications

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
)

// ApplicationDTO is the API shape of a land-use application.
type ApplicationDTO struct {
	ID              uuid.UUID             `json:"id"`
	ApplicantID     uuid.UUID             `json:"applicant_id"`
	ParcelID        uuid.UUID             `json:"parcel_id"`
	CadastralNumber *string               `json:"cadastral_number,omitempty"`
	ApplicationType enums.ApplicationType `json:"application_type"`
	SubmittedDate   time.Time             `json:"submitted_date"`
	Status          string                `json:"status"`
}

// ApprovalDTO is the API shape of a reviewer decision.
type ApprovalDTO struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	ReviewerID    uuid.UUID `json:"reviewer_id"`
	Status        string    `json:"status"`
	Comments      *string   `json:"comments,omitempty"`
	Date          time.Time `json:"date"`
}

// CreateApplicationInput captures a new application. ApplicantID defaults to
// the acting user when nil.
type CreateApplicationInput struct {
	ApplicantID     *uuid.UUID
	ParcelID        uuid.UUID
	ApplicationType enums.ApplicationType
	Status          *string
}

// UpdateApplicationInput carries the mutable application fields.
type UpdateApplicationInput struct {
	ApplicationType *enums.ApplicationType
	Status          *string
}

// CreateApprovalInput captures a reviewer decision for an application.
type CreateApprovalInput struct {
	Status   string
	Comments *string
}

func toApplicationDTO(application *models.Application) *ApplicationDTO {
	if application == nil {
		return nil
	}
	dto := &ApplicationDTO{
		ID:              application.ID,
		ApplicantID:     application.ApplicantID,
		ParcelID:        application.ParcelID,
		ApplicationType: application.ApplicationType,
		SubmittedDate:   application.SubmittedDate,
		Status:          application.Status,
	}
	if application.Parcel != nil {
		dto.CadastralNumber = &application.Parcel.CadastralNumber
	}
	return dto
}

func toApprovalDTO(approval *models.Approval) *ApprovalDTO {
	if approval == nil {
		return nil
	}
	return &ApprovalDTO{
		ID:            approval.ID,
		ApplicationID: approval.ApplicationID,
		ReviewerID:    approval.ReviewerID,
		Status:        approval.Status,
		Comments:      approval.Comments,
		Date:          approval.Date,
	}
}
