package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/types"
	"gorm.io/gorm"
)

type applicationsRepository interface {
	Create(ctx context.Context, application *models.Application) (*models.Application, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	List(ctx context.Context, filter ListFilter) ([]models.Application, error)
	Update(ctx context.Context, application *models.Application) error
	Delete(ctx context.Context, id uuid.UUID) error
	CreateApproval(ctx context.Context, approval *models.Approval) (*models.Approval, error)
	ListApprovals(ctx context.Context, applicationID uuid.UUID) ([]models.Approval, error)
}

type usersDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type parcelsDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service exposes land-use application operations.
type Service interface {
	List(ctx context.Context, actor types.Actor, filter ListFilter) ([]ApplicationDTO, error)
	Get(ctx context.Context, actor types.Actor, id uuid.UUID) (*ApplicationDTO, error)
	Create(ctx context.Context, actor types.Actor, input CreateApplicationInput) (*ApplicationDTO, error)
	Update(ctx context.Context, actor types.Actor, id uuid.UUID, input UpdateApplicationInput) (*ApplicationDTO, error)
	Delete(ctx context.Context, actor types.Actor, id uuid.UUID) error
	Approve(ctx context.Context, actor types.Actor, applicationID uuid.UUID, input CreateApprovalInput) (*ApprovalDTO, error)
	Approvals(ctx context.Context, actor types.Actor, applicationID uuid.UUID) ([]ApprovalDTO, error)
}

type service struct {
	repo    applicationsRepository
	users   usersDirectory
	parcels parcelsDirectory
}

// NewService builds an applications service with the provided collaborators.
func NewService(repo applicationsRepository, users usersDirectory, parcels parcelsDirectory) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("applications repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("users directory required")
	}
	if parcels == nil {
		return nil, fmt.Errorf("parcels directory required")
	}
	return &service{repo: repo, users: users, parcels: parcels}, nil
}

// List returns applications. Owners only see the ones they filed themselves.
func (s *service) List(ctx context.Context, actor types.Actor, filter ListFilter) ([]ApplicationDTO, error) {
	if !actor.CanReadAll() {
		filter.ApplicantID = &actor.UserID
	}
	applications, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list applications")
	}

	out := make([]ApplicationDTO, 0, len(applications))
	for i := range applications {
		out = append(out, *toApplicationDTO(&applications[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, actor types.Actor, id uuid.UUID) (*ApplicationDTO, error) {
	application, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanReadAll() && application.ApplicantID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
	}
	return toApplicationDTO(application), nil
}

func (s *service) Create(ctx context.Context, actor types.Actor, input CreateApplicationInput) (*ApplicationDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may file applications")
	}
	if !input.ApplicationType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid application_type")
	}

	applicantID := actor.UserID
	if input.ApplicantID != nil {
		applicantID = *input.ApplicantID
	}
	if _, err := s.users.FindByID(ctx, applicantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "applicant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load applicant")
	}

	exists, err := s.parcels.Exists(ctx, input.ParcelID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up parcel")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "land parcel not found")
	}

	application := &models.Application{
		ApplicantID:     applicantID,
		ParcelID:        input.ParcelID,
		ApplicationType: input.ApplicationType,
		Status:          "pending",
	}
	if input.Status != nil && strings.TrimSpace(*input.Status) != "" {
		application.Status = strings.ToLower(strings.TrimSpace(*input.Status))
	}

	created, err := s.repo.Create(ctx, application)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create application")
	}
	return toApplicationDTO(created), nil
}

func (s *service) Update(ctx context.Context, actor types.Actor, id uuid.UUID, input UpdateApplicationInput) (*ApplicationDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may modify applications")
	}
	application, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ApplicationType != nil {
		if !input.ApplicationType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid application_type")
		}
		application.ApplicationType = *input.ApplicationType
	}
	if input.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*input.Status))
		if status == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "status cannot be blank")
		}
		application.Status = status
	}

	if err := s.repo.Update(ctx, application); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update application")
	}
	return toApplicationDTO(application), nil
}

func (s *service) Delete(ctx context.Context, actor types.Actor, id uuid.UUID) error {
	if !actor.CanReadAll() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may delete applications")
	}
	if _, err := s.findApplication(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete application")
	}
	return nil
}

// Approve records the acting staff member's decision on an application.
func (s *service) Approve(ctx context.Context, actor types.Actor, applicationID uuid.UUID, input CreateApprovalInput) (*ApprovalDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may review applications")
	}
	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status is required")
	}
	application, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	approval := &models.Approval{
		ApplicationID: application.ID,
		ReviewerID:    actor.UserID,
		Status:        status,
		Comments:      input.Comments,
	}
	created, err := s.repo.CreateApproval(ctx, approval)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create approval")
	}

	// The application mirrors the latest decision.
	application.Status = status
	if err := s.repo.Update(ctx, application); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update application status")
	}
	return toApprovalDTO(created), nil
}

func (s *service) Approvals(ctx context.Context, actor types.Actor, applicationID uuid.UUID) ([]ApprovalDTO, error) {
	application, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !actor.CanReadAll() && application.ApplicantID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
	}
	approvals, err := s.repo.ListApprovals(ctx, applicationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list approvals")
	}

	out := make([]ApprovalDTO, 0, len(approvals))
	for i := range approvals {
		out = append(out, *toApprovalDTO(&approvals[i]))
	}
	return out, nil
}

func (s *service) findApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	application, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load application")
	}
	return application, nil
}
