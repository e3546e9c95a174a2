package parcels

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/types"
	"gorm.io/gorm"
)

type parcelsRepository interface {
	Create(ctx context.Context, parcel *models.LandParcel) (*models.LandParcel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.LandParcel, error)
	List(ctx context.Context, filter ListFilter) ([]models.LandParcel, error)
	AggregateStats(ctx context.Context) (*Stats, error)
	Update(ctx context.Context, parcel *models.LandParcel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type landsProvider interface {
	OwnedParcels(ctx context.Context, ownerID uuid.UUID) ([]models.LandParcel, error)
}

// Service exposes land-parcel operations.
type Service interface {
	List(ctx context.Context, actor types.Actor, filter ListFilter) ([]ParcelDTO, error)
	Get(ctx context.Context, actor types.Actor, id uuid.UUID) (*ParcelDTO, error)
	Create(ctx context.Context, actor types.Actor, input CreateParcelInput) (*ParcelDTO, error)
	Update(ctx context.Context, actor types.Actor, id uuid.UUID, input UpdateParcelInput) (*ParcelDTO, error)
	Delete(ctx context.Context, actor types.Actor, id uuid.UUID) error
	Stats(ctx context.Context) (*StatsDTO, error)
	MyParcels(ctx context.Context, actor types.Actor) ([]ParcelDTO, error)
}

type service struct {
	repo  parcelsRepository
	lands landsProvider
}

// NewService builds a parcels service with the provided collaborators.
func NewService(repo parcelsRepository, lands landsProvider) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("parcels repository required")
	}
	if lands == nil {
		return nil, fmt.Errorf("lands provider required")
	}
	return &service{repo: repo, lands: lands}, nil
}

func (s *service) List(ctx context.Context, actor types.Actor, filter ListFilter) ([]ParcelDTO, error) {
	if filter.Ordering != "" && !IsValidOrdering(filter.Ordering) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported ordering key")
	}
	parcels, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list parcels")
	}
	return ToDTOs(parcels), nil
}

func (s *service) Get(ctx context.Context, actor types.Actor, id uuid.UUID) (*ParcelDTO, error) {
	parcel, err := s.findParcel(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDTO(parcel), nil
}

func (s *service) Create(ctx context.Context, actor types.Actor, input CreateParcelInput) (*ParcelDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may register parcels")
	}
	if strings.TrimSpace(input.CadastralNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cadastral_number is required")
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location is required")
	}
	if input.Area <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "area must be positive")
	}

	parcel := &models.LandParcel{
		CadastralNumber:    input.CadastralNumber,
		Location:           input.Location,
		Area:               input.Area,
		LandUseType:        input.LandUseType,
		Status:             input.Status,
		BoundaryNorth:      input.BoundaryNorth,
		BoundaryEast:       input.BoundaryEast,
		BoundaryWest:       input.BoundaryWest,
		BoundarySouth:      input.BoundarySouth,
		SurveyNumber:       input.SurveyNumber,
		BlockNumber:        input.BlockNumber,
		SectorNumber:       input.SectorNumber,
		MouzaName:          input.MouzaName,
		LandUseZone:        input.LandUseZone,
		RegistrationDate:   input.RegistrationDate,
		RegistrationNumber: input.RegistrationNumber,
		TitleDeedNumber:    input.TitleDeedNumber,
		CurrentMarketValue: input.CurrentMarketValue,
		AnnualTaxValue:     input.AnnualTaxValue,
		DevelopmentStatus:  input.DevelopmentStatus,
		HasStructures:      input.HasStructures,
		IsActive:           true,
	}
	if parcel.Status == "" {
		parcel.Status = enums.ParcelStatusActive
	}
	if parcel.DevelopmentStatus == "" {
		parcel.DevelopmentStatus = enums.DevelopmentStatusUndeveloped
	}

	created, err := s.repo.Create(ctx, parcel)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a parcel with this cadastral or registration number already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create parcel")
	}
	return ToDTO(created), nil
}

func (s *service) Update(ctx context.Context, actor types.Actor, id uuid.UUID, input UpdateParcelInput) (*ParcelDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may modify parcels")
	}
	parcel, err := s.findParcel(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Location != nil {
		parcel.Location = *input.Location
	}
	if input.Area != nil {
		if *input.Area <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "area must be positive")
		}
		parcel.Area = *input.Area
	}
	if input.LandUseType != nil {
		parcel.LandUseType = *input.LandUseType
	}
	if input.Status != nil {
		parcel.Status = *input.Status
	}
	if input.BoundaryNorth != nil {
		parcel.BoundaryNorth = input.BoundaryNorth
	}
	if input.BoundaryEast != nil {
		parcel.BoundaryEast = input.BoundaryEast
	}
	if input.BoundaryWest != nil {
		parcel.BoundaryWest = input.BoundaryWest
	}
	if input.BoundarySouth != nil {
		parcel.BoundarySouth = input.BoundarySouth
	}
	if input.SurveyNumber != nil {
		parcel.SurveyNumber = input.SurveyNumber
	}
	if input.BlockNumber != nil {
		parcel.BlockNumber = input.BlockNumber
	}
	if input.SectorNumber != nil {
		parcel.SectorNumber = input.SectorNumber
	}
	if input.MouzaName != nil {
		parcel.MouzaName = input.MouzaName
	}
	if input.LandUseZone != nil {
		parcel.LandUseZone = input.LandUseZone
	}
	if input.RegistrationDate != nil {
		parcel.RegistrationDate = input.RegistrationDate
	}
	if input.RegistrationNumber != nil {
		parcel.RegistrationNumber = input.RegistrationNumber
	}
	if input.TitleDeedNumber != nil {
		parcel.TitleDeedNumber = input.TitleDeedNumber
	}
	if input.CurrentMarketValue != nil {
		parcel.CurrentMarketValue = input.CurrentMarketValue
	}
	if input.AnnualTaxValue != nil {
		parcel.AnnualTaxValue = input.AnnualTaxValue
	}
	if input.DevelopmentStatus != nil {
		parcel.DevelopmentStatus = *input.DevelopmentStatus
	}
	if input.HasStructures != nil {
		parcel.HasStructures = *input.HasStructures
	}
	if input.IsActive != nil {
		parcel.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, parcel); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a parcel with this registration number already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update parcel")
	}
	return ToDTO(parcel), nil
}

func (s *service) Delete(ctx context.Context, actor types.Actor, id uuid.UUID) error {
	if !actor.CanReadAll() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may delete parcels")
	}
	if _, err := s.findParcel(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete parcel")
	}
	return nil
}

func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	stats, err := s.repo.AggregateStats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate parcel stats")
	}
	return &StatsDTO{
		TotalParcels:    stats.Total,
		ActiveParcels:   stats.Active,
		InactiveParcels: stats.Inactive,
		PendingParcels:  stats.Pending,
		TotalValue:      stats.TotalValue,
		TotalArea:       stats.TotalArea,
	}, nil
}

// MyParcels lists the parcels reachable through the actor's owner profile.
// Accounts without a profile get an empty list, never an error.
func (s *service) MyParcels(ctx context.Context, actor types.Actor) ([]ParcelDTO, error) {
	if actor.OwnerProfileID == nil {
		return []ParcelDTO{}, nil
	}
	parcels, err := s.lands.OwnedParcels(ctx, *actor.OwnerProfileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owned parcels")
	}
	return ToDTOs(parcels), nil
}

func (s *service) findParcel(ctx context.Context, id uuid.UUID) (*models.LandParcel, error) {
	parcel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "land parcel not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parcel")
	}
	return parcel, nil
}
