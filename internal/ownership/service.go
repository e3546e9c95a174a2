package ownership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var maxParcelPercentage = decimal.NewFromInt(100)

type recordsRepository interface {
	Create(ctx context.Context, record *models.OwnershipRecord) (*models.OwnershipRecord, error)
	CreateWithTx(tx *gorm.DB, record *models.OwnershipRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.OwnershipRecord, error)
	FindByIDWithTx(tx *gorm.DB, id uuid.UUID) (*models.OwnershipRecord, error)
	List(ctx context.Context, filter ListFilter) ([]models.OwnershipRecord, error)
	CurrentByParcel(ctx context.Context, parcelID uuid.UUID) ([]models.OwnershipRecord, error)
	OwnedParcels(ctx context.Context, ownerID uuid.UUID) ([]models.LandParcel, error)
	SumCurrentPercentage(ctx context.Context, parcelID uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error)
	SumCurrentPercentageWithTx(tx *gorm.DB, parcelID uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error)
	Update(ctx context.Context, record *models.OwnershipRecord) error
	UpdateWithTx(tx *gorm.DB, record *models.OwnershipRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ownersDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type parcelsDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes ownership-record operations.
type Service interface {
	List(ctx context.Context, actor types.Actor, filter ListFilter) ([]RecordDTO, error)
	Get(ctx context.Context, actor types.Actor, id uuid.UUID) (*RecordDTO, error)
	Create(ctx context.Context, actor types.Actor, input CreateRecordInput) (*RecordDTO, error)
	Update(ctx context.Context, actor types.Actor, id uuid.UUID, input UpdateRecordInput) (*RecordDTO, error)
	Delete(ctx context.Context, actor types.Actor, id uuid.UUID) error
	Transfer(ctx context.Context, actor types.Actor, recordID uuid.UUID, input TransferInput) (*RecordDTO, error)
	SetVerificationStatus(ctx context.Context, actor types.Actor, recordID uuid.UUID, next enums.VerificationStatus, notes *string) (*RecordDTO, error)
	CurrentOwners(ctx context.Context, parcelID uuid.UUID) ([]CurrentOwnerDTO, error)
	PrimaryOwner(ctx context.Context, parcelID uuid.UUID) (*CurrentOwnerDTO, error)
	OwnedParcels(ctx context.Context, ownerID uuid.UUID) ([]models.LandParcel, error)
	HistoryByOwner(ctx context.Context, actor types.Actor, ownerID uuid.UUID) ([]RecordDTO, error)
	HistoryByParcel(ctx context.Context, actor types.Actor, parcelID uuid.UUID) ([]RecordDTO, error)
}

type service struct {
	repo    recordsRepository
	owners  ownersDirectory
	parcels parcelsDirectory
	tx      txRunner
}

// NewService builds an ownership service with the provided collaborators.
func NewService(repo recordsRepository, owners ownersDirectory, parcels parcelsDirectory, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ownership repository required")
	}
	if owners == nil {
		return nil, fmt.Errorf("owners directory required")
	}
	if parcels == nil {
		return nil, fmt.Errorf("parcels directory required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, owners: owners, parcels: parcels, tx: tx}, nil
}

func (s *service) List(ctx context.Context, actor types.Actor, filter ListFilter) ([]RecordDTO, error) {
	if !actor.CanReadAll() {
		if actor.OwnerProfileID == nil {
			return []RecordDTO{}, nil
		}
		filter.OwnerID = actor.OwnerProfileID
	}

	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ownership records")
	}
	return toRecordDTOs(records), nil
}

func (s *service) Get(ctx context.Context, actor types.Actor, id uuid.UUID) (*RecordDTO, error) {
	record, err := s.findRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanReadAll() {
		if actor.OwnerProfileID == nil || record.OwnerID != *actor.OwnerProfileID {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ownership record not found")
		}
	}
	return toRecordDTO(record), nil
}

func (s *service) Create(ctx context.Context, actor types.Actor, input CreateRecordInput) (*RecordDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may create ownership records")
	}
	if err := validatePercentage(input.OwnershipPercentage); err != nil {
		return nil, err
	}
	if input.AcquisitionDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "acquisition_date is required")
	}
	if err := s.checkReferences(ctx, input.ParcelID, input.OwnerID); err != nil {
		return nil, err
	}

	total, err := s.repo.SumCurrentPercentage(ctx, input.ParcelID, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum parcel ownership")
	}
	if total.Add(input.OwnershipPercentage).GreaterThan(maxParcelPercentage) {
		return nil, percentageExceededError(total, input.OwnershipPercentage)
	}

	record := &models.OwnershipRecord{
		ParcelID:            input.ParcelID,
		OwnerID:             input.OwnerID,
		OwnershipType:       input.OwnershipType,
		OwnershipPercentage: input.OwnershipPercentage,
		AcquisitionType:     input.AcquisitionType,
		AcquisitionDate:     input.AcquisitionDate,
		AcquisitionValue:    input.AcquisitionValue,
		DeedNumber:          input.DeedNumber,
		DeedDate:            input.DeedDate,
		RegistrationOffice:  input.RegistrationOffice,
		RegistrationNumber:  input.RegistrationNumber,
		RegistrationDate:    input.RegistrationDate,
		StartDate:           input.StartDate,
		EndDate:             input.EndDate,
		LeaseAmount:         input.LeaseAmount,
		MortgageAmount:      input.MortgageAmount,
		MortgageeName:       input.MortgageeName,
		VerificationStatus:  enums.VerificationStatusPending,
		IsCurrentOwner:      true,
		CreatedByID:         &actor.UserID,
		HistoryNotes:        input.HistoryNotes,
	}
	if record.OwnershipType == "" {
		record.OwnershipType = enums.OwnershipTypeSole
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create ownership record")
	}
	return s.Get(ctx, actor, created.ID)
}

func (s *service) Update(ctx context.Context, actor types.Actor, id uuid.UUID, input UpdateRecordInput) (*RecordDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may modify ownership records")
	}

	record, err := s.findRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.OwnershipType != nil {
		record.OwnershipType = *input.OwnershipType
	}
	if input.AcquisitionValue != nil {
		record.AcquisitionValue = input.AcquisitionValue
	}
	if input.DeedNumber != nil {
		record.DeedNumber = input.DeedNumber
	}
	if input.DeedDate != nil {
		record.DeedDate = input.DeedDate
	}
	if input.RegistrationOffice != nil {
		record.RegistrationOffice = input.RegistrationOffice
	}
	if input.RegistrationNumber != nil {
		record.RegistrationNumber = input.RegistrationNumber
	}
	if input.RegistrationDate != nil {
		record.RegistrationDate = input.RegistrationDate
	}
	if input.StartDate != nil {
		record.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		record.EndDate = input.EndDate
	}
	if input.LeaseAmount != nil {
		record.LeaseAmount = input.LeaseAmount
	}
	if input.MortgageAmount != nil {
		record.MortgageAmount = input.MortgageAmount
	}
	if input.MortgageeName != nil {
		record.MortgageeName = input.MortgageeName
	}
	if input.HistoryNotes != nil {
		record.HistoryNotes = input.HistoryNotes
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ownership record")
	}
	return s.Get(ctx, actor, record.ID)
}

func (s *service) Delete(ctx context.Context, actor types.Actor, id uuid.UUID) error {
	if !actor.CanReadAll() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may delete ownership records")
	}
	if _, err := s.findRecord(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete ownership record")
	}
	return nil
}

// Transfer closes the source record and opens a new current record for the
// incoming owner in a single transaction.
func (s *service) Transfer(ctx context.Context, actor types.Actor, recordID uuid.UUID, input TransferInput) (*RecordDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may transfer ownership")
	}
	if !input.TransferType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid transfer_type")
	}
	if input.TransferDate.IsZero() {
		input.TransferDate = time.Now().UTC()
	}
	if input.Percentage != nil {
		if err := validatePercentage(*input.Percentage); err != nil {
			return nil, err
		}
	}

	exists, err := s.owners.Exists(ctx, input.NewOwnerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up new owner")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "new owner profile not found")
	}

	var newRecordID uuid.UUID
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		source, err := s.repo.FindByIDWithTx(tx, recordID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "ownership record not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ownership record")
		}
		if !source.IsCurrentOwner {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "record is not current")
		}
		if source.OwnerID == input.NewOwnerID {
			return pkgerrors.New(pkgerrors.CodeValidation, "new owner must differ from the current owner")
		}

		percentage := source.OwnershipPercentage
		if input.Percentage != nil {
			percentage = *input.Percentage
		}

		total, err := s.repo.SumCurrentPercentageWithTx(tx, source.ParcelID, &source.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum parcel ownership")
		}
		if total.Add(percentage).GreaterThan(maxParcelPercentage) {
			return percentageExceededError(total, percentage)
		}

		now := input.TransferDate
		transferType := input.TransferType
		source.IsCurrentOwner = false
		source.EndDate = &now
		source.TransferDate = &now
		source.TransferType = &transferType
		source.TransferToID = &input.NewOwnerID
		if err := s.repo.UpdateWithTx(tx, source); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close source record")
		}

		next := &models.OwnershipRecord{
			ParcelID:            source.ParcelID,
			OwnerID:             input.NewOwnerID,
			OwnershipType:       source.OwnershipType,
			OwnershipPercentage: percentage,
			AcquisitionType:     acquisitionTypeFor(input),
			AcquisitionDate:     now,
			AcquisitionValue:    input.AcquisitionValue,
			DeedNumber:          input.DeedNumber,
			StartDate:           &now,
			VerificationStatus:  enums.VerificationStatusPending,
			IsCurrentOwner:      true,
			CreatedByID:         &actor.UserID,
			HistoryNotes:        input.HistoryNotes,
		}
		if err := s.repo.CreateWithTx(tx, next); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transferred record")
		}
		newRecordID = next.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, actor, newRecordID)
}

func (s *service) SetVerificationStatus(ctx context.Context, actor types.Actor, recordID uuid.UUID, next enums.VerificationStatus, notes *string) (*RecordDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may verify ownership records")
	}
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid verification status")
	}

	record, err := s.findRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(record.VerificationStatus, next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move verification from %s to %s", record.VerificationStatus, next))
	}

	record.VerificationStatus = next
	if notes != nil {
		record.VerificationNotes = notes
	}
	if next.IsTerminal() {
		now := time.Now().UTC()
		record.VerifiedByID = &actor.UserID
		record.VerificationDate = &now
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update verification status")
	}
	return s.Get(ctx, actor, record.ID)
}

func (s *service) CurrentOwners(ctx context.Context, parcelID uuid.UUID) ([]CurrentOwnerDTO, error) {
	records, err := s.repo.CurrentByParcel(ctx, parcelID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list current owners")
	}
	owners := make([]CurrentOwnerDTO, 0, len(records))
	for i := range records {
		owners = append(owners, toCurrentOwnerDTO(&records[i]))
	}
	return owners, nil
}

// PrimaryOwner returns the current owner with the most recent acquisition,
// or nil when the parcel has no current records.
func (s *service) PrimaryOwner(ctx context.Context, parcelID uuid.UUID) (*CurrentOwnerDTO, error) {
	owners, err := s.CurrentOwners(ctx, parcelID)
	if err != nil {
		return nil, err
	}
	if len(owners) == 0 {
		return nil, nil
	}
	return &owners[0], nil
}

func (s *service) OwnedParcels(ctx context.Context, ownerID uuid.UUID) ([]models.LandParcel, error) {
	parcels, err := s.repo.OwnedParcels(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owned parcels")
	}
	return parcels, nil
}

func (s *service) HistoryByOwner(ctx context.Context, actor types.Actor, ownerID uuid.UUID) ([]RecordDTO, error) {
	if !actor.CanReadAll() {
		if actor.OwnerProfileID == nil || *actor.OwnerProfileID != ownerID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you may only view your own ownership history")
		}
	}
	records, err := s.repo.List(ctx, ListFilter{OwnerID: &ownerID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owner history")
	}
	return toRecordDTOs(records), nil
}

func (s *service) HistoryByParcel(ctx context.Context, actor types.Actor, parcelID uuid.UUID) ([]RecordDTO, error) {
	filter := ListFilter{ParcelID: &parcelID}
	if !actor.CanReadAll() {
		if actor.OwnerProfileID == nil {
			return []RecordDTO{}, nil
		}
		filter.OwnerID = actor.OwnerProfileID
	}
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list parcel history")
	}
	return toRecordDTOs(records), nil
}

func (s *service) findRecord(ctx context.Context, id uuid.UUID) (*models.OwnershipRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ownership record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ownership record")
	}
	return record, nil
}

func (s *service) checkReferences(ctx context.Context, parcelID, ownerID uuid.UUID) error {
	exists, err := s.parcels.Exists(ctx, parcelID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up parcel")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "land parcel not found")
	}
	exists, err = s.owners.Exists(ctx, ownerID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up owner")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "owner profile not found")
	}
	return nil
}

func validatePercentage(p decimal.Decimal) error {
	if p.LessThanOrEqual(decimal.Zero) || p.GreaterThan(maxParcelPercentage) {
		return pkgerrors.New(pkgerrors.CodeValidation, "ownership_percentage must be between 0 and 100")
	}
	return nil
}

func percentageExceededError(existing, incoming decimal.Decimal) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "total ownership percentage for the parcel would exceed 100").
		WithDetails(map[string]string{
			"current_total": existing.String(),
			"requested":     incoming.String(),
		})
}

func acquisitionTypeFor(input TransferInput) enums.AcquisitionType {
	if input.AcquisitionType != nil {
		return *input.AcquisitionType
	}
	switch input.TransferType {
	case enums.TransferTypeGift:
		return enums.AcquisitionTypeGift
	case enums.TransferTypeInheritance:
		return enums.AcquisitionTypeInheritance
	case enums.TransferTypeForeclosure:
		return enums.AcquisitionTypeCourtOrder
	case enums.TransferTypeSurrender:
		return enums.AcquisitionTypeGovernmentAllocation
	default:
		return enums.AcquisitionTypePurchase
	}
}

func toRecordDTOs(records []models.OwnershipRecord) []RecordDTO {
	out := make([]RecordDTO, 0, len(records))
	for i := range records {
		out = append(out, *toRecordDTO(&records[i]))
	}
	return out
}
