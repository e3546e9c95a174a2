package owners

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

type profilesRepository interface {
	Create(ctx context.Context, profile *models.OwnerProfile) (*models.OwnerProfile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.OwnerProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.OwnerProfile, error)
	FindByUsername(ctx context.Context, username string) ([]models.OwnerProfile, error)
	List(ctx context.Context, filter ListFilter) ([]models.OwnerProfile, error)
	ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error)
	Update(ctx context.Context, profile *models.OwnerProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type usersDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type landsProvider interface {
	CurrentByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.OwnershipRecord, error)
}

type imageLinker interface {
	ReadURL(key string) (string, error)
}

// Service exposes owner-profile operations.
type Service interface {
	List(ctx context.Context, actor types.Actor, filter ListFilter) ([]OwnerDTO, error)
	Get(ctx context.Context, actor types.Actor, id uuid.UUID) (*OwnerDTO, error)
	Me(ctx context.Context, actor types.Actor) (*OwnerDTO, error)
	SearchByUsername(ctx context.Context, actor types.Actor, username string) ([]OwnerDTO, error)
	Create(ctx context.Context, actor types.Actor, input CreateOwnerInput) (*OwnerDTO, error)
	Update(ctx context.Context, actor types.Actor, id uuid.UUID, input UpdateOwnerInput) (*OwnerDTO, error)
	Delete(ctx context.Context, actor types.Actor, id uuid.UUID) error
}

type service struct {
	repo   profilesRepository
	users  usersDirectory
	lands  landsProvider
	linker imageLinker
}

// NewService builds an owners service with the provided collaborators.
func NewService(repo profilesRepository, users usersDirectory, lands landsProvider, linker imageLinker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("owners repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("users directory required")
	}
	if lands == nil {
		return nil, fmt.Errorf("lands provider required")
	}
	if linker == nil {
		return nil, fmt.Errorf("image linker required")
	}
	return &service{repo: repo, users: users, lands: lands, linker: linker}, nil
}

func (s *service) List(ctx context.Context, actor types.Actor, filter ListFilter) ([]OwnerDTO, error) {
	if !actor.CanReadAll() {
		profile, err := s.repo.FindByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []OwnerDTO{}, nil
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load own profile")
		}
		dto, err := s.toDTO(ctx, profile)
		if err != nil {
			return nil, err
		}
		return []OwnerDTO{*dto}, nil
	}

	profiles, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owner profiles")
	}
	return s.toDTOs(ctx, profiles)
}

func (s *service) Get(ctx context.Context, actor types.Actor, id uuid.UUID) (*OwnerDTO, error) {
	profile, err := s.findProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanReadAll() && profile.UserID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "owner profile not found")
	}
	return s.toDTO(ctx, profile)
}

func (s *service) Me(ctx context.Context, actor types.Actor) (*OwnerDTO, error) {
	profile, err := s.repo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "owner profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load own profile")
	}
	return s.toDTO(ctx, profile)
}

func (s *service) SearchByUsername(ctx context.Context, actor types.Actor, username string) ([]OwnerDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may search owner profiles")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username query parameter is required")
	}

	profiles, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search owner profiles")
	}
	return s.toDTOs(ctx, profiles)
}

func (s *service) Create(ctx context.Context, actor types.Actor, input CreateOwnerInput) (*OwnerDTO, error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only administrators may create owner profiles")
	}
	if strings.TrimSpace(input.NationalID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "national_id is required")
	}
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first_name and last_name are required")
	}

	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if user.Role != enums.RoleOwner {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profiles can only be attached to owner accounts")
	}
	taken, err := s.repo.ExistsForUser(ctx, input.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing profile")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "user already has an owner profile")
	}

	profile := &models.OwnerProfile{
		UserID:           input.UserID,
		NationalID:       input.NationalID,
		FirstName:        input.FirstName,
		MiddleName:       input.MiddleName,
		LastName:         input.LastName,
		DateOfBirth:      input.DateOfBirth,
		Gender:           input.Gender,
		ProfilePicture:   input.ProfilePicture,
		IDCardFront:      input.IDCardFront,
		IDCardBack:       input.IDCardBack,
		Signature:        input.Signature,
		ContactPhone:     input.ContactPhone,
		ContactEmail:     input.ContactEmail,
		PermanentAddress: input.PermanentAddress,
		CurrentAddress:   input.CurrentAddress,
		OwnerType:        input.OwnerType,
		RegistrationNo:   input.RegistrationNo,
		TaxID:            input.TaxID,
		ContactPerson:    input.ContactPerson,
		Notes:            input.Notes,
		Status:           enums.OwnerStatusActive,
	}
	if profile.OwnerType == "" {
		profile.OwnerType = enums.OwnerTypeIndividual
	}

	created, err := s.repo.Create(ctx, profile)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "an owner profile with this national_id already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create owner profile")
	}
	return s.Get(ctx, actor, created.ID)
}

func (s *service) Update(ctx context.Context, actor types.Actor, id uuid.UUID, input UpdateOwnerInput) (*OwnerDTO, error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only administrators may modify owner profiles")
	}

	profile, err := s.findProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		profile.FirstName = *input.FirstName
	}
	if input.MiddleName != nil {
		profile.MiddleName = input.MiddleName
	}
	if input.LastName != nil {
		profile.LastName = *input.LastName
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth = input.DateOfBirth
	}
	if input.Gender != nil {
		profile.Gender = input.Gender
	}
	if input.ProfilePicture != nil {
		profile.ProfilePicture = input.ProfilePicture
	}
	if input.IDCardFront != nil {
		profile.IDCardFront = input.IDCardFront
	}
	if input.IDCardBack != nil {
		profile.IDCardBack = input.IDCardBack
	}
	if input.Signature != nil {
		profile.Signature = input.Signature
	}
	if input.ContactPhone != nil {
		profile.ContactPhone = input.ContactPhone
	}
	if input.ContactEmail != nil {
		profile.ContactEmail = input.ContactEmail
	}
	if input.PermanentAddress != nil {
		profile.PermanentAddress = input.PermanentAddress
	}
	if input.CurrentAddress != nil {
		profile.CurrentAddress = input.CurrentAddress
	}
	if input.OwnerType != nil {
		profile.OwnerType = *input.OwnerType
	}
	if input.RegistrationNo != nil {
		profile.RegistrationNo = input.RegistrationNo
	}
	if input.TaxID != nil {
		profile.TaxID = input.TaxID
	}
	if input.ContactPerson != nil {
		profile.ContactPerson = input.ContactPerson
	}
	if input.Notes != nil {
		profile.Notes = input.Notes
	}
	if input.Status != nil {
		profile.Status = *input.Status
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update owner profile")
	}
	return s.Get(ctx, actor, profile.ID)
}

func (s *service) Delete(ctx context.Context, actor types.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only administrators may delete owner profiles")
	}
	if _, err := s.findProfile(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete owner profile")
	}
	return nil
}

func (s *service) findProfile(ctx context.Context, id uuid.UUID) (*models.OwnerProfile, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "owner profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load owner profile")
	}
	return profile, nil
}

func (s *service) toDTO(ctx context.Context, profile *models.OwnerProfile) (*OwnerDTO, error) {
	records, err := s.lands.CurrentByOwner(ctx, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load owned lands")
	}

	dto := &OwnerDTO{
		ID:               profile.ID,
		UserID:           profile.UserID,
		NationalID:       profile.NationalID,
		FirstName:        profile.FirstName,
		MiddleName:       profile.MiddleName,
		LastName:         profile.LastName,
		FullName:         profile.FullName(),
		DateOfBirth:      profile.DateOfBirth,
		Gender:           profile.Gender,
		ContactPhone:     profile.ContactPhone,
		ContactEmail:     profile.ContactEmail,
		PermanentAddress: profile.PermanentAddress,
		CurrentAddress:   profile.CurrentAddress,
		OwnerType:        profile.OwnerType,
		RegistrationNo:   profile.RegistrationNo,
		TaxID:            profile.TaxID,
		ContactPerson:    profile.ContactPerson,
		Notes:            profile.Notes,
		Status:           profile.Status,
		OwnedLands:       toOwnedLandDTOs(records),
		CreatedAt:        profile.CreatedAt,
		UpdatedAt:        profile.UpdatedAt,
	}
	if profile.User != nil {
		dto.Username = profile.User.Username
	}

	if dto.ProfilePictureURL, err = s.signKey(profile.ProfilePicture); err != nil {
		return nil, err
	}
	if dto.IDCardFrontURL, err = s.signKey(profile.IDCardFront); err != nil {
		return nil, err
	}
	if dto.IDCardBackURL, err = s.signKey(profile.IDCardBack); err != nil {
		return nil, err
	}
	if dto.SignatureURL, err = s.signKey(profile.Signature); err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) signKey(key *string) (*string, error) {
	if key == nil || *key == "" {
		return nil, nil
	}
	url, err := s.linker.ReadURL(*key)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign image url")
	}
	return &url, nil
}

func (s *service) toDTOs(ctx context.Context, profiles []models.OwnerProfile) ([]OwnerDTO, error) {
	out := make([]OwnerDTO, 0, len(profiles))
	for i := range profiles {
		dto, err := s.toDTO(ctx, &profiles[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}
