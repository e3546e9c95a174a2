package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	pkgpagination "github.com/sadmanhossain/urbanland-backend/pkg/pagination"
	"github.com/sadmanhossain/urbanland-backend/pkg/types"
	"gorm.io/gorm"
)

type documentsRepository interface {
	Create(ctx context.Context, document *models.Document) (*models.Document, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	List(ctx context.Context, opts listQuery) ([]models.Document, error)
	Update(ctx context.Context, document *models.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type recordsDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.OwnershipRecord, error)
}

type parcelsDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type fileLinker interface {
	ReadURL(key string) (string, error)
}

// Service exposes registry-document operations.
type Service interface {
	List(ctx context.Context, actor types.Actor, params ListParams) (*ListResult, error)
	Get(ctx context.Context, actor types.Actor, id uuid.UUID) (*DocumentDTO, error)
	Create(ctx context.Context, actor types.Actor, input CreateDocumentInput) (*DocumentDTO, error)
	Update(ctx context.Context, actor types.Actor, id uuid.UUID, input UpdateDocumentInput) (*DocumentDTO, error)
	Verify(ctx context.Context, actor types.Actor, id uuid.UUID) (*DocumentDTO, error)
	Delete(ctx context.Context, actor types.Actor, id uuid.UUID) error
}

type service struct {
	repo    documentsRepository
	records recordsDirectory
	parcels parcelsDirectory
	linker  fileLinker
}

// NewService builds a documents service with the provided collaborators.
func NewService(repo documentsRepository, records recordsDirectory, parcels parcelsDirectory, linker fileLinker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("documents repository required")
	}
	if records == nil {
		return nil, fmt.Errorf("records directory required")
	}
	if parcels == nil {
		return nil, fmt.Errorf("parcels directory required")
	}
	if linker == nil {
		return nil, fmt.Errorf("file linker required")
	}
	return &service{repo: repo, records: records, parcels: parcels, linker: linker}, nil
}

func (s *service) List(ctx context.Context, actor types.Actor, params ListParams) (*ListResult, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may browse documents")
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	query := listQuery{
		filter: params.ListFilter,
		limit:  pkgpagination.LimitWithBuffer(params.Limit),
	}
	if params.Cursor != "" {
		cursor, err := pkgpagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.cursor = cursor
	}

	documents, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list documents")
	}

	nextCursor := ""
	if len(documents) > limit {
		nextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{
			CreatedAt: documents[limit].UploadedAt,
			ID:        documents[limit].ID,
		})
		documents = documents[:limit]
	}

	items := make([]DocumentDTO, 0, len(documents))
	for i := range documents {
		dto, err := s.withFileURL(&documents[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *dto)
	}
	return &ListResult{Items: items, Cursor: nextCursor}, nil
}

func (s *service) Get(ctx context.Context, actor types.Actor, id uuid.UUID) (*DocumentDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may view documents")
	}
	document, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withFileURL(document)
}

func (s *service) Create(ctx context.Context, actor types.Actor, input CreateDocumentInput) (*DocumentDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may create documents")
	}
	if !input.DocType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid doc_type")
	}
	if strings.TrimSpace(input.StorageKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storage_key is required")
	}
	if input.OwnershipRecordID == nil && input.ParcelID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document must reference an ownership record or a parcel")
	}

	if input.OwnershipRecordID != nil {
		if _, err := s.records.FindByID(ctx, *input.OwnershipRecordID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ownership record not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ownership record")
		}
	}
	if input.ParcelID != nil {
		exists, err := s.parcels.Exists(ctx, *input.ParcelID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up parcel")
		}
		if !exists {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "land parcel not found")
		}
	}

	document := &models.Document{
		OwnershipRecordID: input.OwnershipRecordID,
		ParcelID:          input.ParcelID,
		DocType:           input.DocType,
		DocumentNumber:    input.DocumentNumber,
		DocumentDate:      input.DocumentDate,
		IssuingAuthority:  input.IssuingAuthority,
		StorageKey:        input.StorageKey,
		FileSize:          input.FileSize,
		FileType:          input.FileType,
		Description:       input.Description,
		UploadedByID:      &actor.UserID,
	}

	created, err := s.repo.Create(ctx, document)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create document")
	}
	return s.withFileURL(created)
}

func (s *service) Update(ctx context.Context, actor types.Actor, id uuid.UUID, input UpdateDocumentInput) (*DocumentDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may modify documents")
	}
	document, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DocType != nil {
		if !input.DocType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid doc_type")
		}
		document.DocType = *input.DocType
	}
	if input.DocumentNumber != nil {
		document.DocumentNumber = input.DocumentNumber
	}
	if input.DocumentDate != nil {
		document.DocumentDate = input.DocumentDate
	}
	if input.IssuingAuthority != nil {
		document.IssuingAuthority = input.IssuingAuthority
	}
	if input.Description != nil {
		document.Description = input.Description
	}

	if err := s.repo.Update(ctx, document); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update document")
	}
	return s.withFileURL(document)
}

// Verify marks the document as reviewed by the acting staff member.
func (s *service) Verify(ctx context.Context, actor types.Actor, id uuid.UUID) (*DocumentDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may verify documents")
	}
	document, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if document.IsVerified {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "document is already verified")
	}

	now := time.Now().UTC()
	document.IsVerified = true
	document.VerifiedByID = &actor.UserID
	document.VerificationDate = &now

	if err := s.repo.Update(ctx, document); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify document")
	}
	return s.withFileURL(document)
}

func (s *service) Delete(ctx context.Context, actor types.Actor, id uuid.UUID) error {
	if !actor.CanReadAll() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may delete documents")
	}
	if _, err := s.findDocument(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete document")
	}
	return nil
}

func (s *service) findDocument(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	document, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load document")
	}
	return document, nil
}

func (s *service) withFileURL(document *models.Document) (*DocumentDTO, error) {
	url, err := s.linker.ReadURL(document.StorageKey)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign file url")
	}
	return toDocumentDTO(document, &url), nil
}
