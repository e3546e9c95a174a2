package documents

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/internal/ownership"
	"github.com/sadmanhossain/urbanland-backend/internal/parcels"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.User{},
		&models.OwnerProfile{},
		&models.LandParcel{},
		&models.OwnershipRecord{},
		&models.Document{},
	); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

type stubLinker struct{}

func (stubLinker) ReadURL(key string) (string, error) {
	return "https://signed.example.com/" + key, nil
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(
		NewRepository(conn),
		ownership.NewRepository(conn),
		parcels.NewRepository(conn),
		stubLinker{},
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func staffActor() types.Actor {
	return types.Actor{UserID: uuid.New(), Role: enums.RoleOfficer}
}

func seedParcelAndRecord(t *testing.T, conn *gorm.DB) (*models.LandParcel, *models.OwnershipRecord) {
	t.Helper()
	user := &models.User{Username: "rahim.uddin." + uuid.NewString()[:8], PasswordHash: "x", Role: enums.RoleOwner, IsActive: true}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	profile := &models.OwnerProfile{UserID: user.ID, NationalID: uuid.NewString(), FirstName: "Rahim", LastName: "Uddin"}
	if err := conn.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	parcel := &models.LandParcel{
		CadastralNumber: "DHK-" + uuid.NewString()[:12],
		Location:        "Dhaka",
		Area:            900,
		LandUseType:     "residential",
		IsActive:        true,
	}
	if err := conn.Create(parcel).Error; err != nil {
		t.Fatalf("seed parcel: %v", err)
	}
	record := &models.OwnershipRecord{
		ParcelID:            parcel.ID,
		OwnerID:             profile.ID,
		OwnershipType:       enums.OwnershipTypeSole,
		OwnershipPercentage: decimal.NewFromInt(100),
		AcquisitionType:     enums.AcquisitionTypePurchase,
		AcquisitionDate:     time.Now().UTC(),
		VerificationStatus:  enums.VerificationStatusPending,
		IsCurrentOwner:      true,
	}
	if err := conn.Create(record).Error; err != nil {
		t.Fatalf("seed record: %v", err)
	}
	return parcel, record
}

func TestCreateRequiresReference(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	parcel, record := seedParcelAndRecord(t, conn)

	_, err := svc.Create(ctx, types.Actor{UserID: uuid.New(), Role: enums.RoleOwner}, CreateDocumentInput{})
	if pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for owner role, got %v", err)
	}

	_, err = svc.Create(ctx, staffActor(), CreateDocumentInput{
		DocType:    enums.DocumentTypeTitleDeed,
		StorageKey: "uploads/land_document/x/deed.pdf",
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation without any reference, got %v", err)
	}

	unknown := uuid.New()
	_, err = svc.Create(ctx, staffActor(), CreateDocumentInput{
		DocType:           enums.DocumentTypeTitleDeed,
		StorageKey:        "uploads/land_document/x/deed.pdf",
		OwnershipRecordID: &unknown,
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown record, got %v", err)
	}

	created, err := svc.Create(ctx, staffActor(), CreateDocumentInput{
		DocType:           enums.DocumentTypeTitleDeed,
		StorageKey:        "uploads/land_document/x/deed.pdf",
		OwnershipRecordID: &record.ID,
		ParcelID:          &parcel.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.FileURL == nil || *created.FileURL != "https://signed.example.com/uploads/land_document/x/deed.pdf" {
		t.Fatalf("expected signed file url, got %+v", created.FileURL)
	}
	if created.UploadedByID == nil {
		t.Fatal("expected uploader to be stamped")
	}
}

func TestListFiltersByReference(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	parcel, record := seedParcelAndRecord(t, conn)

	if _, err := svc.Create(ctx, staffActor(), CreateDocumentInput{
		DocType:           enums.DocumentTypeSaleDeed,
		StorageKey:        "uploads/land_document/a/sale.pdf",
		OwnershipRecordID: &record.ID,
	}); err != nil {
		t.Fatalf("create record document: %v", err)
	}
	if _, err := svc.Create(ctx, staffActor(), CreateDocumentInput{
		DocType:    enums.DocumentTypeSurveyMap,
		StorageKey: "uploads/parcel_file/b/map.png",
		ParcelID:   &parcel.ID,
	}); err != nil {
		t.Fatalf("create parcel document: %v", err)
	}

	byRecord, err := svc.List(ctx, staffActor(), ListParams{ListFilter: ListFilter{OwnershipRecordID: &record.ID}})
	if err != nil {
		t.Fatalf("list by record: %v", err)
	}
	if len(byRecord.Items) != 1 || byRecord.Items[0].DocType != enums.DocumentTypeSaleDeed {
		t.Fatalf("unexpected record filter result: %+v", byRecord.Items)
	}

	docType := enums.DocumentTypeSurveyMap
	byType, err := svc.List(ctx, staffActor(), ListParams{ListFilter: ListFilter{DocType: &docType}})
	if err != nil {
		t.Fatalf("list by type: %v", err)
	}
	if len(byType.Items) != 1 || byType.Items[0].ParcelID == nil {
		t.Fatalf("unexpected type filter result: %+v", byType.Items)
	}
}

func TestVerifyStampsReviewer(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	_, record := seedParcelAndRecord(t, conn)
	actor := staffActor()

	created, err := svc.Create(ctx, actor, CreateDocumentInput{
		DocType:           enums.DocumentTypeTaxReceipt,
		StorageKey:        "uploads/land_document/c/tax.pdf",
		OwnershipRecordID: &record.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	verified, err := svc.Verify(ctx, actor, created.ID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !verified.IsVerified || verified.VerifiedByID == nil || *verified.VerifiedByID != actor.UserID {
		t.Fatalf("unexpected verification state: %+v", verified)
	}
	if verified.VerificationDate == nil {
		t.Fatal("expected verification date")
	}

	if _, err := svc.Verify(ctx, actor, created.ID); pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict re-verifying, got %v", err)
	}
}
