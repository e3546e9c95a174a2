package ownership

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db"
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
	); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

type gormOwnersDirectory struct{ db *gorm.DB }

func (d gormOwnersDirectory) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.OwnerProfile{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

type gormParcelsDirectory struct{ db *gorm.DB }

func (d gormParcelsDirectory) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.LandParcel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(
		NewRepository(conn),
		gormOwnersDirectory{db: conn},
		gormParcelsDirectory{db: conn},
		db.NewWithConn(conn),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedOwner(t *testing.T, conn *gorm.DB, firstName, lastName string) *models.OwnerProfile {
	t.Helper()
	user := &models.User{
		Username:     fmt.Sprintf("%s.%s.%s", firstName, lastName, uuid.NewString()[:8]),
		PasswordHash: "x",
		Role:         enums.RoleOwner,
		IsActive:     true,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	profile := &models.OwnerProfile{
		UserID:     user.ID,
		NationalID: uuid.NewString(),
		FirstName:  firstName,
		LastName:   lastName,
	}
	if err := conn.Create(profile).Error; err != nil {
		t.Fatalf("seed owner profile: %v", err)
	}
	return profile
}

func seedParcel(t *testing.T, conn *gorm.DB) *models.LandParcel {
	t.Helper()
	parcel := &models.LandParcel{
		CadastralNumber: "DHK-" + uuid.NewString()[:12],
		Location:        "Dhaka",
		Area:            1200,
		LandUseType:     "residential",
		IsActive:        true,
	}
	if err := conn.Create(parcel).Error; err != nil {
		t.Fatalf("seed parcel: %v", err)
	}
	return parcel
}

func seedRecord(t *testing.T, conn *gorm.DB, parcelID, ownerID uuid.UUID, pct int64, acquired time.Time) *models.OwnershipRecord {
	t.Helper()
	record := &models.OwnershipRecord{
		ParcelID:            parcelID,
		OwnerID:             ownerID,
		OwnershipType:       enums.OwnershipTypeSole,
		OwnershipPercentage: decimal.NewFromInt(pct),
		AcquisitionType:     enums.AcquisitionTypePurchase,
		AcquisitionDate:     acquired,
		VerificationStatus:  enums.VerificationStatusPending,
		IsCurrentOwner:      true,
	}
	if err := conn.Create(record).Error; err != nil {
		t.Fatalf("seed ownership record: %v", err)
	}
	return record
}

func staffActor() types.Actor {
	return types.Actor{UserID: uuid.New(), Role: enums.RoleOfficer}
}

func ownerActor(profileID uuid.UUID) types.Actor {
	return types.Actor{UserID: uuid.New(), Role: enums.RoleOwner, OwnerProfileID: &profileID}
}

func TestCreateEnforcesPercentageCap(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	parcel := seedParcel(t, conn)
	first := seedOwner(t, conn, "Rahim", "Uddin")
	second := seedOwner(t, conn, "Karim", "Uddin")

	created, err := svc.Create(ctx, staffActor(), CreateRecordInput{
		ParcelID:            parcel.ID,
		OwnerID:             first.ID,
		OwnershipPercentage: decimal.NewFromInt(60),
		AcquisitionType:     enums.AcquisitionTypePurchase,
		AcquisitionDate:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create first record: %v", err)
	}
	if !created.IsCurrentOwner || created.VerificationStatus != enums.VerificationStatusPending {
		t.Fatalf("unexpected new record state: %+v", created)
	}

	_, err = svc.Create(ctx, staffActor(), CreateRecordInput{
		ParcelID:            parcel.ID,
		OwnerID:             second.ID,
		OwnershipPercentage: decimal.NewFromInt(50),
		AcquisitionType:     enums.AcquisitionTypePurchase,
		AcquisitionDate:     time.Now().UTC(),
	})
	if err == nil {
		t.Fatal("expected percentage cap violation")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, err := svc.Create(ctx, staffActor(), CreateRecordInput{
		ParcelID:            parcel.ID,
		OwnerID:             second.ID,
		OwnershipPercentage: decimal.NewFromInt(40),
		AcquisitionType:     enums.AcquisitionTypeGift,
		AcquisitionDate:     time.Now().UTC(),
	}); err != nil {
		t.Fatalf("create within cap: %v", err)
	}
}

func TestCreateRejectsOutOfRangePercentage(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	parcel := seedParcel(t, conn)
	owner := seedOwner(t, conn, "Salma", "Begum")

	for _, pct := range []int64{0, -5, 101} {
		_, err := svc.Create(context.Background(), staffActor(), CreateRecordInput{
			ParcelID:            parcel.ID,
			OwnerID:             owner.ID,
			OwnershipPercentage: decimal.NewFromInt(pct),
			AcquisitionType:     enums.AcquisitionTypePurchase,
			AcquisitionDate:     time.Now().UTC(),
		})
		if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
			t.Fatalf("percentage %d: expected validation error, got %v", pct, err)
		}
	}
}

func TestCreateRequiresKnownReferences(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	owner := seedOwner(t, conn, "Jamal", "Hossain")

	_, err := svc.Create(context.Background(), staffActor(), CreateRecordInput{
		ParcelID:            uuid.New(),
		OwnerID:             owner.ID,
		OwnershipPercentage: decimal.NewFromInt(100),
		AcquisitionType:     enums.AcquisitionTypePurchase,
		AcquisitionDate:     time.Now().UTC(),
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown parcel, got %v", err)
	}
}

func TestTransferMovesOwnership(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	parcel := seedParcel(t, conn)
	seller := seedOwner(t, conn, "Rahim", "Uddin")
	buyer := seedOwner(t, conn, "Karim", "Uddin")
	source := seedRecord(t, conn, parcel.ID, seller.ID, 100, time.Now().UTC().Add(-24*time.Hour))

	transferred, err := svc.Transfer(ctx, staffActor(), source.ID, TransferInput{
		NewOwnerID:   buyer.ID,
		TransferType: enums.TransferTypeSale,
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if transferred.OwnerID != buyer.ID || !transferred.IsCurrentOwner {
		t.Fatalf("unexpected transferred record: %+v", transferred)
	}
	if transferred.AcquisitionType != enums.AcquisitionTypePurchase {
		t.Fatalf("expected sale to map to purchase, got %s", transferred.AcquisitionType)
	}
	if transferred.VerificationStatus != enums.VerificationStatusPending {
		t.Fatalf("new record must start pending, got %s", transferred.VerificationStatus)
	}

	var closed models.OwnershipRecord
	if err := conn.First(&closed, "id = ?", source.ID).Error; err != nil {
		t.Fatalf("reload source: %v", err)
	}
	if closed.IsCurrentOwner {
		t.Fatal("source record should no longer be current")
	}
	if closed.TransferToID == nil || *closed.TransferToID != buyer.ID {
		t.Fatalf("source record missing transfer target: %+v", closed)
	}
	if closed.TransferDate == nil || closed.EndDate == nil {
		t.Fatal("source record missing transfer/end dates")
	}
}

func TestTransferRejectsHistoricalRecord(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	parcel := seedParcel(t, conn)
	seller := seedOwner(t, conn, "Rahim", "Uddin")
	buyer := seedOwner(t, conn, "Karim", "Uddin")
	record := seedRecord(t, conn, parcel.ID, seller.ID, 100, time.Now().UTC())
	if err := conn.Model(record).Update("is_current_owner", false).Error; err != nil {
		t.Fatalf("mark historical: %v", err)
	}

	_, err := svc.Transfer(context.Background(), staffActor(), record.ID, TransferInput{
		NewOwnerID:   buyer.ID,
		TransferType: enums.TransferTypeSale,
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestTransferRollsBackOnPercentageViolation(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	parcel := seedParcel(t, conn)
	holder := seedOwner(t, conn, "Rahim", "Uddin")
	partner := seedOwner(t, conn, "Salma", "Begum")
	buyer := seedOwner(t, conn, "Karim", "Uddin")
	source := seedRecord(t, conn, parcel.ID, holder.ID, 50, time.Now().UTC())
	seedRecord(t, conn, parcel.ID, partner.ID, 50, time.Now().UTC())

	requested := decimal.NewFromInt(60)
	_, err := svc.Transfer(ctx, staffActor(), source.ID, TransferInput{
		NewOwnerID:   buyer.ID,
		TransferType: enums.TransferTypeSale,
		Percentage:   &requested,
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	var reloaded models.OwnershipRecord
	if err := conn.First(&reloaded, "id = ?", source.ID).Error; err != nil {
		t.Fatalf("reload source: %v", err)
	}
	if !reloaded.IsCurrentOwner {
		t.Fatal("failed transfer must leave the source record current")
	}
	var count int64
	if err := conn.Model(&models.OwnershipRecord{}).
		Where("parcel_id = ? AND owner_id = ?", parcel.ID, buyer.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count buyer records: %v", err)
	}
	if count != 0 {
		t.Fatal("failed transfer must not create a buyer record")
	}
}

func TestVerificationWorkflow(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	actor := staffActor()

	parcel := seedParcel(t, conn)
	owner := seedOwner(t, conn, "Jamal", "Hossain")
	record := seedRecord(t, conn, parcel.ID, owner.ID, 100, time.Now().UTC())

	reviewed, err := svc.SetVerificationStatus(ctx, actor, record.ID, enums.VerificationStatusUnderReview, nil)
	if err != nil {
		t.Fatalf("pending to under review: %v", err)
	}
	if reviewed.VerifiedByID != nil {
		t.Fatal("non-terminal transition must not stamp a verifier")
	}

	disputed, err := svc.SetVerificationStatus(ctx, actor, record.ID, enums.VerificationStatusDisputed, nil)
	if err != nil {
		t.Fatalf("under review to disputed: %v", err)
	}
	if disputed.VerificationStatus != enums.VerificationStatusDisputed {
		t.Fatalf("expected disputed, got %s", disputed.VerificationStatus)
	}

	notes := "deed confirmed at the registry office"
	verified, err := svc.SetVerificationStatus(ctx, actor, record.ID, enums.VerificationStatusVerified, &notes)
	if err != nil {
		t.Fatalf("disputed to verified: %v", err)
	}
	if verified.VerifiedByID == nil || *verified.VerifiedByID != actor.UserID {
		t.Fatal("terminal transition must stamp the verifier")
	}
	if verified.VerificationDate == nil {
		t.Fatal("terminal transition must stamp the verification date")
	}
	if verified.VerificationNotes == nil || *verified.VerificationNotes != notes {
		t.Fatalf("expected notes to persist, got %+v", verified.VerificationNotes)
	}

	_, err = svc.SetVerificationStatus(ctx, actor, record.ID, enums.VerificationStatusPending, nil)
	if pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict leaving terminal state, got %v", err)
	}
}

func TestListScopesOwnerRole(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	parcel := seedParcel(t, conn)
	mine := seedOwner(t, conn, "Rahim", "Uddin")
	other := seedOwner(t, conn, "Karim", "Uddin")
	myRecord := seedRecord(t, conn, parcel.ID, mine.ID, 50, time.Now().UTC())
	theirRecord := seedRecord(t, conn, parcel.ID, other.ID, 50, time.Now().UTC())

	records, err := svc.List(ctx, ownerActor(mine.ID), ListFilter{})
	if err != nil {
		t.Fatalf("list as owner: %v", err)
	}
	if len(records) != 1 || records[0].ID != myRecord.ID {
		t.Fatalf("owner must only see their own records, got %d", len(records))
	}

	all, err := svc.List(ctx, staffActor(), ListFilter{})
	if err != nil {
		t.Fatalf("list as staff: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("staff must see all records, got %d", len(all))
	}

	empty, err := svc.List(ctx, types.Actor{UserID: uuid.New(), Role: enums.RoleOwner}, ListFilter{})
	if err != nil {
		t.Fatalf("list without profile: %v", err)
	}
	if len(empty) != 0 {
		t.Fatal("owner without a profile must get an empty list")
	}

	if _, err := svc.Get(ctx, ownerActor(mine.ID), theirRecord.ID); pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for another owner's record, got %v", err)
	}
}

func TestCurrentOwnersOrderedByAcquisition(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	parcel := seedParcel(t, conn)
	older := seedOwner(t, conn, "Salma", "Begum")
	newer := seedOwner(t, conn, "Jamal", "Hossain")
	seedRecord(t, conn, parcel.ID, older.ID, 40, time.Now().UTC().Add(-48*time.Hour))
	seedRecord(t, conn, parcel.ID, newer.ID, 60, time.Now().UTC())

	historical := seedOwner(t, conn, "Rahim", "Uddin")
	past := seedRecord(t, conn, parcel.ID, historical.ID, 100, time.Now().UTC().Add(-96*time.Hour))
	if err := conn.Model(past).Update("is_current_owner", false).Error; err != nil {
		t.Fatalf("mark historical: %v", err)
	}

	owners, err := svc.CurrentOwners(ctx, parcel.ID)
	if err != nil {
		t.Fatalf("current owners: %v", err)
	}
	if len(owners) != 2 {
		t.Fatalf("expected 2 current owners, got %d", len(owners))
	}
	if owners[0].OwnerID != newer.ID {
		t.Fatal("current owners must be ordered newest acquisition first")
	}

	primary, err := svc.PrimaryOwner(ctx, parcel.ID)
	if err != nil {
		t.Fatalf("primary owner: %v", err)
	}
	if primary == nil || primary.OwnerID != newer.ID {
		t.Fatalf("unexpected primary owner: %+v", primary)
	}

	none, err := svc.PrimaryOwner(ctx, uuid.New())
	if err != nil {
		t.Fatalf("primary owner of empty parcel: %v", err)
	}
	if none != nil {
		t.Fatal("parcel without current records has no primary owner")
	}
}

func TestOwnedParcelsAreDistinct(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	owner := seedOwner(t, conn, "Rahim", "Uddin")
	first := seedParcel(t, conn)
	second := seedParcel(t, conn)
	seedRecord(t, conn, first.ID, owner.ID, 50, time.Now().UTC())
	seedRecord(t, conn, first.ID, owner.ID, 30, time.Now().UTC())
	seedRecord(t, conn, second.ID, owner.ID, 100, time.Now().UTC())

	parcels, err := svc.OwnedParcels(ctx, owner.ID)
	if err != nil {
		t.Fatalf("owned parcels: %v", err)
	}
	if len(parcels) != 2 {
		t.Fatalf("expected 2 distinct parcels, got %d", len(parcels))
	}
}

func TestHistoryByOwnerForbiddenForOthers(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	mine := seedOwner(t, conn, "Rahim", "Uddin")
	other := seedOwner(t, conn, "Karim", "Uddin")

	if _, err := svc.HistoryByOwner(ctx, ownerActor(mine.ID), other.ID); pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := svc.HistoryByOwner(ctx, ownerActor(mine.ID), mine.ID); err != nil {
		t.Fatalf("own history: %v", err)
	}
	if _, err := svc.HistoryByOwner(ctx, staffActor(), other.ID); err != nil {
		t.Fatalf("staff history: %v", err)
	}
}
