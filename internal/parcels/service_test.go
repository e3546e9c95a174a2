package parcels

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/internal/ownership"
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

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), ownership.NewRepository(conn))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func staffActor() types.Actor {
	return types.Actor{UserID: uuid.New(), Role: enums.RoleOfficer}
}

func seedParcel(t *testing.T, conn *gorm.DB, mutate func(p *models.LandParcel)) *models.LandParcel {
	t.Helper()
	parcel := &models.LandParcel{
		CadastralNumber: "DHK-" + uuid.NewString()[:12],
		Location:        "Dhaka",
		Area:            1000,
		LandUseType:     "residential",
		Status:          enums.ParcelStatusActive,
		IsActive:        true,
	}
	if mutate != nil {
		mutate(parcel)
	}
	if err := conn.Create(parcel).Error; err != nil {
		t.Fatalf("seed parcel: %v", err)
	}
	return parcel
}

func TestCreateValidatesAndDefaults(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	_, err := svc.Create(ctx, types.Actor{UserID: uuid.New(), Role: enums.RoleOwner}, CreateParcelInput{})
	if pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for owner role, got %v", err)
	}

	_, err = svc.Create(ctx, staffActor(), CreateParcelInput{Location: "Dhaka", Area: 100})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for missing cadastral number, got %v", err)
	}
	_, err = svc.Create(ctx, staffActor(), CreateParcelInput{CadastralNumber: "DHK-0001", Location: "Dhaka", Area: -5})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for non-positive area, got %v", err)
	}

	created, err := svc.Create(ctx, staffActor(), CreateParcelInput{
		CadastralNumber: "DHK-0001",
		Location:        "Gulshan, Dhaka",
		Area:            1200,
		LandUseType:     "residential",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != enums.ParcelStatusActive || created.DevelopmentStatus != enums.DevelopmentStatusUndeveloped {
		t.Fatalf("unexpected defaults: %+v", created)
	}
	if !created.IsActive {
		t.Fatal("new parcels must start active")
	}

	_, err = svc.Create(ctx, staffActor(), CreateParcelInput{
		CadastralNumber: "DHK-0001",
		Location:        "Banani, Dhaka",
		Area:            900,
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate cadastral number, got %v", err)
	}
}

func TestListFilters(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	actor := staffActor()

	commercial := enums.LandUseZoneCommercial
	value := decimal.NewFromInt(5000000)
	seedParcel(t, conn, func(p *models.LandParcel) {
		p.CadastralNumber = "DHK-1001"
		p.Location = "Motijheel, Dhaka"
		p.LandUseZone = &commercial
		p.CurrentMarketValue = &value
		p.Area = 2500
	})
	seedParcel(t, conn, func(p *models.LandParcel) {
		p.CadastralNumber = "CTG-2001"
		p.Location = "Agrabad, Chattogram"
		p.Status = enums.ParcelStatusPending
		p.Area = 700
	})

	pending := enums.ParcelStatusPending
	byStatus, err := svc.List(ctx, actor, ListFilter{Status: &pending})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].CadastralNumber != "CTG-2001" {
		t.Fatalf("unexpected status filter result: %+v", byStatus)
	}

	byZone, err := svc.List(ctx, actor, ListFilter{LandUseZone: &commercial})
	if err != nil {
		t.Fatalf("list by zone: %v", err)
	}
	if len(byZone) != 1 || byZone[0].CadastralNumber != "DHK-1001" {
		t.Fatalf("unexpected zone filter result: %+v", byZone)
	}

	bySearch, err := svc.List(ctx, actor, ListFilter{Search: "agrabad"})
	if err != nil {
		t.Fatalf("list by search: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].CadastralNumber != "CTG-2001" {
		t.Fatalf("unexpected search result: %+v", bySearch)
	}

	minArea := 1000.0
	byArea, err := svc.List(ctx, actor, ListFilter{AreaGTE: &minArea, Ordering: "-area"})
	if err != nil {
		t.Fatalf("list by area: %v", err)
	}
	if len(byArea) != 1 || byArea[0].CadastralNumber != "DHK-1001" {
		t.Fatalf("unexpected area filter result: %+v", byArea)
	}

	if _, err := svc.List(ctx, actor, ListFilter{Ordering: "password_hash"}); pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for unknown ordering, got %v", err)
	}
}

func TestListByOwner(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	user := &models.User{Username: "rahim.uddin", PasswordHash: "x", Role: enums.RoleOwner, IsActive: true}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	profile := &models.OwnerProfile{UserID: user.ID, NationalID: "1990123456789", FirstName: "Rahim", LastName: "Uddin"}
	if err := conn.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	owned := seedParcel(t, conn, nil)
	seedParcel(t, conn, nil)
	record := &models.OwnershipRecord{
		ParcelID:            owned.ID,
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

	byOwner, err := svc.List(ctx, staffActor(), ListFilter{OwnerID: &profile.ID})
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(byOwner) != 1 || byOwner[0].ID != owned.ID {
		t.Fatalf("unexpected owner filter result: %+v", byOwner)
	}

	byName, err := svc.List(ctx, staffActor(), ListFilter{OwnerName: "rahim"})
	if err != nil {
		t.Fatalf("list by owner name: %v", err)
	}
	if len(byName) != 1 || byName[0].ID != owned.ID {
		t.Fatalf("unexpected owner-name filter result: %+v", byName)
	}

	mine, err := svc.MyParcels(ctx, types.Actor{UserID: user.ID, Role: enums.RoleOwner, OwnerProfileID: &profile.ID})
	if err != nil {
		t.Fatalf("my parcels: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != owned.ID {
		t.Fatalf("unexpected my-parcels result: %+v", mine)
	}

	empty, err := svc.MyParcels(ctx, types.Actor{UserID: uuid.New(), Role: enums.RoleOwner})
	if err != nil {
		t.Fatalf("my parcels without profile: %v", err)
	}
	if len(empty) != 0 {
		t.Fatal("actor without a profile must get an empty list")
	}
}

func TestStatsAggregates(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	value := decimal.NewFromInt(3000000)
	seedParcel(t, conn, func(p *models.LandParcel) {
		p.CurrentMarketValue = &value
		p.Area = 1500
	})
	seedParcel(t, conn, func(p *models.LandParcel) {
		p.Status = enums.ParcelStatusPending
		p.Area = 500
	})
	seedParcel(t, conn, func(p *models.LandParcel) {
		p.Status = enums.ParcelStatusInactive
		p.IsActive = false
		p.Area = 250
	})

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalParcels != 3 || stats.ActiveParcels != 1 || stats.PendingParcels != 1 || stats.InactiveParcels != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if !stats.TotalValue.Equal(value) {
		t.Fatalf("expected null-safe value sum %s, got %s", value, stats.TotalValue)
	}
	if stats.TotalArea != 2250 {
		t.Fatalf("expected area sum 2250, got %v", stats.TotalArea)
	}
}
