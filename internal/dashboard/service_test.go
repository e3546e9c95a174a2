package dashboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/internal/owners"
	"github.com/sadmanhossain/urbanland-backend/internal/parcels"
	"github.com/sadmanhossain/urbanland-backend/internal/users"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
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
	); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(
		users.NewRepository(conn),
		owners.NewRepository(conn),
		parcels.NewRepository(conn),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedUser(t *testing.T, conn *gorm.DB, role enums.Role) *models.User {
	t.Helper()
	user := &models.User{
		Username:     "user." + uuid.NewString()[:8],
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedProfile(t *testing.T, conn *gorm.DB, user *models.User, first string) *models.OwnerProfile {
	t.Helper()
	profile := &models.OwnerProfile{
		UserID:     user.ID,
		NationalID: uuid.NewString(),
		FirstName:  first,
		LastName:   "Begum",
	}
	if err := conn.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return profile
}

func seedParcel(t *testing.T, conn *gorm.DB, status enums.ParcelStatus, value int64) {
	t.Helper()
	v := decimal.NewFromInt(value)
	parcel := &models.LandParcel{
		CadastralNumber:    "DHK-" + uuid.NewString()[:12],
		Location:           "Dhaka",
		Area:               300,
		LandUseType:        "residential",
		Status:             status,
		CurrentMarketValue: &v,
		IsActive:           status == enums.ParcelStatusActive,
	}
	if err := conn.Create(parcel).Error; err != nil {
		t.Fatalf("seed parcel: %v", err)
	}
}

func TestStatsAggregates(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	admin := seedUser(t, conn, enums.RoleAdmin)
	seedUser(t, conn, enums.RoleOfficer)
	ownerA := seedUser(t, conn, enums.RoleOwner)
	ownerB := seedUser(t, conn, enums.RoleOwner)
	seedProfile(t, conn, ownerA, "Salma")

	seedParcel(t, conn, enums.ParcelStatusActive, 1000000)
	seedParcel(t, conn, enums.ParcelStatusInactive, 250000)
	seedParcel(t, conn, enums.ParcelStatusPending, 0)

	stats, err := svc.Stats(ctx, types.Actor{UserID: admin.ID, Role: enums.RoleAdmin})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TotalUsers != 4 {
		t.Fatalf("expected 4 users, got %d", stats.TotalUsers)
	}
	if stats.UserDistribution.Owners != 2 || stats.UserDistribution.Officers != 1 || stats.UserDistribution.Admins != 1 {
		t.Fatalf("unexpected distribution: %+v", stats.UserDistribution)
	}
	if stats.TotalOwners != 2 || stats.TotalRegisteredOwners != 1 {
		t.Fatalf("unexpected owner counts: %+v", stats)
	}
	if stats.TotalLands != 3 || stats.ActiveLands != 1 || stats.InactiveLands != 1 || stats.PendingLands != 1 {
		t.Fatalf("unexpected land counts: %+v", stats)
	}
	if !stats.LandValue.Equal(decimal.NewFromInt(1250000)) {
		t.Fatalf("expected land value 1250000, got %s", stats.LandValue)
	}
	if len(stats.RecentActivities) != 1 || stats.RecentActivities[0].FullName != "Salma Begum" {
		t.Fatalf("unexpected recent activities: %+v", stats.RecentActivities)
	}
	if stats.RecentActivities[0].Username != ownerA.Username {
		t.Fatalf("expected username %q, got %q", ownerA.Username, stats.RecentActivities[0].Username)
	}
	_ = ownerB
}

func TestStatsSoftDeniesNonStaff(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	owner := seedUser(t, conn, enums.RoleOwner)
	seedParcel(t, conn, enums.ParcelStatusActive, 900000)

	stats, err := svc.Stats(ctx, types.Actor{UserID: owner.ID, Role: enums.RoleOwner})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalUsers != 0 || stats.TotalLands != 0 || !stats.LandValue.IsZero() {
		t.Fatalf("expected zeroed payload, got %+v", stats)
	}
	if stats.RecentActivities == nil || len(stats.RecentActivities) != 0 {
		t.Fatalf("expected empty activity list, got %+v", stats.RecentActivities)
	}
}

func TestStatsRecentLimitedToFive(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	admin := seedUser(t, conn, enums.RoleAdmin)
	for i := 0; i < 7; i++ {
		user := seedUser(t, conn, enums.RoleOwner)
		seedProfile(t, conn, user, fmt.Sprintf("Owner%d", i))
	}

	stats, err := svc.Stats(ctx, types.Actor{UserID: admin.ID, Role: enums.RoleAdmin})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats.RecentActivities) != 5 {
		t.Fatalf("expected 5 recent activities, got %d", len(stats.RecentActivities))
	}
}
