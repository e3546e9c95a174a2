package owners

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

type gormUsersDirectory struct{ db *gorm.DB }

func (d gormUsersDirectory) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type stubLinker struct{}

func (stubLinker) ReadURL(key string) (string, error) {
	return "https://signed.example.com/" + key, nil
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(
		NewRepository(conn),
		gormUsersDirectory{db: conn},
		ownership.NewRepository(conn),
		stubLinker{},
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedUser(t *testing.T, conn *gorm.DB, username string, role enums.Role) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func adminActor() types.Actor {
	return types.Actor{UserID: uuid.New(), Role: enums.RoleAdmin}
}

func TestCreateValidatesTargetUser(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	officer := seedUser(t, conn, "officer.rahman", enums.RoleOfficer)

	_, err := svc.Create(ctx, types.Actor{UserID: uuid.New(), Role: enums.RoleOfficer}, CreateOwnerInput{})
	if pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for non-admin, got %v", err)
	}

	_, err = svc.Create(ctx, adminActor(), CreateOwnerInput{
		UserID:     uuid.New(),
		NationalID: "1990123456789",
		FirstName:  "Rahim",
		LastName:   "Uddin",
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}

	_, err = svc.Create(ctx, adminActor(), CreateOwnerInput{
		UserID:     officer.ID,
		NationalID: "1990123456789",
		FirstName:  "Rahim",
		LastName:   "Uddin",
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for non-owner role, got %v", err)
	}
}

func TestCreateRejectsDuplicates(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	first := seedUser(t, conn, "rahim.uddin", enums.RoleOwner)
	second := seedUser(t, conn, "karim.uddin", enums.RoleOwner)

	created, err := svc.Create(ctx, adminActor(), CreateOwnerInput{
		UserID:     first.ID,
		NationalID: "1990123456789",
		FirstName:  "Rahim",
		LastName:   "Uddin",
	})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if created.Status != enums.OwnerStatusActive || created.OwnerType != enums.OwnerTypeIndividual {
		t.Fatalf("unexpected defaults: %+v", created)
	}

	_, err = svc.Create(ctx, adminActor(), CreateOwnerInput{
		UserID:     first.ID,
		NationalID: "1990999999999",
		FirstName:  "Rahim",
		LastName:   "Uddin",
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for second profile on one user, got %v", err)
	}

	_, err = svc.Create(ctx, adminActor(), CreateOwnerInput{
		UserID:     second.ID,
		NationalID: "1990123456789",
		FirstName:  "Karim",
		LastName:   "Uddin",
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate national_id, got %v", err)
	}
}

func TestMeEmbedsOwnedLandsAndSignedImages(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	user := seedUser(t, conn, "salma.begum", enums.RoleOwner)
	picture := "owners/salma/profile.png"
	profile := &models.OwnerProfile{
		UserID:         user.ID,
		NationalID:     "1988123456789",
		FirstName:      "Salma",
		LastName:       "Begum",
		ProfilePicture: &picture,
	}
	if err := conn.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	parcel := &models.LandParcel{
		CadastralNumber: "DHK-0099",
		Location:        "Mirpur, Dhaka",
		Area:            800,
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
		AcquisitionType:     enums.AcquisitionTypeInheritance,
		AcquisitionDate:     time.Now().UTC(),
		VerificationStatus:  enums.VerificationStatusPending,
		IsCurrentOwner:      true,
	}
	if err := conn.Create(record).Error; err != nil {
		t.Fatalf("seed record: %v", err)
	}

	me, err := svc.Me(ctx, types.Actor{UserID: user.ID, Role: enums.RoleOwner, OwnerProfileID: &profile.ID})
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.Username != "salma.begum" || me.FullName != "Salma Begum" {
		t.Fatalf("unexpected identity fields: %+v", me)
	}
	if len(me.OwnedLands) != 1 || me.OwnedLands[0].CadastralNumber != "DHK-0099" {
		t.Fatalf("expected one owned land, got %+v", me.OwnedLands)
	}
	if me.ProfilePictureURL == nil || *me.ProfilePictureURL != "https://signed.example.com/"+picture {
		t.Fatalf("expected signed picture url, got %+v", me.ProfilePictureURL)
	}

	_, err = svc.Me(ctx, types.Actor{UserID: uuid.New(), Role: enums.RoleOwner})
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found without a profile, got %v", err)
	}
}

func TestSearchByUsername(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	user := seedUser(t, conn, "jamal.hossain", enums.RoleOwner)
	profile := &models.OwnerProfile{
		UserID:     user.ID,
		NationalID: "1979123456789",
		FirstName:  "Jamal",
		LastName:   "Hossain",
	}
	if err := conn.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	if _, err := svc.SearchByUsername(ctx, adminActor(), "  "); pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for blank username, got %v", err)
	}
	if _, err := svc.SearchByUsername(ctx, types.Actor{UserID: user.ID, Role: enums.RoleOwner}, "jamal.hossain"); pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for owner role, got %v", err)
	}

	none, err := svc.SearchByUsername(ctx, adminActor(), "nobody")
	if err != nil {
		t.Fatalf("search unknown username: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty result, got %d", len(none))
	}

	found, err := svc.SearchByUsername(ctx, adminActor(), "jamal.hossain")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].ID != profile.ID {
		t.Fatalf("expected the seeded profile, got %+v", found)
	}
}

func TestListScopesOwnerRole(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	mine := seedUser(t, conn, "rahim.uddin", enums.RoleOwner)
	other := seedUser(t, conn, "karim.uddin", enums.RoleOwner)
	for i, user := range []*models.User{mine, other} {
		profile := &models.OwnerProfile{
			UserID:     user.ID,
			NationalID: fmt.Sprintf("19901234567%02d", i),
			FirstName:  "Owner",
			LastName:   fmt.Sprintf("Number%d", i),
		}
		if err := conn.Create(profile).Error; err != nil {
			t.Fatalf("seed profile: %v", err)
		}
	}

	ownOnly, err := svc.List(ctx, types.Actor{UserID: mine.ID, Role: enums.RoleOwner}, ListFilter{})
	if err != nil {
		t.Fatalf("list as owner: %v", err)
	}
	if len(ownOnly) != 1 || ownOnly[0].UserID != mine.ID {
		t.Fatalf("owner must only see their own profile, got %d", len(ownOnly))
	}

	all, err := svc.List(ctx, adminActor(), ListFilter{})
	if err != nil {
		t.Fatalf("list as admin: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin must see all profiles, got %d", len(all))
	}

	empty, err := svc.List(ctx, types.Actor{UserID: uuid.New(), Role: enums.RoleOwner}, ListFilter{})
	if err != nil {
		t.Fatalf("list without profile: %v", err)
	}
	if len(empty) != 0 {
		t.Fatal("owner without a profile must get an empty list")
	}
}
