package transactions

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/internal/owners"
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
		&models.LandTransaction{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(
		NewRepository(conn),
		parcels.NewRepository(conn),
		owners.NewRepository(conn),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func staffActor() types.Actor {
	return types.Actor{UserID: uuid.New(), Role: enums.RoleOfficer}
}

func seedOwner(t *testing.T, conn *gorm.DB) *models.OwnerProfile {
	t.Helper()
	user := &models.User{
		Username:     "owner." + uuid.NewString()[:8],
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
		FirstName:  "Karim",
		LastName:   "Mia",
	}
	if err := conn.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return profile
}

func seedParcel(t *testing.T, conn *gorm.DB) *models.LandParcel {
	t.Helper()
	parcel := &models.LandParcel{
		CadastralNumber: "DHK-" + uuid.NewString()[:12],
		Location:        "Dhaka",
		Area:            450,
		LandUseType:     "residential",
		IsActive:        true,
	}
	if err := conn.Create(parcel).Error; err != nil {
		t.Fatalf("seed parcel: %v", err)
	}
	return parcel
}

func TestCreateTransactionValidates(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	parcel := seedParcel(t, conn)
	buyer := seedOwner(t, conn)
	seller := seedOwner(t, conn)

	_, err := svc.Create(ctx, types.Actor{UserID: uuid.New(), Role: enums.RoleOwner}, CreateTransactionInput{
		ParcelID:        parcel.ID,
		TransactionType: enums.TransactionTypeSale,
		Amount:          decimal.NewFromInt(100),
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for owner role, got %v", err)
	}

	_, err = svc.Create(ctx, staffActor(), CreateTransactionInput{
		ParcelID:        parcel.ID,
		TransactionType: enums.TransactionType("barter"),
		Amount:          decimal.NewFromInt(100),
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for bad type, got %v", err)
	}

	_, err = svc.Create(ctx, staffActor(), CreateTransactionInput{
		ParcelID:        parcel.ID,
		TransactionType: enums.TransactionTypeSale,
		Amount:          decimal.NewFromInt(-5),
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for negative amount, got %v", err)
	}

	unknown := uuid.New()
	_, err = svc.Create(ctx, staffActor(), CreateTransactionInput{
		ParcelID:        parcel.ID,
		BuyerID:         &unknown,
		TransactionType: enums.TransactionTypeSale,
		Amount:          decimal.NewFromInt(100),
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown buyer, got %v", err)
	}

	created, err := svc.Create(ctx, staffActor(), CreateTransactionInput{
		ParcelID:        parcel.ID,
		BuyerID:         &buyer.ID,
		SellerID:        &seller.ID,
		TransactionType: enums.TransactionTypeSale,
		Amount:          decimal.NewFromFloat(2500000.50),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != "pending" {
		t.Fatalf("expected pending default status, got %q", created.Status)
	}

	status := "Completed"
	updated, err := svc.Update(ctx, staffActor(), created.ID, UpdateTransactionInput{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != "completed" {
		t.Fatalf("expected lowercased status, got %q", updated.Status)
	}
}

func TestListTransactionsIsStaffOnly(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	parcel := seedParcel(t, conn)

	if _, err := svc.Create(ctx, staffActor(), CreateTransactionInput{
		ParcelID:        parcel.ID,
		TransactionType: enums.TransactionTypeLease,
		Amount:          decimal.NewFromInt(12000),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.List(ctx, types.Actor{UserID: uuid.New(), Role: enums.RoleOwner}, ListFilter{}); pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for owner role, got %v", err)
	}

	leaseType := enums.TransactionTypeLease
	listed, err := svc.List(ctx, staffActor(), ListFilter{ParcelID: &parcel.ID, TransactionType: &leaseType})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(listed))
	}
}

func TestPaymentsScopeToPayer(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	parcel := seedParcel(t, conn)
	payer := seedOwner(t, conn)
	other := seedOwner(t, conn)

	mine, err := svc.CreatePayment(ctx, staffActor(), CreatePaymentInput{
		ParcelID:    &parcel.ID,
		PayerID:     &payer.ID,
		Amount:      decimal.NewFromInt(500),
		PaymentType: enums.PaymentTypeTax,
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	theirs, err := svc.CreatePayment(ctx, staffActor(), CreatePaymentInput{
		ParcelID:    &parcel.ID,
		PayerID:     &other.ID,
		Amount:      decimal.NewFromInt(900),
		PaymentType: enums.PaymentTypeFee,
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}

	payerActor := types.Actor{UserID: payer.UserID, Role: enums.RoleOwner, OwnerProfileID: &payer.ID}
	listed, err := svc.ListPayments(ctx, payerActor, PaymentListFilter{})
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != mine.ID {
		t.Fatalf("expected payer to see only own payment, got %+v", listed)
	}

	if _, err := svc.GetPayment(ctx, payerActor, theirs.ID); pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for cross-owner payment, got %v", err)
	}

	noProfile := types.Actor{UserID: uuid.New(), Role: enums.RoleOwner}
	empty, err := svc.ListPayments(ctx, noProfile, PaymentListFilter{})
	if err != nil {
		t.Fatalf("list payments without profile: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list without profile, got %d", len(empty))
	}

	if _, err := svc.CreatePayment(ctx, payerActor, CreatePaymentInput{
		Amount:      decimal.NewFromInt(100),
		PaymentType: enums.PaymentTypeTax,
	}); pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for owner mutation, got %v", err)
	}

	staffView, err := svc.ListPayments(ctx, staffActor(), PaymentListFilter{})
	if err != nil {
		t.Fatalf("staff list payments: %v", err)
	}
	if len(staffView) != 2 {
		t.Fatalf("expected staff to see all payments, got %d", len(staffView))
	}
}
