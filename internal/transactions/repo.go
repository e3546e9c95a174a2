package transactions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository handles land-transaction and payment persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to transaction operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows transaction listings.
type ListFilter struct {
	ParcelID        *uuid.UUID
	BuyerID         *uuid.UUID
	SellerID        *uuid.UUID
	TransactionType *enums.TransactionType
	Status          *string
}

// PaymentListFilter narrows payment listings.
type PaymentListFilter struct {
	ParcelID    *uuid.UUID
	PayerID     *uuid.UUID
	PaymentType *enums.PaymentType
	Status      *string
}

// Create persists a new land transaction.
func (r *Repository) Create(ctx context.Context, transaction *models.LandTransaction) (*models.LandTransaction, error) {
	if err := r.db.WithContext(ctx).Create(transaction).Error; err != nil {
		return nil, err
	}
	return transaction, nil
}

// FindByID loads a transaction by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.LandTransaction, error) {
	var transaction models.LandTransaction
	if err := r.db.WithContext(ctx).First(&transaction, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

// List returns transactions matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.LandTransaction, error) {
	query := r.db.WithContext(ctx).Model(&models.LandTransaction{})

	if filter.ParcelID != nil {
		query = query.Where("parcel_id = ?", *filter.ParcelID)
	}
	if filter.BuyerID != nil {
		query = query.Where("buyer_id = ?", *filter.BuyerID)
	}
	if filter.SellerID != nil {
		query = query.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.TransactionType != nil {
		query = query.Where("transaction_type = ?", *filter.TransactionType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var transactions []models.LandTransaction
	if err := query.Order("transaction_date DESC").Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// Update saves the provided transaction.
func (r *Repository) Update(ctx context.Context, transaction *models.LandTransaction) error {
	if transaction == nil {
		return fmt.Errorf("transaction is required")
	}
	return r.db.WithContext(ctx).Save(transaction).Error
}

// Delete removes a transaction by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.LandTransaction{}, "id = ?", id).Error
}

// CreatePayment persists a new payment row.
func (r *Repository) CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// FindPaymentByID loads a payment by id.
func (r *Repository) FindPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListPayments returns payments matching the filter, newest first.
func (r *Repository) ListPayments(ctx context.Context, filter PaymentListFilter) ([]models.Payment, error) {
	query := r.db.WithContext(ctx).Model(&models.Payment{})

	if filter.ParcelID != nil {
		query = query.Where("parcel_id = ?", *filter.ParcelID)
	}
	if filter.PayerID != nil {
		query = query.Where("payer_id = ?", *filter.PayerID)
	}
	if filter.PaymentType != nil {
		query = query.Where("payment_type = ?", *filter.PaymentType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var payments []models.Payment
	if err := query.Order("payment_date DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdatePayment saves the provided payment.
func (r *Repository) UpdatePayment(ctx context.Context, payment *models.Payment) error {
	if payment == nil {
		return fmt.Errorf("payment is required")
	}
	return r.db.WithContext(ctx).Save(payment).Error
}

// DeletePayment removes a payment by id.
func (r *Repository) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Payment{}, "id = ?", id).Error
}
