package transactions

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// TransactionDTO is the API shape of a land transaction.
type TransactionDTO struct {
	ID              uuid.UUID             `json:"id"`
	ParcelID        uuid.UUID             `json:"parcel_id"`
	BuyerID         *uuid.UUID            `json:"buyer_id,omitempty"`
	SellerID        *uuid.UUID            `json:"seller_id,omitempty"`
	TransactionType enums.TransactionType `json:"transaction_type"`
	TransactionDate time.Time             `json:"transaction_date"`
	Amount          decimal.Decimal       `json:"amount"`
	Status          string                `json:"status"`
}

// PaymentDTO is the API shape of a registry payment.
type PaymentDTO struct {
	ID          uuid.UUID         `json:"id"`
	ParcelID    *uuid.UUID        `json:"parcel_id,omitempty"`
	PayerID     *uuid.UUID        `json:"payer_id,omitempty"`
	Amount      decimal.Decimal   `json:"amount"`
	PaymentType enums.PaymentType `json:"payment_type"`
	PaymentDate time.Time         `json:"payment_date"`
	Status      string            `json:"status"`
}

// CreateTransactionInput captures a new land transaction.
type CreateTransactionInput struct {
	ParcelID        uuid.UUID
	BuyerID         *uuid.UUID
	SellerID        *uuid.UUID
	TransactionType enums.TransactionType
	Amount          decimal.Decimal
	Status          *string
}

// UpdateTransactionInput carries the mutable transaction fields.
type UpdateTransactionInput struct {
	Amount *decimal.Decimal
	Status *string
}

// CreatePaymentInput captures a new payment.
type CreatePaymentInput struct {
	ParcelID    *uuid.UUID
	PayerID     *uuid.UUID
	Amount      decimal.Decimal
	PaymentType enums.PaymentType
	Status      *string
}

// UpdatePaymentInput carries the mutable payment fields.
type UpdatePaymentInput struct {
	Amount *decimal.Decimal
	Status *string
}

func toTransactionDTO(transaction *models.LandTransaction) *TransactionDTO {
	if transaction == nil {
		return nil
	}
	return &TransactionDTO{
		ID:              transaction.ID,
		ParcelID:        transaction.ParcelID,
		BuyerID:         transaction.BuyerID,
		SellerID:        transaction.SellerID,
		TransactionType: transaction.TransactionType,
		TransactionDate: transaction.TransactionDate,
		Amount:          transaction.Amount,
		Status:          transaction.Status,
	}
}

func toPaymentDTO(payment *models.Payment) *PaymentDTO {
	if payment == nil {
		return nil
	}
	return &PaymentDTO{
		ID:          payment.ID,
		ParcelID:    payment.ParcelID,
		PayerID:     payment.PayerID,
		Amount:      payment.Amount,
		PaymentType: payment.PaymentType,
		PaymentDate: payment.PaymentDate,
		Status:      payment.Status,
	}
}
