package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/api/responses"
	"github.com/sadmanhossain/urbanland-backend/api/validators"
	"github.com/sadmanhossain/urbanland-backend/internal/transactions"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

func transactionListFilter(r *http.Request) (transactions.ListFilter, error) {
	filter := transactions.ListFilter{}

	parcelID, err := validators.ParseQueryUUID(r, "parcel_id")
	if err != nil {
		return filter, err
	}
	if parcelID != uuid.Nil {
		filter.ParcelID = &parcelID
	}

	buyerID, err := validators.ParseQueryUUID(r, "buyer_id")
	if err != nil {
		return filter, err
	}
	if buyerID != uuid.Nil {
		filter.BuyerID = &buyerID
	}

	sellerID, err := validators.ParseQueryUUID(r, "seller_id")
	if err != nil {
		return filter, err
	}
	if sellerID != uuid.Nil {
		filter.SellerID = &sellerID
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("transaction_type")); raw != "" {
		transactionType := enums.TransactionType(raw)
		if !transactionType.IsValid() {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction_type filter")
		}
		filter.TransactionType = &transactionType
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		filter.Status = &raw
	}
	return filter, nil
}

// TransactionsList returns recorded land transactions.
func TransactionsList(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter, err := transactionListFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := svc.List(r.Context(), actor, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

// TransactionsGet returns a single transaction.
func TransactionsGet(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transaction, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transaction)
	}
}

type transactionCreateRequest struct {
	ParcelID        uuid.UUID             `json:"parcel_id" validate:"required"`
	BuyerID         *uuid.UUID            `json:"buyer_id,omitempty"`
	SellerID        *uuid.UUID            `json:"seller_id,omitempty"`
	TransactionType enums.TransactionType `json:"transaction_type" validate:"required"`
	Amount          decimal.Decimal       `json:"amount" validate:"required"`
	Status          *string               `json:"status,omitempty"`
}

// TransactionsCreate records a new land transaction.
func TransactionsCreate(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload transactionCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transaction, err := svc.Create(r.Context(), actor, transactions.CreateTransactionInput{
			ParcelID:        payload.ParcelID,
			BuyerID:         payload.BuyerID,
			SellerID:        payload.SellerID,
			TransactionType: payload.TransactionType,
			Amount:          payload.Amount,
			Status:          payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, transaction)
	}
}

type transactionUpdateRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Status *string          `json:"status,omitempty"`
}

// TransactionsUpdate adjusts a transaction's amount or status.
func TransactionsUpdate(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload transactionUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transaction, err := svc.Update(r.Context(), actor, id, transactions.UpdateTransactionInput{
			Amount: payload.Amount,
			Status: payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transaction)
	}
}

// TransactionsDelete removes a transaction.
func TransactionsDelete(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func paymentListFilter(r *http.Request) (transactions.PaymentListFilter, error) {
	filter := transactions.PaymentListFilter{}

	parcelID, err := validators.ParseQueryUUID(r, "parcel_id")
	if err != nil {
		return filter, err
	}
	if parcelID != uuid.Nil {
		filter.ParcelID = &parcelID
	}

	payerID, err := validators.ParseQueryUUID(r, "payer_id")
	if err != nil {
		return filter, err
	}
	if payerID != uuid.Nil {
		filter.PayerID = &payerID
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("payment_type")); raw != "" {
		paymentType := enums.PaymentType(raw)
		if !paymentType.IsValid() {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment_type filter")
		}
		filter.PaymentType = &paymentType
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		filter.Status = &raw
	}
	return filter, nil
}

// PaymentsList returns payments; owners only see their own.
func PaymentsList(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter, err := paymentListFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := svc.ListPayments(r.Context(), actor, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

// PaymentsGet returns a single payment.
func PaymentsGet(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.GetPayment(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payment)
	}
}

type paymentCreateRequest struct {
	ParcelID    *uuid.UUID        `json:"parcel_id,omitempty"`
	PayerID     *uuid.UUID        `json:"payer_id,omitempty"`
	Amount      decimal.Decimal   `json:"amount" validate:"required"`
	PaymentType enums.PaymentType `json:"payment_type" validate:"required"`
	Status      *string           `json:"status,omitempty"`
}

// PaymentsCreate records a new payment.
func PaymentsCreate(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload paymentCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.CreatePayment(r.Context(), actor, transactions.CreatePaymentInput{
			ParcelID:    payload.ParcelID,
			PayerID:     payload.PayerID,
			Amount:      payload.Amount,
			PaymentType: payload.PaymentType,
			Status:      payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

type paymentUpdateRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Status *string          `json:"status,omitempty"`
}

// PaymentsUpdate adjusts a payment's amount or status.
func PaymentsUpdate(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload paymentUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.UpdatePayment(r.Context(), actor, id, transactions.UpdatePaymentInput{
			Amount: payload.Amount,
			Status: payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payment)
	}
}

// PaymentsDelete removes a payment.
func PaymentsDelete(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeletePayment(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
