package transactions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/types"
	"gorm.io/gorm"
)

type transactionsRepository interface {
	Create(ctx context.Context, transaction *models.LandTransaction) (*models.LandTransaction, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.LandTransaction, error)
	List(ctx context.Context, filter ListFilter) ([]models.LandTransaction, error)
	Update(ctx context.Context, transaction *models.LandTransaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	FindPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListPayments(ctx context.Context, filter PaymentListFilter) ([]models.Payment, error)
	UpdatePayment(ctx context.Context, payment *models.Payment) error
	DeletePayment(ctx context.Context, id uuid.UUID) error
}

type parcelsDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type ownersDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service exposes land-transaction and payment operations.
type Service interface {
	List(ctx context.Context, actor types.Actor, filter ListFilter) ([]TransactionDTO, error)
	Get(ctx context.Context, actor types.Actor, id uuid.UUID) (*TransactionDTO, error)
	Create(ctx context.Context, actor types.Actor, input CreateTransactionInput) (*TransactionDTO, error)
	Update(ctx context.Context, actor types.Actor, id uuid.UUID, input UpdateTransactionInput) (*TransactionDTO, error)
	Delete(ctx context.Context, actor types.Actor, id uuid.UUID) error
	ListPayments(ctx context.Context, actor types.Actor, filter PaymentListFilter) ([]PaymentDTO, error)
	GetPayment(ctx context.Context, actor types.Actor, id uuid.UUID) (*PaymentDTO, error)
	CreatePayment(ctx context.Context, actor types.Actor, input CreatePaymentInput) (*PaymentDTO, error)
	UpdatePayment(ctx context.Context, actor types.Actor, id uuid.UUID, input UpdatePaymentInput) (*PaymentDTO, error)
	DeletePayment(ctx context.Context, actor types.Actor, id uuid.UUID) error
}

type service struct {
	repo    transactionsRepository
	parcels parcelsDirectory
	owners  ownersDirectory
}

// NewService builds a transactions service with the provided collaborators.
func NewService(repo transactionsRepository, parcels parcelsDirectory, owners ownersDirectory) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("transactions repository required")
	}
	if parcels == nil {
		return nil, fmt.Errorf("parcels directory required")
	}
	if owners == nil {
		return nil, fmt.Errorf("owners directory required")
	}
	return &service{repo: repo, parcels: parcels, owners: owners}, nil
}

func (s *service) List(ctx context.Context, actor types.Actor, filter ListFilter) ([]TransactionDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may browse transactions")
	}
	transactions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
	}

	out := make([]TransactionDTO, 0, len(transactions))
	for i := range transactions {
		out = append(out, *toTransactionDTO(&transactions[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, actor types.Actor, id uuid.UUID) (*TransactionDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may view transactions")
	}
	transaction, err := s.findTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTransactionDTO(transaction), nil
}

func (s *service) Create(ctx context.Context, actor types.Actor, input CreateTransactionInput) (*TransactionDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may record transactions")
	}
	if !input.TransactionType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction_type")
	}
	if input.Amount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount cannot be negative")
	}
	if err := s.checkParcel(ctx, input.ParcelID); err != nil {
		return nil, err
	}
	for _, partyID := range []*uuid.UUID{input.BuyerID, input.SellerID} {
		if partyID == nil {
			continue
		}
		if err := s.checkOwner(ctx, *partyID); err != nil {
			return nil, err
		}
	}

	transaction := &models.LandTransaction{
		ParcelID:        input.ParcelID,
		BuyerID:         input.BuyerID,
		SellerID:        input.SellerID,
		TransactionType: input.TransactionType,
		Amount:          input.Amount,
		Status:          normalizeStatus(input.Status),
	}
	created, err := s.repo.Create(ctx, transaction)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transaction")
	}
	return toTransactionDTO(created), nil
}

func (s *service) Update(ctx context.Context, actor types.Actor, id uuid.UUID, input UpdateTransactionInput) (*TransactionDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may modify transactions")
	}
	transaction, err := s.findTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if input.Amount.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount cannot be negative")
		}
		transaction.Amount = *input.Amount
	}
	if input.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*input.Status))
		if status == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "status cannot be blank")
		}
		transaction.Status = status
	}

	if err := s.repo.Update(ctx, transaction); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update transaction")
	}
	return toTransactionDTO(transaction), nil
}

func (s *service) Delete(ctx context.Context, actor types.Actor, id uuid.UUID) error {
	if !actor.CanReadAll() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may delete transactions")
	}
	if _, err := s.findTransaction(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete transaction")
	}
	return nil
}

// ListPayments returns payments. Owners only see payments they made.
func (s *service) ListPayments(ctx context.Context, actor types.Actor, filter PaymentListFilter) ([]PaymentDTO, error) {
	if !actor.CanReadAll() {
		if actor.OwnerProfileID == nil {
			return []PaymentDTO{}, nil
		}
		filter.PayerID = actor.OwnerProfileID
	}
	payments, err := s.repo.ListPayments(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}

	out := make([]PaymentDTO, 0, len(payments))
	for i := range payments {
		out = append(out, *toPaymentDTO(&payments[i]))
	}
	return out, nil
}

func (s *service) GetPayment(ctx context.Context, actor types.Actor, id uuid.UUID) (*PaymentDTO, error) {
	payment, err := s.findPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanReadAll() {
		if actor.OwnerProfileID == nil || payment.PayerID == nil || *payment.PayerID != *actor.OwnerProfileID {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
	}
	return toPaymentDTO(payment), nil
}

func (s *service) CreatePayment(ctx context.Context, actor types.Actor, input CreatePaymentInput) (*PaymentDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may record payments")
	}
	if !input.PaymentType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment_type")
	}
	if input.Amount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount cannot be negative")
	}
	if input.ParcelID != nil {
		if err := s.checkParcel(ctx, *input.ParcelID); err != nil {
			return nil, err
		}
	}
	if input.PayerID != nil {
		if err := s.checkOwner(ctx, *input.PayerID); err != nil {
			return nil, err
		}
	}

	payment := &models.Payment{
		ParcelID:    input.ParcelID,
		PayerID:     input.PayerID,
		Amount:      input.Amount,
		PaymentType: input.PaymentType,
		Status:      normalizeStatus(input.Status),
	}
	created, err := s.repo.CreatePayment(ctx, payment)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment")
	}
	return toPaymentDTO(created), nil
}

func (s *service) UpdatePayment(ctx context.Context, actor types.Actor, id uuid.UUID, input UpdatePaymentInput) (*PaymentDTO, error) {
	if !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may modify payments")
	}
	payment, err := s.findPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if input.Amount.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount cannot be negative")
		}
		payment.Amount = *input.Amount
	}
	if input.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*input.Status))
		if status == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "status cannot be blank")
		}
		payment.Status = status
	}

	if err := s.repo.UpdatePayment(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment")
	}
	return toPaymentDTO(payment), nil
}

func (s *service) DeletePayment(ctx context.Context, actor types.Actor, id uuid.UUID) error {
	if !actor.CanReadAll() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may delete payments")
	}
	if _, err := s.findPayment(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeletePayment(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete payment")
	}
	return nil
}

func (s *service) findTransaction(ctx context.Context, id uuid.UUID) (*models.LandTransaction, error) {
	transaction, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transaction")
	}
	return transaction, nil
}

func (s *service) findPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment, err := s.repo.FindPaymentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
	}
	return payment, nil
}

func (s *service) checkParcel(ctx context.Context, id uuid.UUID) error {
	exists, err := s.parcels.Exists(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up parcel")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "land parcel not found")
	}
	return nil
}

func (s *service) checkOwner(ctx context.Context, id uuid.UUID) error {
	exists, err := s.owners.Exists(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up owner profile")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "owner profile not found")
	}
	return nil
}

func normalizeStatus(status *string) string {
	if status == nil {
		return "pending"
	}
	trimmed := strings.ToLower(strings.TrimSpace(*status))
	if trimmed == "" {
		return "pending"
	}
	return trimmed
}
