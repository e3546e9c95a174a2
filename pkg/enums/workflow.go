package enums

import "fmt"

// ApplicationType is the kind of administrative request filed on a parcel.
type ApplicationType string

const (
	ApplicationTypeChangeUse     ApplicationType = "change_use"
	ApplicationTypeSubdivision   ApplicationType = "subdivision"
	ApplicationTypeConsolidation ApplicationType = "consolidation"
	ApplicationTypeLease         ApplicationType = "lease"
)

var validApplicationTypes = []ApplicationType{
	ApplicationTypeChangeUse,
	ApplicationTypeSubdivision,
	ApplicationTypeConsolidation,
	ApplicationTypeLease,
}

// String implements fmt.Stringer.
func (t ApplicationType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ApplicationType.
func (t ApplicationType) IsValid() bool {
	for _, candidate := range validApplicationTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseApplicationType converts raw input into an ApplicationType.
func ParseApplicationType(value string) (ApplicationType, error) {
	for _, candidate := range validApplicationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid application type %q", value)
}

// TransactionType is the kind of a recorded land transaction.
type TransactionType string

const (
	TransactionTypeSale        TransactionType = "sale"
	TransactionTypeLease       TransactionType = "lease"
	TransactionTypeInheritance TransactionType = "inheritance"
	TransactionTypeTransfer    TransactionType = "transfer"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeSale,
	TransactionTypeLease,
	TransactionTypeInheritance,
	TransactionTypeTransfer,
}

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransactionType.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransactionType converts raw input into a TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}

// PaymentType labels a revenue payment against a parcel.
type PaymentType string

const (
	PaymentTypeTax     PaymentType = "tax"
	PaymentTypeFee     PaymentType = "fee"
	PaymentTypePenalty PaymentType = "penalty"
)

var validPaymentTypes = []PaymentType{
	PaymentTypeTax,
	PaymentTypeFee,
	PaymentTypePenalty,
}

// String implements fmt.Stringer.
func (t PaymentType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known PaymentType.
func (t PaymentType) IsValid() bool {
	for _, candidate := range validPaymentTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParsePaymentType converts raw input into a PaymentType.
func ParsePaymentType(value string) (PaymentType, error) {
	for _, candidate := range validPaymentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment type %q", value)
}
