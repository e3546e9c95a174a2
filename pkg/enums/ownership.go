package enums

import "fmt"

// OwnershipType qualifies the nature of an ownership claim.
type OwnershipType string

const (
	OwnershipTypeSole            OwnershipType = "Sole"
	OwnershipTypeJoint           OwnershipType = "Joint"
	OwnershipTypeCoOwner         OwnershipType = "Co-owner"
	OwnershipTypeLeasehold       OwnershipType = "Leasehold"
	OwnershipTypeMortgage        OwnershipType = "Mortgage"
	OwnershipTypeEasement        OwnershipType = "Easement"
	OwnershipTypePowerOfAttorney OwnershipType = "Power_of_Attorney"
)

var validOwnershipTypes = []OwnershipType{
	OwnershipTypeSole,
	OwnershipTypeJoint,
	OwnershipTypeCoOwner,
	OwnershipTypeLeasehold,
	OwnershipTypeMortgage,
	OwnershipTypeEasement,
	OwnershipTypePowerOfAttorney,
}

// String implements fmt.Stringer.
func (t OwnershipType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known OwnershipType.
func (t OwnershipType) IsValid() bool {
	for _, candidate := range validOwnershipTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseOwnershipType converts raw input into an OwnershipType.
func ParseOwnershipType(value string) (OwnershipType, error) {
	for _, candidate := range validOwnershipTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid ownership type %q", value)
}

// AcquisitionType records how an owner came to hold a claim.
type AcquisitionType string

const (
	AcquisitionTypePurchase             AcquisitionType = "Purchase"
	AcquisitionTypeInheritance          AcquisitionType = "Inheritance"
	AcquisitionTypeGift                 AcquisitionType = "Gift"
	AcquisitionTypeGovernmentAllocation AcquisitionType = "Government_Allocation"
	AcquisitionTypeAuction              AcquisitionType = "Auction"
	AcquisitionTypeExchange             AcquisitionType = "Exchange"
	AcquisitionTypeCourtOrder           AcquisitionType = "Court_Order"
	AcquisitionTypePartition            AcquisitionType = "Partition"
)

var validAcquisitionTypes = []AcquisitionType{
	AcquisitionTypePurchase,
	AcquisitionTypeInheritance,
	AcquisitionTypeGift,
	AcquisitionTypeGovernmentAllocation,
	AcquisitionTypeAuction,
	AcquisitionTypeExchange,
	AcquisitionTypeCourtOrder,
	AcquisitionTypePartition,
}

// String implements fmt.Stringer.
func (t AcquisitionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known AcquisitionType.
func (t AcquisitionType) IsValid() bool {
	for _, candidate := range validAcquisitionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseAcquisitionType converts raw input into an AcquisitionType.
func ParseAcquisitionType(value string) (AcquisitionType, error) {
	for _, candidate := range validAcquisitionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid acquisition type %q", value)
}

// VerificationStatus is the legal-review state of an ownership claim.
type VerificationStatus string

const (
	VerificationStatusPending     VerificationStatus = "Pending"
	VerificationStatusVerified    VerificationStatus = "Verified"
	VerificationStatusRejected    VerificationStatus = "Rejected"
	VerificationStatusUnderReview VerificationStatus = "Under_Review"
	VerificationStatusDisputed    VerificationStatus = "Disputed"
)

var validVerificationStatuses = []VerificationStatus{
	VerificationStatusPending,
	VerificationStatusVerified,
	VerificationStatusRejected,
	VerificationStatusUnderReview,
	VerificationStatusDisputed,
}

// String implements fmt.Stringer.
func (s VerificationStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known VerificationStatus.
func (s VerificationStatus) IsValid() bool {
	for _, candidate := range validVerificationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further review transitions are allowed.
func (s VerificationStatus) IsTerminal() bool {
	return s == VerificationStatusVerified || s == VerificationStatusRejected
}

// ParseVerificationStatus converts raw input into a VerificationStatus.
func ParseVerificationStatus(value string) (VerificationStatus, error) {
	for _, candidate := range validVerificationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid verification status %q", value)
}

// TransferType records the legal vehicle for a change of ownership.
type TransferType string

const (
	TransferTypeSale        TransferType = "Sale"
	TransferTypeGift        TransferType = "Gift"
	TransferTypeInheritance TransferType = "Inheritance"
	TransferTypeForeclosure TransferType = "Foreclosure"
	TransferTypeSurrender   TransferType = "Surrender"
)

var validTransferTypes = []TransferType{
	TransferTypeSale,
	TransferTypeGift,
	TransferTypeInheritance,
	TransferTypeForeclosure,
	TransferTypeSurrender,
}

// String implements fmt.Stringer.
func (t TransferType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransferType.
func (t TransferType) IsValid() bool {
	for _, candidate := range validTransferTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransferType converts raw input into a TransferType.
func ParseTransferType(value string) (TransferType, error) {
	for _, candidate := range validTransferTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transfer type %q", value)
}
