package enums

import "fmt"

// OwnerStatus captures the lifecycle state of an owner profile.
type OwnerStatus string

const (
	OwnerStatusActive   OwnerStatus = "Active"
	OwnerStatusInactive OwnerStatus = "Inactive"
	OwnerStatusDeceased OwnerStatus = "Deceased"
)

var validOwnerStatuses = []OwnerStatus{
	OwnerStatusActive,
	OwnerStatusInactive,
	OwnerStatusDeceased,
}

// String implements fmt.Stringer.
func (s OwnerStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OwnerStatus.
func (s OwnerStatus) IsValid() bool {
	for _, candidate := range validOwnerStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOwnerStatus converts raw input into an OwnerStatus.
func ParseOwnerStatus(value string) (OwnerStatus, error) {
	for _, candidate := range validOwnerStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid owner status %q", value)
}

// Gender is the declared gender on an owner profile.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

var validGenders = []Gender{
	GenderMale,
	GenderFemale,
	GenderOther,
}

// String implements fmt.Stringer.
func (g Gender) String() string {
	return string(g)
}

// IsValid reports whether the value is a known Gender.
func (g Gender) IsValid() bool {
	for _, candidate := range validGenders {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGender converts raw input into a Gender.
func ParseGender(value string) (Gender, error) {
	for _, candidate := range validGenders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid gender %q", value)
}

// OwnerType distinguishes natural persons from institutional owners.
type OwnerType string

const (
	OwnerTypeIndividual OwnerType = "Individual"
	OwnerTypeCompany    OwnerType = "Company"
	OwnerTypeGovernment OwnerType = "Government"
	OwnerTypeTrust      OwnerType = "Trust"
)

var validOwnerTypes = []OwnerType{
	OwnerTypeIndividual,
	OwnerTypeCompany,
	OwnerTypeGovernment,
	OwnerTypeTrust,
}

// String implements fmt.Stringer.
func (t OwnerType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known OwnerType.
func (t OwnerType) IsValid() bool {
	for _, candidate := range validOwnerTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseOwnerType converts raw input into an OwnerType.
func ParseOwnerType(value string) (OwnerType, error) {
	for _, candidate := range validOwnerTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid owner type %q", value)
}
