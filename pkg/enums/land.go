package enums

import "fmt"

// LandUseZone is the planning zone a parcel falls under.
type LandUseZone string

const (
	LandUseZoneResidential  LandUseZone = "Residential"
	LandUseZoneCommercial   LandUseZone = "Commercial"
	LandUseZoneIndustrial   LandUseZone = "Industrial"
	LandUseZoneAgricultural LandUseZone = "Agricultural"
	LandUseZonePublic       LandUseZone = "Public"
	LandUseZoneMixed        LandUseZone = "Mixed"
)

var validLandUseZones = []LandUseZone{
	LandUseZoneResidential,
	LandUseZoneCommercial,
	LandUseZoneIndustrial,
	LandUseZoneAgricultural,
	LandUseZonePublic,
	LandUseZoneMixed,
}

// String implements fmt.Stringer.
func (z LandUseZone) String() string {
	return string(z)
}

// IsValid reports whether the value is a known LandUseZone.
func (z LandUseZone) IsValid() bool {
	for _, candidate := range validLandUseZones {
		if candidate == z {
			return true
		}
	}
	return false
}

// ParseLandUseZone converts raw input into a LandUseZone.
func ParseLandUseZone(value string) (LandUseZone, error) {
	for _, candidate := range validLandUseZones {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid land use zone %q", value)
}

// DevelopmentStatus tracks how built-up a parcel currently is.
type DevelopmentStatus string

const (
	DevelopmentStatusUndeveloped       DevelopmentStatus = "Undeveloped"
	DevelopmentStatusUnderConstruction DevelopmentStatus = "Under_Construction"
	DevelopmentStatusDeveloped         DevelopmentStatus = "Developed"
	DevelopmentStatusGovernmentHold    DevelopmentStatus = "Government_Hold"
)

var validDevelopmentStatuses = []DevelopmentStatus{
	DevelopmentStatusUndeveloped,
	DevelopmentStatusUnderConstruction,
	DevelopmentStatusDeveloped,
	DevelopmentStatusGovernmentHold,
}

// String implements fmt.Stringer.
func (s DevelopmentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known DevelopmentStatus.
func (s DevelopmentStatus) IsValid() bool {
	for _, candidate := range validDevelopmentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDevelopmentStatus converts raw input into a DevelopmentStatus.
func ParseDevelopmentStatus(value string) (DevelopmentStatus, error) {
	for _, candidate := range validDevelopmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid development status %q", value)
}

// ParcelStatus is the administrative state of a parcel record.
type ParcelStatus string

const (
	ParcelStatusActive   ParcelStatus = "active"
	ParcelStatusInactive ParcelStatus = "inactive"
	ParcelStatusPending  ParcelStatus = "pending"
)

var validParcelStatuses = []ParcelStatus{
	ParcelStatusActive,
	ParcelStatusInactive,
	ParcelStatusPending,
}

// String implements fmt.Stringer.
func (s ParcelStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ParcelStatus.
func (s ParcelStatus) IsValid() bool {
	for _, candidate := range validParcelStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseParcelStatus converts raw input into a ParcelStatus.
func ParseParcelStatus(value string) (ParcelStatus, error) {
	for _, candidate := range validParcelStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid parcel status %q", value)
}
