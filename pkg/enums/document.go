package enums

import "fmt"

// DocumentType classifies evidence attached to an ownership record or parcel.
type DocumentType string

const (
	DocumentTypeTitleDeed              DocumentType = "Title_Deed"
	DocumentTypeSurveyMap              DocumentType = "Survey_Map"
	DocumentTypeTaxReceipt             DocumentType = "Tax_Receipt"
	DocumentTypeIdentityProof          DocumentType = "Identity_Proof"
	DocumentTypeAddressProof           DocumentType = "Address_Proof"
	DocumentTypeSaleDeed               DocumentType = "Sale_Deed"
	DocumentTypeGiftDeed               DocumentType = "Gift_Deed"
	DocumentTypeMortgageDeed           DocumentType = "Mortgage_Deed"
	DocumentTypePartitionDeed          DocumentType = "Partition_Deed"
	DocumentTypeCourtOrder             DocumentType = "Court_Order"
	DocumentTypeDeathCertificate       DocumentType = "Death_Certificate"
	DocumentTypeSuccessionCertificate  DocumentType = "Succession_Certificate"
	DocumentTypeBuildingPermit         DocumentType = "Building_Permit"
	DocumentTypeEncumbranceCertificate DocumentType = "Encumbrance_Certificate"
)

var validDocumentTypes = []DocumentType{
	DocumentTypeTitleDeed,
	DocumentTypeSurveyMap,
	DocumentTypeTaxReceipt,
	DocumentTypeIdentityProof,
	DocumentTypeAddressProof,
	DocumentTypeSaleDeed,
	DocumentTypeGiftDeed,
	DocumentTypeMortgageDeed,
	DocumentTypePartitionDeed,
	DocumentTypeCourtOrder,
	DocumentTypeDeathCertificate,
	DocumentTypeSuccessionCertificate,
	DocumentTypeBuildingPermit,
	DocumentTypeEncumbranceCertificate,
}

// String implements fmt.Stringer.
func (t DocumentType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known DocumentType.
func (t DocumentType) IsValid() bool {
	for _, candidate := range validDocumentTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseDocumentType converts raw input into a DocumentType.
func ParseDocumentType(value string) (DocumentType, error) {
	for _, candidate := range validDocumentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid document type %q", value)
}

// UploadKind selects the storage prefix and mime policy for presigned uploads.
type UploadKind string

const (
	UploadKindProfilePicture UploadKind = "profile_picture"
	UploadKindIDCardFront    UploadKind = "id_card_front"
	UploadKindIDCardBack     UploadKind = "id_card_back"
	UploadKindSignature      UploadKind = "signature"
	UploadKindLandDocument   UploadKind = "land_document"
	UploadKindParcelFile     UploadKind = "parcel_file"
)

var validUploadKinds = []UploadKind{
	UploadKindProfilePicture,
	UploadKindIDCardFront,
	UploadKindIDCardBack,
	UploadKindSignature,
	UploadKindLandDocument,
	UploadKindParcelFile,
}

// String implements fmt.Stringer.
func (k UploadKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known UploadKind.
func (k UploadKind) IsValid() bool {
	for _, candidate := range validUploadKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseUploadKind converts raw input into an UploadKind.
func ParseUploadKind(value string) (UploadKind, error) {
	for _, candidate := range validUploadKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid upload kind %q", value)
}
