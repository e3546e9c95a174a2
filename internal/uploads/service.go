package uploads

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/config"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/types"
)

type gcsClient interface {
	SignedURL(bucket, object, contentType string, expires time.Duration) (string, error)
	SignedReadURL(bucket, object string, expires time.Duration) (string, error)
}

// Service exposes the presigned-upload flow shared by owner-profile images
// and registry documents.
type Service interface {
	PresignUpload(ctx context.Context, actor types.Actor, input PresignInput) (*PresignOutput, error)
	ReadURL(key string) (string, error)
}

type service struct {
	gcs         gcsClient
	bucket      string
	uploadTTL   time.Duration
	downloadTTL time.Duration
	maxBytes    int64
}

// NewService constructs an uploads service backed by the provided GCS signer.
func NewService(gcs gcsClient, gcsCfg config.GCSConfig, uploadsCfg config.UploadsConfig) (Service, error) {
	if gcs == nil {
		return nil, fmt.Errorf("gcs client required")
	}
	if gcsCfg.BucketName == "" {
		return nil, fmt.Errorf("gcs bucket required")
	}
	if gcsCfg.UploadURLExpiry <= 0 || gcsCfg.DownloadURLExpiry <= 0 {
		return nil, fmt.Errorf("url expiries must be positive")
	}
	if uploadsCfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	return &service{
		gcs:         gcs,
		bucket:      gcsCfg.BucketName,
		uploadTTL:   gcsCfg.UploadURLExpiry,
		downloadTTL: gcsCfg.DownloadURLExpiry,
		maxBytes:    int64(uploadsCfg.MaxUploadMB) * 1024 * 1024,
	}, nil
}

// PresignInput models the payload required to request an upload URL.
type PresignInput struct {
	Kind      enums.UploadKind
	MimeType  string
	FileName  string
	SizeBytes int64
}

// PresignOutput contains the signed PUT URL and the storage key the caller
// must reference when creating the owning record.
type PresignOutput struct {
	StorageKey   string    `json:"storage_key"`
	SignedPUTURL string    `json:"signed_put_url"`
	ContentType  string    `json:"content_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}

var imageMimeTypes = []string{"image/png", "image/jpeg", "image/webp"}

var mimeTypesByKind = map[enums.UploadKind][]string{
	enums.UploadKindProfilePicture: imageMimeTypes,
	enums.UploadKindIDCardFront:    imageMimeTypes,
	enums.UploadKindIDCardBack:     imageMimeTypes,
	enums.UploadKindSignature:      imageMimeTypes,
	enums.UploadKindLandDocument:   {"application/pdf", "image/png", "image/jpeg"},
	enums.UploadKindParcelFile:     {"application/pdf", "image/png", "image/jpeg"},
}

// staffOnlyKinds are document uploads reserved for registry staff; profile
// image kinds stay open to any authenticated account.
var staffOnlyKinds = map[enums.UploadKind]bool{
	enums.UploadKindLandDocument: true,
	enums.UploadKindParcelFile:   true,
}

func (s *service) PresignUpload(ctx context.Context, actor types.Actor, input PresignInput) (*PresignOutput, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}
	if input.Kind == "" || !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid upload kind")
	}
	if staffOnlyKinds[input.Kind] && !actor.CanReadAll() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only registry staff may upload documents")
	}

	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file_name is required")
	}
	if input.SizeBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size_bytes must be positive")
	}
	if input.SizeBytes > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("size_bytes must be at most %d bytes", s.maxBytes))
	}

	mimeType := strings.TrimSpace(input.MimeType)
	if mimeType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mime_type is required")
	}
	if !isAllowedMime(input.Kind, mimeType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mime_type not allowed for upload kind")
	}

	storageKey := buildStorageKey(input.Kind, uuid.New(), fileName)
	expiresAt := time.Now().Add(s.uploadTTL)
	signedURL, err := s.gcs.SignedURL(s.bucket, storageKey, mimeType, s.uploadTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign upload url")
	}

	return &PresignOutput{
		StorageKey:   storageKey,
		SignedPUTURL: signedURL,
		ContentType:  mimeType,
		ExpiresAt:    expiresAt,
	}, nil
}

// ReadURL signs a time-limited GET URL for a stored object.
func (s *service) ReadURL(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "storage key is required")
	}
	url, err := s.gcs.SignedReadURL(s.bucket, key, s.downloadTTL)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign read url")
	}
	return url, nil
}

func isAllowedMime(kind enums.UploadKind, mimeType string) bool {
	allowed, ok := mimeTypesByKind[kind]
	if !ok {
		return false
	}
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, mimeType) {
			return true
		}
	}
	return false
}

func buildStorageKey(kind enums.UploadKind, id uuid.UUID, fileName string) string {
	cleanName := sanitizeFileName(fileName)
	if cleanName == "" {
		cleanName = id.String()
	}
	return fmt.Sprintf("uploads/%s/%s/%s", kind, id.String(), cleanName)
}

func sanitizeFileName(name string) string {
	if name == "" {
		return ""
	}
	clean := path.Base(strings.TrimSpace(name))
	if clean == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case r == '/' || r == '\\' || unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-_.")
}
