package uploads

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/config"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/types"
)

type stubGCS struct {
	lastObject      string
	lastContentType string
}

func (s *stubGCS) SignedURL(bucket, object, contentType string, expires time.Duration) (string, error) {
	s.lastObject = object
	s.lastContentType = contentType
	return "https://storage.example.com/" + bucket + "/" + object + "?sig=put", nil
}

func (s *stubGCS) SignedReadURL(bucket, object string, expires time.Duration) (string, error) {
	return "https://storage.example.com/" + bucket + "/" + object + "?sig=get", nil
}

func newTestService(t *testing.T) (Service, *stubGCS) {
	t.Helper()
	gcs := &stubGCS{}
	svc, err := NewService(gcs, config.GCSConfig{
		BucketName:        "urbanland-test",
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: time.Hour,
	}, config.UploadsConfig{MaxUploadMB: 20})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, gcs
}

func ownerActor() types.Actor {
	return types.Actor{UserID: uuid.New(), Role: enums.RoleOwner}
}

func TestPresignUploadValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input PresignInput
		code  pkgerrors.Code
	}{
		{"unknown kind", PresignInput{Kind: "selfie", MimeType: "image/png", FileName: "a.png", SizeBytes: 10}, pkgerrors.CodeValidation},
		{"missing file name", PresignInput{Kind: enums.UploadKindProfilePicture, MimeType: "image/png", SizeBytes: 10}, pkgerrors.CodeValidation},
		{"zero size", PresignInput{Kind: enums.UploadKindProfilePicture, MimeType: "image/png", FileName: "a.png"}, pkgerrors.CodeValidation},
		{"too large", PresignInput{Kind: enums.UploadKindProfilePicture, MimeType: "image/png", FileName: "a.png", SizeBytes: 21 * 1024 * 1024}, pkgerrors.CodeValidation},
		{"bad mime", PresignInput{Kind: enums.UploadKindProfilePicture, MimeType: "application/zip", FileName: "a.zip", SizeBytes: 10}, pkgerrors.CodeValidation},
		{"staff-only kind", PresignInput{Kind: enums.UploadKindLandDocument, MimeType: "application/pdf", FileName: "deed.pdf", SizeBytes: 10}, pkgerrors.CodeForbidden},
	}

	for _, tc := range cases {
		_, err := svc.PresignUpload(ctx, ownerActor(), tc.input)
		if pkgerrors.As(err).Code() != tc.code {
			t.Errorf("%s: expected %s, got %v", tc.name, tc.code, err)
		}
	}
}

func TestPresignUploadBuildsKeyAndURL(t *testing.T) {
	svc, gcs := newTestService(t)
	ctx := context.Background()

	out, err := svc.PresignUpload(ctx, ownerActor(), PresignInput{
		Kind:      enums.UploadKindProfilePicture,
		MimeType:  "image/png",
		FileName:  "my photo (1).png",
		SizeBytes: 1024,
	})
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	if !strings.HasPrefix(out.StorageKey, "uploads/profile_picture/") {
		t.Fatalf("unexpected key prefix: %s", out.StorageKey)
	}
	if !strings.HasSuffix(out.StorageKey, "/my-photo-(1).png") {
		t.Fatalf("file name not sanitized: %s", out.StorageKey)
	}
	if gcs.lastObject != out.StorageKey || gcs.lastContentType != "image/png" {
		t.Fatalf("signer called with wrong arguments: %s %s", gcs.lastObject, gcs.lastContentType)
	}
	if out.SignedPUTURL == "" || out.ExpiresAt.IsZero() {
		t.Fatal("expected a signed url and expiry")
	}

	staff := types.Actor{UserID: uuid.New(), Role: enums.RoleOfficer}
	if _, err := svc.PresignUpload(ctx, staff, PresignInput{
		Kind:      enums.UploadKindLandDocument,
		MimeType:  "application/pdf",
		FileName:  "deed.pdf",
		SizeBytes: 2048,
	}); err != nil {
		t.Fatalf("staff land document presign: %v", err)
	}
}

func TestReadURL(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.ReadURL("  "); pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for blank key, got %v", err)
	}
	url, err := svc.ReadURL("uploads/profile_picture/x/photo.png")
	if err != nil {
		t.Fatalf("read url: %v", err)
	}
	if !strings.Contains(url, "sig=get") {
		t.Fatalf("unexpected url: %s", url)
	}
}
