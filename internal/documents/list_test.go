package documents

import (
	"context"
	"testing"
	"time"

	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPaginatesByCursor(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	_, record := seedParcelAndRecord(t, conn)

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	keys := []string{
		"uploads/land_document/p/first.pdf",
		"uploads/land_document/p/second.pdf",
		"uploads/land_document/p/third.pdf",
	}
	for i, key := range keys {
		created, err := svc.Create(ctx, staffActor(), CreateDocumentInput{
			DocType:           enums.DocumentTypeTitleDeed,
			StorageKey:        key,
			OwnershipRecordID: &record.ID,
		})
		require.NoError(t, err)

		err = conn.Model(&models.Document{}).
			Where("id = ?", created.ID).
			Update("uploaded_at", base.Add(time.Duration(i)*time.Minute)).Error
		require.NoError(t, err)
	}

	first, err := svc.List(ctx, staffActor(), ListParams{
		Params: pagination.Params{Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.NotEmpty(t, first.Cursor)
	assert.Equal(t, keys[2], first.Items[0].StorageKey)
	assert.Equal(t, keys[1], first.Items[1].StorageKey)

	second, err := svc.List(ctx, staffActor(), ListParams{
		Params: pagination.Params{Limit: 2, Cursor: first.Cursor},
	})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, keys[0], second.Items[0].StorageKey)
	assert.Empty(t, second.Cursor)
}

func TestListRejectsMalformedCursor(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.List(context.Background(), staffActor(), ListParams{
		Params: pagination.Params{Cursor: "not-base64!"},
	})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
