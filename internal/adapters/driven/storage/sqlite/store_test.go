package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	// Create a temporary directory for the test database
	tempDir, err := os.MkdirTemp("", "scrivia-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// testRecord builds a run record finished at the given offset from a
// fixed base time.
func testRecord(offset time.Duration) domain.RunRecord {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return domain.RunRecord{
		ID:           uuid.NewString(),
		InputPath:    "/recordings/standup.json",
		DetectedType: domain.MeetingStatus,
		Confidence:   0.82,
		ChangeCount:  7,
		SegmentCount: 42,
		WordCount:    1180,
		Model:        "llama3.2:3b",
		Repaired:     true,
		StartedAt:    base.Add(offset),
		FinishedAt:   base.Add(offset + 95*time.Second),
	}
}

// TestNewStore tests store construction and schema creation.
func TestNewStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.FileExists(t, store.Path())
	assert.Equal(t, "history.db", filepath.Base(store.Path()))
}

// TestNewStore_Reopens tests that migrations are idempotent across
// reopen.
func TestNewStore_Reopens(t *testing.T) {
	tempDir := t.TempDir()

	store1, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store1.Save(context.Background(), testRecord(0)))
	require.NoError(t, store1.Close())

	store2, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store2.Close()

	records, err := store2.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// TestStore_SaveAndGet tests round-tripping a full record.
func TestStore_SaveAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	record := testRecord(0)
	require.NoError(t, store.Save(ctx, record))

	got, err := store.Get(ctx, record.ID)
	require.NoError(t, err)

	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, record.InputPath, got.InputPath)
	assert.Equal(t, domain.MeetingStatus, got.DetectedType)
	assert.InDelta(t, 0.82, got.Confidence, 1e-9)
	assert.Equal(t, 7, got.ChangeCount)
	assert.Equal(t, 42, got.SegmentCount)
	assert.Equal(t, 1180, got.WordCount)
	assert.Equal(t, "llama3.2:3b", got.Model)
	assert.True(t, got.Repaired)
	assert.True(t, record.StartedAt.Equal(got.StartedAt))
	assert.True(t, record.FinishedAt.Equal(got.FinishedAt))
	assert.Equal(t, 95*time.Second, got.Duration())
}

// TestStore_Save_RequiresID tests rejection of records without an ID.
func TestStore_Save_RequiresID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	record := testRecord(0)
	record.ID = ""

	err := store.Save(context.Background(), record)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestStore_Save_Replaces tests that saving an existing ID updates
// the record.
func TestStore_Save_Replaces(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	record := testRecord(0)
	require.NoError(t, store.Save(ctx, record))

	record.DetectedType = domain.MeetingIncident
	record.ChangeCount = 11
	require.NoError(t, store.Save(ctx, record))

	got, err := store.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MeetingIncident, got.DetectedType)
	assert.Equal(t, 11, got.ChangeCount)

	records, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// TestStore_Get_NotFound tests the not-found sentinel.
func TestStore_Get_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestStore_List tests ordering and limits.
func TestStore_List(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		record := testRecord(time.Duration(i) * time.Hour)
		record.InputPath = fmt.Sprintf("/recordings/meeting-%d.json", i)
		ids = append(ids, record.ID)
		require.NoError(t, store.Save(ctx, record))
	}

	// Newest first.
	records, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, ids[4], records[0].ID)
	assert.Equal(t, ids[0], records[4].ID)

	// Limit caps the result.
	records, err = store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, ids[4], records[0].ID)
	assert.Equal(t, ids[3], records[1].ID)
}

// TestStore_List_Empty tests listing a fresh store.
func TestStore_List_Empty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	records, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}
