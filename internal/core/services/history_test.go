package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrivia-labs/scrivia-cli/internal/adapters/driven/storage/memory"
	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

func historyRecord(id string, offset time.Duration, runtime time.Duration, words int) domain.RunRecord {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return domain.RunRecord{
		ID:           id,
		InputPath:    "/recordings/" + id + ".json",
		DetectedType: domain.MeetingStatus,
		Confidence:   0.7,
		SegmentCount: 12,
		WordCount:    words,
		StartedAt:    base.Add(offset),
		FinishedAt:   base.Add(offset + runtime),
	}
}

func TestHistoryService_List(t *testing.T) {
	runs := memory.NewRunStore()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		rec := historyRecord(fmt.Sprintf("run-%d", i), time.Duration(i)*time.Hour, time.Minute, 100)
		require.NoError(t, runs.Save(ctx, rec))
	}

	service := NewHistoryService(runs)

	records, err := service.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "run-2", records[0].ID)

	limited, err := service.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "run-2", limited[0].ID)
}

func TestHistoryService_Get(t *testing.T) {
	runs := memory.NewRunStore()
	ctx := context.Background()
	rec := historyRecord("run-a", 0, time.Minute, 250)
	require.NoError(t, runs.Save(ctx, rec))

	service := NewHistoryService(runs)

	got, err := service.Get(ctx, "run-a")
	require.NoError(t, err)
	assert.Equal(t, rec, *got)
}

func TestHistoryService_Get_EmptyID(t *testing.T) {
	service := NewHistoryService(memory.NewRunStore())

	_, err := service.Get(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryService_Get_NotFound(t *testing.T) {
	service := NewHistoryService(memory.NewRunStore())

	_, err := service.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryService_Analyze(t *testing.T) {
	runs := memory.NewRunStore()
	ctx := context.Background()
	require.NoError(t, runs.Save(ctx, historyRecord("slow", 0, 3*time.Minute, 500)))
	require.NoError(t, runs.Save(ctx, historyRecord("fast", time.Hour, 30*time.Second, 200)))
	require.NoError(t, runs.Save(ctx, historyRecord("wordy", 2*time.Hour, 2*time.Minute, 900)))

	service := NewHistoryService(runs)

	analysis, err := service.Analyze(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, analysis.TotalRuns)
	require.NotNil(t, analysis.Fastest)
	assert.Equal(t, "fast", analysis.Fastest.ID)
	require.NotNil(t, analysis.MostWords)
	assert.Equal(t, "wordy", analysis.MostWords.ID)
}

func TestHistoryService_Analyze_Empty(t *testing.T) {
	service := NewHistoryService(memory.NewRunStore())

	analysis, err := service.Analyze(context.Background())
	require.NoError(t, err)

	assert.Zero(t, analysis.TotalRuns)
	assert.Nil(t, analysis.Fastest)
	assert.Nil(t, analysis.MostWords)
}
