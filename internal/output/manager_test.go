package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

func writeInput(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	return path
}

// TestNewManager_DefaultOutDir tests that artifacts default to the
// input file's directory.
func TestNewManager_DefaultOutDir(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "meeting.json")

	m, err := NewManager(input, "")
	require.NoError(t, err)

	assert.Equal(t, dir, m.OutDir())
	assert.Equal(t, "meeting", m.BaseName())
	assert.Equal(t, input, m.InputPath())
}

// TestNewManager_CreatesOutDir tests that a missing output directory
// is created.
func TestNewManager_CreatesOutDir(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "meeting.json")
	outDir := filepath.Join(dir, "artifacts", "run1")

	m, err := NewManager(input, outDir)
	require.NoError(t, err)

	info, err := os.Stat(outDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, outDir, m.OutDir())
}

// TestNewManager_Errors tests input and output validation failures.
func TestNewManager_Errors(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "meeting.json")

	t.Run("missing input", func(t *testing.T) {
		_, err := NewManager(filepath.Join(dir, "nope.json"), "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("input is a directory", func(t *testing.T) {
		_, err := NewManager(dir, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("outdir is a file", func(t *testing.T) {
		blocker := writeInput(t, dir, "blocker")
		_, err := NewManager(input, blocker)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

// TestPaths tests the artifact path layout.
func TestPaths(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "standup.json")

	m, err := NewManager(input, "")
	require.NoError(t, err)

	paths := m.Paths()
	assert.Equal(t, filepath.Join(dir, "standup.transcript.txt"), paths.TranscriptTXT)
	assert.Equal(t, filepath.Join(dir, "standup.transcript.srt"), paths.TranscriptSRT)
	assert.Equal(t, filepath.Join(dir, "standup.transcript.json"), paths.TranscriptJSON)
	assert.Equal(t, filepath.Join(dir, "standup.notes.md"), paths.Notes)
	assert.Equal(t, filepath.Join(dir, "standup.meeting-type.json"), paths.MeetingType)
	assert.Equal(t, filepath.Join(dir, "standup.changes.md"), paths.Changes)
	assert.Equal(t, filepath.Join(dir, "standup.metadata.json"), paths.Metadata)
}

// TestWrite tests artifact writing.
func TestWrite(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "meeting.json")

	m, err := NewManager(input, "")
	require.NoError(t, err)

	target := m.Paths().Notes
	require.NoError(t, m.Write(target, []byte("# Meeting Notes\n")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "# Meeting Notes\n", string(data))
}
