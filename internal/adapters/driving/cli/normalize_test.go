package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driven"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driving"
	"github.com/scrivia-labs/scrivia-cli/internal/core/services"
	"github.com/scrivia-labs/scrivia-cli/internal/transforms"
)

func withNormalizer(t *testing.T) {
	t.Helper()

	oldNormalizer := normalizerService
	normalizerService = services.NewNormalizerService(func(opts driving.NormalizeOptions) driven.TransformPipeline {
		return transforms.NewDefaultPipeline(opts)
	})

	t.Cleanup(func() { normalizerService = oldNormalizer })
}

func resetNormalizeFlags() {
	normalizeFillers = false
	normalizeNoNumbers = false
	normalizeChanges = false
}

func TestNormalizeCmd_PrintsTranscript(t *testing.T) {
	withNormalizer(t)
	resetNormalizeFlags()

	path := filepath.Join(t.TempDir(), "stutter.json")
	fixture := `{
  "segments": [
    {"id": 0, "start": 0.0, "end": 3.0, "text": "I I think we should ship it."}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"normalize", path})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "I think we should ship it.")
	assert.NotContains(t, buf.String(), "I I think")
}

func TestNormalizeCmd_ChangesLog(t *testing.T) {
	withNormalizer(t)
	resetNormalizeFlags()

	path := filepath.Join(t.TempDir(), "stutter.json")
	fixture := `{
  "segments": [
    {"id": 0, "start": 0.0, "end": 3.0, "text": "I I think we should ship it."}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"normalize", path, "--changes"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "I I think")
}

func TestNormalizeCmd_NoService(t *testing.T) {
	oldNormalizer := normalizerService
	normalizerService = nil
	defer func() { normalizerService = oldNormalizer }()
	resetNormalizeFlags()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"normalize", "whatever.json"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "normalizer service not configured")
}
