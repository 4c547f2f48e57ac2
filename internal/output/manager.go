// Package output centralises path derivation for processing
// artifacts. Every file a run produces (transcripts, notes, the
// classification record, the changes log, run metadata) is named
// after the input file's stem, so a single Manager is the one source
// of truth for where artifacts land.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

// Manager derives artifact paths for a single input file.
type Manager struct {
	inputPath string
	baseName  string
	outDir    string
}

// ArtifactPaths lists every file a full processing run can write.
type ArtifactPaths struct {
	TranscriptTXT  string
	TranscriptSRT  string
	TranscriptJSON string
	Notes          string
	MeetingType    string
	Changes        string
	Metadata       string
}

// NewManager validates the input file and output directory and
// returns a path manager. When outDir is empty the input file's
// directory is used. A missing output directory is created; an
// existing non-directory path is rejected.
func NewManager(inputPath, outDir string) (*Manager, error) {
	abs, err := filepath.Abs(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, inputPath)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: input file %s", domain.ErrNotFound, inputPath)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: input path is a directory: %s", domain.ErrInvalidInput, inputPath)
	}

	if outDir == "" {
		outDir = filepath.Dir(abs)
	} else {
		outDir, err = filepath.Abs(outDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, outDir)
		}
	}

	if dirInfo, statErr := os.Stat(outDir); statErr == nil {
		if !dirInfo.IsDir() {
			return nil, fmt.Errorf("%w: output path exists but is not a directory: %s", domain.ErrInvalidInput, outDir)
		}
	} else if mkErr := os.MkdirAll(outDir, 0o755); mkErr != nil {
		return nil, fmt.Errorf("cannot create output directory %s: %w", outDir, mkErr)
	}

	name := filepath.Base(abs)
	return &Manager{
		inputPath: abs,
		baseName:  strings.TrimSuffix(name, filepath.Ext(name)),
		outDir:    outDir,
	}, nil
}

// Paths returns the full artifact path set for this input.
func (m *Manager) Paths() ArtifactPaths {
	return ArtifactPaths{
		TranscriptTXT:  m.artifact(".transcript.txt"),
		TranscriptSRT:  m.artifact(".transcript.srt"),
		TranscriptJSON: m.artifact(".transcript.json"),
		Notes:          m.artifact(".notes.md"),
		MeetingType:    m.artifact(".meeting-type.json"),
		Changes:        m.artifact(".changes.md"),
		Metadata:       m.artifact(".metadata.json"),
	}
}

// InputPath returns the resolved absolute input path.
func (m *Manager) InputPath() string {
	return m.inputPath
}

// BaseName returns the input filename without its extension.
func (m *Manager) BaseName() string {
	return m.baseName
}

// OutDir returns the resolved output directory.
func (m *Manager) OutDir() string {
	return m.outDir
}

// Write stores an artifact, creating it with standard permissions.
func (m *Manager) Write(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing artifact %s: %w", path, err)
	}
	return nil
}

func (m *Manager) artifact(suffix string) string {
	return filepath.Join(m.outDir, m.baseName+suffix)
}
