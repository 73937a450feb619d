// Package export writes generated results to disk.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/afero"
)

// ScenarioSuffix is appended to the event name to form the scenario file name.
const ScenarioSuffix = "_시나리오.txt"

// Exporter writes result files below a base directory. It uses an
// afero.Fs so tests can run against afero.NewMemMapFs().
type Exporter struct {
	fs      afero.Fs
	baseDir string
}

// NewExporter creates an Exporter rooted at baseDir.
func NewExporter(fs afero.Fs, baseDir string) *Exporter {
	if baseDir == "" {
		baseDir = "."
	}
	return &Exporter{fs: fs, baseDir: baseDir}
}

// NewOsExporter creates an Exporter on the real filesystem.
func NewOsExporter(baseDir string) *Exporter {
	return NewExporter(afero.NewOsFs(), baseDir)
}

// ScenarioFileName returns "<event name>_시나리오.txt" with path separators
// and control characters replaced by '_'.
func ScenarioFileName(eventName string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == 0:
			return '_'
		case unicode.IsControl(r):
			return '_'
		}
		return r
	}, strings.TrimSpace(eventName))
	if name == "" || name == "." || name == ".." {
		name = "행사"
	}
	return name + ScenarioSuffix
}

// SaveScenario writes text to the scenario file for eventName and returns
// its path.
func (e *Exporter) SaveScenario(eventName, text string) (string, error) {
	path := filepath.Join(e.baseDir, ScenarioFileName(eventName))
	if err := e.SaveFile(path, []byte(text)); err != nil {
		return "", err
	}
	return path, nil
}

// SaveFile writes data to path atomically: the bytes go to a temp file in
// the same directory which is then renamed over path. On failure path is
// left as it was.
func (e *Exporter) SaveFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := e.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := afero.TempFile(e.fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = e.fs.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = e.fs.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := e.fs.Chmod(tmpName, 0o644); err != nil {
		_ = e.fs.Remove(tmpName)
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := e.fs.Rename(tmpName, path); err != nil {
		_ = e.fs.Remove(tmpName)
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
