package file

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/runcmd/pkg/adapters/memory"
	"github.com/aretw0/runcmd/pkg/domain"
)

// Document implements ports.Document over a file on disk.
// Edits stay in memory until Save is called. Scratch documents created by
// commands are written to Output as they appear.
type Document struct {
	*memory.Document

	Path   string
	Output io.Writer

	mu sync.Mutex
}

// Load reads path into a new Document with the given selections.
func Load(path string, selections ...domain.Region) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	size := len(data)
	for _, r := range selections {
		if r.Start < 0 || r.End < r.Start || r.End > size {
			return nil, fmt.Errorf("selection [%d,%d) out of bounds (size %d)", r.Start, r.End, size)
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return &Document{
		Document: memory.NewDocument(string(data), selections...),
		Path:     abs,
		Output:   os.Stdout,
	}, nil
}

// NewDocument writes a scratch document to Output under a header line.
func (d *Document) NewDocument(name, text string) error {
	if err := d.Document.NewDocument(name, text); err != nil {
		return err
	}
	if d.Output == nil {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := fmt.Fprintf(d.Output, "==> %s <==\n%s", name, text); err != nil {
		return fmt.Errorf("failed to write output document: %w", err)
	}
	return nil
}

// Save writes the current text back to Path atomically.
// The content goes to a temp file in the same directory, is synced, and then renamed.
func (d *Document) Save() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	dir := filepath.Dir(d.Path)
	mode := os.FileMode(0644)
	if info, err := os.Stat(d.Path); err == nil {
		mode = info.Mode().Perm()
	}

	tmpFile, err := os.CreateTemp(dir, ".runcmd-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := io.WriteString(tmpFile, d.Text()); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	// Windows refuses to rename over an existing file.
	if _, err := os.Stat(d.Path); err == nil {
		if err := os.Remove(d.Path); err != nil {
			return fmt.Errorf("failed to remove existing file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, d.Path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
