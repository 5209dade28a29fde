package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Ensure File implements Store
var _ Store = (*File)(nil)

// File is an archive backed by a JSON file.
type File struct {
	path   string
	policy CorruptPolicy
	logger *zap.Logger
}

// Option configures a File.
type Option func(*File)

// WithCorruptPolicy sets what Load does with an unparseable file.
func WithCorruptPolicy(p CorruptPolicy) Option {
	return func(f *File) {
		if p != "" {
			f.policy = p
		}
	}
}

// WithLogger attaches a diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *File) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFile returns an archive stored at path. The file is not touched until
// the first Load or Save.
func NewFile(path string, opts ...Option) *File {
	f := &File{
		path:   path,
		policy: PolicyReset,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the archive file location.
func (f *File) Path() string { return f.path }

// Load reads the archive from disk. A missing file is an empty archive.
func (f *File) Load() ([]Fact, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Fact{}, nil
		}
		return nil, fmt.Errorf("read archive %s: %w", f.path, err)
	}

	// The reset policy only covers unparseable bytes. A well-formed document
	// of the wrong shape is always an error and is never rewritten.
	if !json.Valid(data) {
		if f.policy == PolicyFail {
			return nil, fmt.Errorf("%w: %s: not valid JSON", ErrCorrupted, f.path)
		}
		f.logger.Warn("archive is not valid JSON, starting from an empty archive",
			zap.String("path", f.path))
		return []Fact{}, nil
	}

	var facts []Fact
	if err := json.Unmarshal(data, &facts); err != nil {
		return nil, fmt.Errorf("%w: %s: unexpected document shape: %v", ErrCorrupted, f.path, err)
	}
	if facts == nil {
		facts = []Fact{}
	}
	return facts, nil
}

// Save overwrites the archive with facts. The document is written to a
// temporary file in the same directory and renamed into place.
func (f *File) Save(facts []Fact) error {
	data, err := Marshal(facts)
	if err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write archive %s: %w", f.path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write archive %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("write archive %s: %w", f.path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		cleanup()
		return fmt.Errorf("write archive %s: %w", f.path, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		cleanup()
		return fmt.Errorf("write archive %s: %w", f.path, err)
	}

	f.logger.Debug("archive saved", zap.String("path", f.path), zap.Int("facts", len(facts)))
	return nil
}

// Add loads the archive and appends text unless it is already present.
// Empty text is never stored.
func (f *File) Add(text, source string) (bool, error) {
	if text == "" {
		return false, nil
	}

	facts, err := f.Load()
	if err != nil {
		return false, err
	}
	if Contains(facts, text) {
		f.logger.Debug("duplicate fact skipped", zap.String("text", text))
		return false, nil
	}

	if err := f.Save(Append(facts, Fact{Text: text, Source: source})); err != nil {
		return false, err
	}
	return true, nil
}
