package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/lateraugment/server/domain/repositories"
)

// FileStore keeps synthesized audio blobs as files in a local directory.
// Filenames are generated by the caller; the directory is served by the
// HTTP layer under /audio.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// Ensure FileStore implements the AudioStore interface
var _ repositories.AudioStore = (*FileStore)(nil)

// NewFileStore creates the store, ensuring the directory exists.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if dir == "" {
		dir = "audio"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory %s: %w", dir, err)
	}

	return &FileStore{dir: dir, logger: logger}, nil
}

// Dir returns the directory backing the store.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// Save writes the audio bytes under the given filename.
func (fs *FileStore) Save(filename string, data []byte) error {
	path, err := fs.path(filename)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write audio file %s: %w", filename, err)
	}

	fs.logger.Info("Saved audio blob",
		zap.String("filename", filename),
		zap.Int("bytes", len(data)))
	return nil
}

// Remove deletes the blob. Removing an absent blob is not an error, so a
// delete retried after a partial failure still succeeds.
func (fs *FileStore) Remove(filename string) error {
	path, err := fs.path(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove audio file %s: %w", filename, err)
	}

	fs.logger.Info("Removed audio blob", zap.String("filename", filename))
	return nil
}

// Exists reports whether a blob with the given filename is present.
func (fs *FileStore) Exists(filename string) bool {
	path, err := fs.path(filename)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// path resolves a blob filename inside the store directory, rejecting
// names that would escape it.
func (fs *FileStore) path(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", fmt.Errorf("invalid audio filename: %q", filename)
	}
	return filepath.Join(fs.dir, filename), nil
}
