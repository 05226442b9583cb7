package checkpoint

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Verify interface compliance in compile time.
var _ Store = (*FileStore)(nil)

// FileStore type is implementation of Store backed by a single json file.
// Writes go to a temporary file first and are renamed into place, so a crash
// mid-write leaves the previous checkpoint intact.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore function creates FileStore object.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{
		fs:   fs,
		path: path,
	}
}

func (s *FileStore) Load() (*Checkpoint, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}

	if err != nil {
		return nil, errors.WithMessagef(err, "failed to read checkpoint file %q", s.path)
	}

	var cp Checkpoint

	if err := json.Unmarshal(data, &cp); err != nil {
		slog.Warn(
			"discarding unparsable checkpoint file",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)

		return nil, nil
	}

	return &cp, nil
}

func (s *FileStore) Save(cp Checkpoint) error {
	if cp.SavedAt.IsZero() {
		cp.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return errors.New(err.Error())
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), os.ModePerm); err != nil {
		return errors.New(err.Error())
	}

	tmpPath := s.path + ".tmp"

	if err := afero.WriteFile(s.fs, tmpPath, data, 0o644); err != nil { //nolint:mnd
		return errors.WithMessagef(err, "failed to write checkpoint file %q", tmpPath)
	}

	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		return errors.WithMessagef(err, "failed to replace checkpoint file %q", s.path)
	}

	return nil
}

func (s *FileStore) Clear(totalPages uint64) error {
	return s.Save(Checkpoint{
		LastCommittedPage: totalPages,
		TotalPages:        totalPages,
		Done:              true,
	})
}
