// Package filestore is a core.Store keeping one <key>.json file per collection in a directory.
package filestore

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"

	"github.com/trezcool/missingwork/core"
)

var keyRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type Store struct {
	dir string
}

var _ core.Store = (*Store)(nil)

// Open creates dir if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "filestore.Open")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) (string, error) {
	if !keyRegex.MatchString(key) {
		return "", errors.Errorf("filestore: invalid key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	fp, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrNoRecord
		}
		return nil, errors.Wrap(err, "filestore.Get")
	}
	return data, nil
}

// Set replaces the file atomically: data is written to a temp file that is then renamed.
func (s *Store) Set(_ context.Context, key string, data []byte) error {
	fp, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return errors.Wrap(err, "filestore.Set")
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "filestore.Set")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "filestore.Set")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "filestore.Set")
	}
	return errors.Wrap(os.Rename(tmp.Name(), fp), "filestore.Set")
}
