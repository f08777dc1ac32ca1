package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// fileKV implements KV with one file per key under a state directory.
type fileKV struct {
	dir    string
	logger zerolog.Logger
}

// NewFileKV creates a file-backed KV rooted at dir, creating the
// directory if needed.
func NewFileKV(dir string, logger zerolog.Logger) (KV, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory %s: %w", dir, err)
	}
	return &fileKV{
		dir:    dir,
		logger: logger.With().Str("component", "file-storage").Logger(),
	}, nil
}

// Get returns the contents of the key's file, or ErrNotFound.
func (s *fileKV) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		s.logger.Error().Err(err).Str("key", key).Msg("failed to read state file")
		return nil, fmt.Errorf("failed to read state file for %s: %w", key, err)
	}
	return data, nil
}

// Set writes the value to a temp file and renames it into place, so a
// crash mid-write never leaves a truncated snapshot behind.
func (s *fileKV) Set(ctx context.Context, key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".tmp-*")
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to create temp state file")
		return fmt.Errorf("failed to create temp state file for %s: %w", key, err)
	}

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write state file for %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close state file for %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		s.logger.Error().Err(err).Str("key", key).Msg("failed to replace state file")
		return fmt.Errorf("failed to replace state file for %s: %w", key, err)
	}

	s.logger.Debug().Str("key", key).Int("bytes", len(value)).Msg("state file written")
	return nil
}

// Delete removes the key's file. An absent file is a no-op.
func (s *fileKV) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to delete state file")
		return fmt.Errorf("failed to delete state file for %s: %w", key, err)
	}
	return nil
}

// path maps a key to its file, rejecting anything that would escape the
// state directory.
func (s *fileKV) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
