package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const metaSuffix = ".meta.json"

type localMeta struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Checksum    string `json:"checksum"`
}

// LocalStorage stores objects as files under a base directory.
// Metadata lives next to each file in a JSON sidecar.
type LocalStorage struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalStorage creates basePath if needed
func NewLocalStorage(basePath string, logger *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}

	return &LocalStorage{
		basePath: filepath.Clean(basePath),
		logger:   logger.Named("local-storage"),
	}, nil
}

func (s *LocalStorage) Store(ctx context.Context, key string, obj Object) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(p, obj.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	meta, err := json.Marshal(localMeta{Name: obj.Name, ContentType: obj.ContentType, Checksum: obj.Checksum})
	if err != nil {
		return err
	}
	if err := os.WriteFile(p+metaSuffix, meta, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	s.logger.Debug("stored object", zap.String("key", key), zap.Int("size", len(obj.Content)))
	return nil
}

func (s *LocalStorage) Get(ctx context.Context, key string) (Object, error) {
	p, err := s.path(key)
	if err != nil {
		return Object{}, err
	}

	content, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return Object{}, ErrKeyNotFound
		}
		return Object{}, fmt.Errorf("failed to read file: %w", err)
	}

	var meta localMeta
	raw, err := os.ReadFile(p + metaSuffix)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &meta); err != nil {
			return Object{}, fmt.Errorf("failed to decode metadata of %s: %w", key, err)
		}
	case !os.IsNotExist(err):
		return Object{}, fmt.Errorf("failed to read metadata: %w", err)
	}

	return Object{
		Name:        meta.Name,
		ContentType: meta.ContentType,
		Checksum:    meta.Checksum,
		Content:     content,
	}, nil
}

// List walks only the directory holding prefix; a missing directory lists nothing
func (s *LocalStorage) List(ctx context.Context, prefix string) ([]string, error) {
	root := s.basePath
	if i := strings.LastIndex(prefix, "/"); i > 0 {
		p, err := s.path(prefix[:i])
		if err != nil {
			return nil, err
		}
		root = p
	}

	keys := make([]string, 0)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(p, metaSuffix) {
			return nil
		}
		rel, err := filepath.Rel(s.basePath, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return keys, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", prefix, err)
	}
	return keys, nil
}

// DeleteAll removes every key with its metadata and prunes directories left empty
func (s *LocalStorage) DeleteAll(ctx context.Context, keys []string) error {
	var errs []error
	for _, key := range keys {
		p, err := s.path(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, f := range []string{p, p + metaSuffix} {
			if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
				errs = append(errs, fmt.Errorf("failed to delete %s: %w", key, err))
			}
		}
		s.prune(filepath.Dir(p))
	}
	return errors.Join(errs...)
}

// prune removes dir and its parents up to basePath while they are empty
func (s *LocalStorage) prune(dir string) {
	for dir != s.basePath && strings.HasPrefix(dir, s.basePath) {
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

// path maps key below basePath and rejects keys escaping it
func (s *LocalStorage) path(key string) (string, error) {
	p := filepath.Join(s.basePath, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.basePath, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return p, nil
}
