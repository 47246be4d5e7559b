package storage

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sync"

	"gopkg.in/yaml.v3"
)

type Storer[T ValidatingSpec] interface {
	Get(string) T
	GetAll() map[Identifier]T
}

// FileStore is a read-only store of assets loaded once from a file tree.
// Files ending in .json, .yaml or .yml are loaded; everything else is
// ignored.
type FileStore[T ValidatingSpec] struct {
	fsys    fs.FS
	records map[Identifier]T

	mu sync.RWMutex
}

func NewFileStore[T ValidatingSpec](fsys fs.FS) (*FileStore[T], error) {
	s := &FileStore[T]{
		fsys:    fsys,
		records: map[Identifier]T{},
	}

	err := s.load()
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *FileStore[T]) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = map[Identifier]T{}

	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		decode := decoderFor(p)
		if decode == nil {
			return nil
		}

		asset, err := s.loadAsset(p, decode)
		if err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}

		err = asset.Validate()
		if err != nil {
			return fmt.Errorf("validating %s: %w", path.Base(p), err)
		}

		// Error if the key is already in use
		_, ok := s.records[asset.Id()]
		if ok {
			return fmt.Errorf("duplicate key detected: %s", asset.Id())
		}

		s.records[asset.Id()] = asset.Spec
		return nil
	})
	if err != nil {
		return err
	}

	slog.Debug("asset store loaded", "count", len(s.records))
	return nil
}

func (s *FileStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[Identifier(id)]
}

func (s *FileStore[T]) GetAll() map[Identifier]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := make(map[Identifier]T, len(s.records))
	for id, v := range s.records {
		vals[id] = v
	}

	return vals
}

func (s *FileStore[T]) loadAsset(p string, decode func([]byte, any) error) (*Asset[T], error) {
	data, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	asset := &Asset[T]{}
	err = decode(data, asset)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}

	return asset, nil
}

func decoderFor(p string) func([]byte, any) error {
	switch path.Ext(p) {
	case ".json":
		return json.Unmarshal
	case ".yaml", ".yml":
		return yaml.Unmarshal
	default:
		return nil
	}
}
