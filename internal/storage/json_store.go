package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSONStore keeps the document in a single JSON file.
type JSONStore struct {
	filePath string
}

func NewJSONStore(filePath string) *JSONStore {
	return &JSONStore{filePath: filePath}
}

func (s *JSONStore) Path() string { return s.filePath }

func (s *JSONStore) Load(ctx context.Context) (*Document, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDocument(), nil
		}
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Decode(data)
}

// Save writes to a temp file in the same directory and renames it over the
// live file so an interrupted write never leaves a truncated document.
func (s *JSONStore) Save(ctx context.Context, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	return s.SaveRaw(ctx, data)
}

func (s *JSONStore) SaveRaw(ctx context.Context, data []byte) error {
	return writeFileAtomic(s.filePath, data)
}

func (s *JSONStore) Close() error { return nil }

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
