package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store loads and saves the whole Document. A missing document loads as an
// empty, normalized one.
type Store interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
	// SaveRaw persists already encoded document bytes unchanged.
	SaveRaw(ctx context.Context, data []byte) error
	Close() error
}

// Engine names accepted by Open.
const (
	EngineJSON   = "json"
	EngineSQLite = "sqlite"
)

// Open returns the store for engine at path.
func Open(ctx context.Context, engine string, path string) (Store, error) {
	switch engine {
	case "", EngineJSON:
		return NewJSONStore(path), nil
	case EngineSQLite:
		return OpenSQLiteStore(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported store engine: %q", engine)
	}
}

// Encode renders the document the way every engine persists it.
func Encode(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Decode parses a persisted document and applies defaults.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}
