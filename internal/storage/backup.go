package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const backupDateLayout = "2006-01-02"

// Backups manages whole-document snapshots in a directory.
type Backups struct {
	dir string
}

func NewBackups(dir string) *Backups {
	return &Backups{dir: dir}
}

func (b *Backups) Dir() string { return b.dir }

// AutoBackup writes the dated snapshot for now unless it already exists.
func (b *Backups) AutoBackup(doc *Document, now time.Time) (path string, created bool, err error) {
	name := now.Format(backupDateLayout) + ".json"
	path = filepath.Join(b.dir, name)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", false, fmt.Errorf("stat backup: %w", err)
	}
	if err := b.write(path, doc); err != nil {
		return "", false, err
	}
	return path, true, nil
}

// ManualBackup writes a snapshot under a user label, overwriting an older one with the same label.
func (b *Backups) ManualBackup(doc *Document, label string) (string, error) {
	name, err := backupFileName(label)
	if err != nil {
		return "", err
	}
	path := filepath.Join(b.dir, name)
	if err := b.write(path, doc); err != nil {
		return "", err
	}
	return path, nil
}

// List returns snapshot file names sorted ascending.
func (b *Backups) List() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list backups: %w", err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}

// Read loads a snapshot. An absent snapshot returns an error matching os.ErrNotExist.
func (b *Backups) Read(name string) (*Document, error) {
	data, err := b.readRaw(name)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Restore replaces the live document in st with the named snapshot, byte for
// byte. Nothing is written when the snapshot cannot be read or decoded.
func (b *Backups) Restore(ctx context.Context, st Store, name string) (*Document, error) {
	data, err := b.readRaw(name)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("restore %q: %w", name, err)
	}
	if err := st.SaveRaw(ctx, data); err != nil {
		return nil, fmt.Errorf("restore %q: %w", name, err)
	}
	return doc, nil
}

func (b *Backups) readRaw(name string) ([]byte, error) {
	fileName, err := backupFileName(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(b.dir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("backup %q: %w", fileName, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read backup: %w", err)
	}
	return data, nil
}

func (b *Backups) write(path string, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

func backupFileName(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", errors.New("backup name is required")
	}
	if strings.ContainsAny(label, `/\`) || label == "." || label == ".." {
		return "", fmt.Errorf("invalid backup name: %q", label)
	}
	if !strings.HasSuffix(label, ".json") {
		label += ".json"
	}
	return label, nil
}
