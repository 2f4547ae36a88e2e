package kv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

var _ Store = (*LevelDB)(nil)

// LevelDB persists keys in a LevelDB database on local disk.
type LevelDB struct {
	db *leveldb.DB
}

// OpenLevelDB opens (or creates) a LevelDB database at path.
func OpenLevelDB(path string) (*LevelDB, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("leveldb path required")
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("resolve leveldb path: %w", err)
	}
	db, err := leveldb.OpenFile(abs, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb store: %w", err)
	}
	return &LevelDB{db: db}, nil
}

func (s *LevelDB) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	value, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", key, err)
	}
	return value, nil
}

// Put writes synchronously so a crash right after a mutation never loses it.
func (s *LevelDB) Put(ctx context.Context, key string, value []byte) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.db.Put([]byte(key), value, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("store %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying LevelDB resources.
func (s *LevelDB) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *LevelDB) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("leveldb store not configured")
	}
	return nil
}
