// Package cache persists raw API documents as one JSON file per
// identifier. Each identifier may be written at most once; later
// writes fail with ErrAlreadyCached instead of replacing the file.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tweetkit/internal/model"
)

// Kind selects one of the two disjoint storage areas.
type Kind string

const (
	KindTweet Kind = "tweets"
	KindUser  Kind = "users"
)

// ErrAlreadyCached is returned by Put when the identifier already has a
// cache file. The existing file is left untouched.
var ErrAlreadyCached = errors.New("already cached")

// MetaKey is the document key Load injects filesystem timestamps under.
const MetaKey = "_cache_meta"

// Store is a two-area file cache rooted at an explicit directory.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) path(id string, kind Kind) string {
	return filepath.Join(s.root, string(kind), id)
}

// Load reads the cached document for id, augmenting it with the cache
// file's ctime/mtime/atime under MetaKey. A missing file is not an
// error: Load reports ok=false.
func (s *Store) Load(id string, kind Kind) (model.Document, bool, error) {
	p := s.path(id, kind)
	fi, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false, err
	}
	var doc model.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, false, fmt.Errorf("cache file %s: %w", p, err)
	}
	ctime, mtime, atime := fileTimes(fi)
	doc[MetaKey] = map[string]any{
		"ctime": ctime,
		"mtime": mtime,
		"atime": atime,
	}
	return doc, true, nil
}

// Put serializes doc as the cache file for id, creating the kind's
// storage area on first use. Writing an identifier that already has a
// file fails with ErrAlreadyCached.
func (s *Store) Put(id string, kind Kind, doc model.Document) error {
	p := s.path(id, kind)
	if _, err := os.Stat(p); err == nil {
		return fmt.Errorf("%s %s: %w", kind, id, ErrAlreadyCached)
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o644)
}
