package content

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// FlatFileSource reads documents from a directory tree. Each file carries a
// front-matter block followed by a markdown body; the identity of a document
// is its root-relative path without the extension.
//
// With autoReload enabled the tree is re-scanned on every call, so files can
// be edited out-of-band without restarting the server. A document changed
// mid-scan may be observed in a partially consistent state; that is accepted.
type FlatFileSource struct {
	root       string
	ext        string
	autoReload bool

	mu     sync.Mutex
	cache  []Item
	loaded bool
}

// NewFlatFileSource creates a source over root for files with the given
// extension (".md" style, leading dot included).
func NewFlatFileSource(root, ext string, autoReload bool) *FlatFileSource {
	return &FlatFileSource{root: root, ext: ext, autoReload: autoReload}
}

// List returns all documents matching the filter, unordered. Callers apply
// the sort that suits the listing.
func (s *FlatFileSource) List(filter Filter) ([]Item, error) {
	items, err := s.items()
	if err != nil {
		return nil, err
	}

	matched := make([]Item, 0, len(items))
	for _, item := range items {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.PathPrefix != "" && !strings.HasPrefix(item.ID, filter.PathPrefix) {
			continue
		}
		matched = append(matched, item)
	}
	return matched, nil
}

// Get resolves a single document by its path identifier.
func (s *FlatFileSource) Get(id string) (*Item, error) {
	cleaned := path.Clean(strings.TrimPrefix(id, "/"))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") {
		return nil, ErrNotFound
	}

	raw, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(cleaned)+s.ext))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read document %s: %w", cleaned, err)
	}

	item, err := parseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", cleaned, err)
	}
	finishItem(&item, cleaned)
	return &item, nil
}

func (s *FlatFileSource) items() ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded && !s.autoReload {
		return s.cache, nil
	}

	items, err := s.scan()
	if err != nil {
		return nil, err
	}

	s.cache = items
	s.loaded = true
	return items, nil
}

func (s *FlatFileSource) scan() ([]Item, error) {
	var items []Item

	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// A missing content root just means no documents yet.
			if os.IsNotExist(err) && p == s.root {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), s.ext) {
			return nil
		}

		raw, err := os.ReadFile(p)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		id := strings.TrimSuffix(filepath.ToSlash(rel), s.ext)

		item, parseErr := parseDocument(raw)
		if parseErr != nil {
			return fmt.Errorf("document %s: %w", id, parseErr)
		}
		finishItem(&item, id)
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan content root %s: %w", s.root, err)
	}

	return items, nil
}

// finishItem fills the path-derived fields of a parsed document.
func finishItem(item *Item, id string) {
	item.ID = id

	if item.Category == "" {
		switch {
		case strings.HasPrefix(id, PrefixNews):
			item.Category = CategoryNews
		case strings.HasPrefix(id, PrefixMonthProblems):
			item.Category = CategoryMonthProblem
		}
	}

	if item.Title == "" {
		item.Title = path.Base(id)
	}
}
