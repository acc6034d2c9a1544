package usos

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"usosplanner/internal/timetable"
)

// FileCache stores entries as files under a directory, one file per key.
type FileCache struct {
	dir string
}

func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

func (c *FileCache) Get(key string) ([]byte, bool) {
	bytes, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}
	return bytes, true
}

func (c *FileCache) Put(key string, value []byte) error {
	return os.WriteFile(c.path(key), value, 0o644)
}

func (c *FileCache) path(key string) string {
	safe := strings.NewReplacer("/", "_", string(os.PathSeparator), "_").Replace(key)
	return filepath.Join(c.dir, safe)
}

// CachedProvider wraps a CourseProvider with a cache so repeated runs
// do not refetch course data.
type CachedProvider struct {
	inner CourseProvider
	cache Cache
}

func NewCachedProvider(inner CourseProvider, cache Cache) *CachedProvider {
	return &CachedProvider{inner: inner, cache: cache}
}

func (p *CachedProvider) FetchCourseGroups(courseID, term string) (map[string][]*timetable.GroupEntry, error) {
	key := fmt.Sprintf("courses_%v_%v.json", courseID, term)
	if bytes, ok := p.cache.Get(key); ok {
		var groups map[string][]*timetable.GroupEntry
		if err := json.Unmarshal(bytes, &groups); err == nil {
			return groups, nil
		}
		// unreadable cache entries are refetched, not fatal
	}

	groups, err := p.inner.FetchCourseGroups(courseID, term)
	if err != nil {
		return nil, err
	}

	if bytes, err := json.Marshal(groups); err == nil {
		if err := p.cache.Put(key, bytes); err != nil {
			return nil, fmt.Errorf("cannot cache course groups: %w", err)
		}
	}
	return groups, nil
}
