package dedup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store remembers posting URLs across runs.
type Store interface {
	IsSeen(ctx context.Context, url string) (bool, error)
	Add(ctx context.Context, urls []string) error
	Close() error
}

type seenEntry struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
}

// FileStore keeps seen URLs in a JSON file. Entries older than ttl are
// dropped on load.
type FileStore struct {
	mu       sync.Mutex
	filePath string
	ttl      time.Duration
	seen     map[string]int64
	logger   *zap.Logger
	now      func() time.Time
}

const DefaultTTL = 30 * 24 * time.Hour

// NewFileStore creates or loads seen_postings.json inside cacheDir.
func NewFileStore(cacheDir string, ttl time.Duration, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	store := &FileStore{
		filePath: filepath.Join(cacheDir, "seen_postings.json"),
		ttl:      ttl,
		seen:     make(map[string]int64),
		logger:   logger,
		now:      time.Now,
	}
	store.load()
	return store, nil
}

func (s *FileStore) IsSeen(_ context.Context, url string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.seen[url]
	return exists, nil
}

func (s *FileStore) Add(_ context.Context, urls []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UnixMilli()
	changed := false
	for _, url := range urls {
		if _, exists := s.seen[url]; !exists {
			s.seen[url] = now
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return s.save()
}

func (s *FileStore) Close() error {
	return nil
}

// load reads the cache from disk, skipping expired entries
func (s *FileStore) load() {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read seen cache", zap.String("path", s.filePath), zap.Error(err))
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("failed to parse seen cache", zap.String("path", s.filePath), zap.Error(err))
		return
	}

	cutoff := s.now().Add(-s.ttl).UnixMilli()
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			s.seen[e.URL] = e.Timestamp
			loaded++
		}
	}
	s.logger.Info("loaded seen postings", zap.Int("loaded", loaded), zap.Int("expired", len(entries)-loaded))
}

// save writes the current cache to disk, caller holds mu
func (s *FileStore) save() error {
	entries := make([]seenEntry, 0, len(s.seen))
	for url, ts := range s.seen {
		entries = append(entries, seenEntry{URL: url, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0644)
}
