package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bnema/page-migration/internal/adapters/output"
	"github.com/bnema/page-migration/internal/domain"
	"github.com/bnema/page-migration/internal/ports"
)

const (
	DirName = ".cache"

	fingerprintVersion = "v1"
	fileNameLength     = 8
	entryFileMode      = 0o644

	keyFingerprint = "fingerprint"
	keyContent     = "content"
	keyCachedAt    = "cached_at"
)

// Cache stores agent answers under <output root>/.cache keyed by a fingerprint
// of the prompt and the input it was run on.
type Cache struct {
	dir     string
	enabled bool
	now     func() time.Time
	logger  *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

var _ ports.PromptCache = (*Cache)(nil)

type Usage struct {
	Dir     string
	Entries int
	Bytes   int64
}

func NewCache(outputRoot string, enabled bool, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}

	return &Cache{
		dir:     filepath.Join(outputRoot, DirName),
		enabled: enabled,
		now:     time.Now,
		logger:  logger,
	}
}

// Fingerprint is the hex SHA-256 of "v1:<prompt>:<input>".
func Fingerprint(promptContent, inputContent string) string {
	sum := sha256.Sum256([]byte(fingerprintVersion + ":" + promptContent + ":" + inputContent))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) Fingerprint(promptContent, inputContent string) string {
	return Fingerprint(promptContent, inputContent)
}

func (c *Cache) Enabled() bool {
	return c.enabled
}

func (c *Cache) Dir() string {
	return c.dir
}

// Cached reports whether an entry file exists for fingerprint, without
// validating or counting it.
func (c *Cache) Cached(fingerprint string) bool {
	if !c.enabled {
		return false
	}

	_, err := os.Stat(c.path(fingerprint))
	return err == nil
}

// Get counts a hit or a miss. Unreadable, corrupt and foreign entries are misses.
func (c *Cache) Get(ctx context.Context, fingerprint string) (string, bool) {
	if !c.enabled || ctx.Err() != nil {
		return "", false
	}

	entry, ok := c.read(fingerprint)
	if !ok {
		c.misses.Add(1)
		return "", false
	}

	c.hits.Add(1)
	return entry.Content, true
}

func (c *Cache) Set(ctx context.Context, fingerprint string, content string, metadata map[string]string) error {
	if !c.enabled {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	record := make(map[string]any, len(metadata)+3)
	for key, value := range metadata {
		record[key] = value
	}
	record[keyFingerprint] = fingerprint
	record[keyContent] = content
	record[keyCachedAt] = c.now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	if err := output.WriteFileAtomic(c.path(fingerprint), data, entryFileMode); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}

	return nil
}

// Fetch returns the cached answer or runs compute. Only non-empty answers are
// stored, and compute errors are returned without touching the cache.
func (c *Cache) Fetch(ctx context.Context, promptContent, inputContent string, metadata map[string]string, compute func(context.Context) (string, error)) (string, error) {
	fingerprint := c.Fingerprint(promptContent, inputContent)

	if content, ok := c.Get(ctx, fingerprint); ok {
		c.logger.Debug("cache hit", "fingerprint", prefix(fingerprint))
		return content, nil
	}

	content, err := compute(ctx)
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", nil
	}

	if err := c.Set(ctx, fingerprint, content, metadata); err != nil {
		c.logger.Warn("cache write failed", "fingerprint", prefix(fingerprint), "error", err)
	}

	return content, nil
}

func (c *Cache) Stats() domain.CacheStats {
	return domain.CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Clear removes every entry and resets the counters.
func (c *Cache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	c.hits.Store(0)
	c.misses.Store(0)
	return nil
}

// Usage summarizes the entries currently on disk.
func (c *Cache) Usage() (Usage, error) {
	usage := Usage{Dir: c.dir}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return usage, nil
		}
		return usage, fmt.Errorf("read cache directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		usage.Entries++
		usage.Bytes += info.Size()
	}

	return usage, nil
}

// Entry loads the full stored record for fingerprint.
func (c *Cache) Entry(fingerprint string) (domain.CacheEntry, bool) {
	if !c.enabled {
		return domain.CacheEntry{}, false
	}
	return c.read(fingerprint)
}

func (c *Cache) read(fingerprint string) (domain.CacheEntry, bool) {
	data, err := os.ReadFile(c.path(fingerprint))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug("cache entry unreadable", "fingerprint", prefix(fingerprint), "error", err)
		}
		return domain.CacheEntry{}, false
	}

	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		c.logger.Debug("cache entry corrupt", "fingerprint", prefix(fingerprint), "error", err)
		return domain.CacheEntry{}, false
	}

	stored, _ := record[keyFingerprint].(string)
	content, isString := record[keyContent].(string)
	if stored != fingerprint || !isString {
		return domain.CacheEntry{}, false
	}

	entry := domain.CacheEntry{Fingerprint: stored, Content: content}
	if raw, ok := record[keyCachedAt].(string); ok {
		if cachedAt, err := time.Parse(time.RFC3339, raw); err == nil {
			entry.CachedAt = cachedAt
		}
	}

	for key, value := range record {
		if key == keyFingerprint || key == keyContent || key == keyCachedAt {
			continue
		}
		if entry.Metadata == nil {
			entry.Metadata = map[string]string{}
		}
		if text, ok := value.(string); ok {
			entry.Metadata[key] = text
		} else {
			entry.Metadata[key] = fmt.Sprint(value)
		}
	}

	return entry, true
}

func (c *Cache) path(fingerprint string) string {
	return filepath.Join(c.dir, prefix(fingerprint)+".json")
}

func prefix(fingerprint string) string {
	fingerprint = strings.ToLower(strings.TrimSpace(fingerprint))
	if len(fingerprint) > fileNameLength {
		return fingerprint[:fileNameLength]
	}
	return fingerprint
}
