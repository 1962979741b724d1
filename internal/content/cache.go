package content

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/poplingo/internal/language"
)

// SpeechCache stores synthesized PCM on disk so replaying a word costs no request.
// All other calls pass straight through.
type SpeechCache struct {
	Provider
	dir     string
	voiceID string
}

const cacheExt = ".pcm"

// NewSpeechCache wraps next with a cache under dir. voiceID distinguishes voice settings.
// A nil next gives a cache that can only be inspected or cleared.
func NewSpeechCache(next Provider, dir, voiceID string) (*SpeechCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &SpeechCache{Provider: next, dir: dir, voiceID: voiceID}, nil
}

// Speech returns cached audio when present, otherwise synthesizes and stores it
func (c *SpeechCache) Speech(ctx context.Context, text string, lang language.Language) ([]byte, error) {
	path := c.path(text, lang)
	if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
		return data, nil
	}

	data, err := c.Provider.Speech(ctx, text, lang)
	if err != nil {
		return nil, err
	}

	_ = writeAtomic(path, data) // Ignore cache errors
	return data, nil
}

// writeAtomic writes to a temporary file next to path and renames it into
// place, so concurrent readers see either nothing or the whole payload
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".pcm-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// path generates a cache file path for the given text
func (c *SpeechCache) path(text string, lang language.Language) string {
	h := md5.New()
	h.Write([]byte(text))
	h.Write([]byte(lang.Code()))
	h.Write([]byte(c.voiceID))
	hash := hex.EncodeToString(h.Sum(nil))

	// Use first 2 chars as subdirectory for better file system performance
	return filepath.Join(c.dir, hash[:2], hash[2:]+cacheExt)
}

// Clear removes all cached audio files
func (c *SpeechCache) Clear() error {
	return os.RemoveAll(c.dir)
}

// Dir returns the cache location
func (c *SpeechCache) Dir() string {
	return c.dir
}

// Stats returns the number and total size of cached files. A missing
// directory is an empty cache.
func (c *SpeechCache) Stats() (fileCount int, totalSize int64, err error) {
	err = filepath.Walk(c.dir, func(path string, info os.FileInfo, err error) error {
		if errors.Is(err, os.ErrNotExist) && path == c.dir {
			return filepath.SkipDir
		}
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, cacheExt) {
			fileCount++
			totalSize += info.Size()
		}
		return nil
	})
	return fileCount, totalSize, err
}
