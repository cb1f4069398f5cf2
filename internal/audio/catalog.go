package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sakina-app/core/internal/quran"
)

const (
	defaultBaseURL = "https://audio.sakina.app/api/v1"
	userAgent      = "sakina-core/1.0 (https://github.com/sakina-app/core)"
)

// Catalog is a client for the recitation audio catalog.
type Catalog struct {
	baseURL    string
	httpClient *http.Client
}

// NewCatalog creates a catalog client. An empty baseURL selects the default
// endpoint.
func NewCatalog(baseURL string) *Catalog {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Catalog{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Entry is the catalog's description of one verse recording.
type Entry struct {
	AudioURL   string `json:"audio_url"`
	DurationMS int64  `json:"duration_ms"`
	Format     string `json:"format"`
}

// Duration returns the recording length.
func (e Entry) Duration() time.Duration {
	return time.Duration(e.DurationMS) * time.Millisecond
}

// Lookup fetches the catalog entry for a verse recording.
func (c *Catalog) Lookup(ctx context.Context, reciter quran.Reciter, verse quran.VerseID) (Entry, error) {
	reqURL := fmt.Sprintf("%s/recitations/%s/%d/%d", c.baseURL, reciter.ID, verse.Surah, verse.Verse)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return Entry{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Entry{}, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Entry{}, ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return Entry{}, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var entry Entry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return Entry{}, fmt.Errorf("decode response: %w", err)
	}

	if entry.AudioURL == "" {
		return Entry{}, ErrNotFound
	}

	return entry, nil
}

// Fetch downloads url into dst. The download goes through a temp file in
// dst's directory and is renamed into place only on success, so a cancelled
// or failed fetch leaves nothing behind.
func (c *Catalog) Fetch(ctx context.Context, url, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".fetch-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return nil
}
