package audio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sakina-app/core/internal/quran"
)

func TestCatalog_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recitations/alafasy/2/255" {
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"audio_url":"https://cdn.example/2_255.mp3","duration_ms":45200,"format":"mp3"}`))
	}))
	defer srv.Close()

	c := NewCatalog(srv.URL)
	entry, err := c.Lookup(context.Background(),
		quran.Reciter{ID: "alafasy"},
		quran.VerseID{Surah: 2, Verse: 255})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	if entry.AudioURL != "https://cdn.example/2_255.mp3" {
		t.Errorf("AudioURL = %q", entry.AudioURL)
	}
	if entry.Duration() != 45200*time.Millisecond {
		t.Errorf("Duration() = %v, want 45.2s", entry.Duration())
	}
}

func TestCatalog_Lookup_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewCatalog(srv.URL)
	_, err := c.Lookup(context.Background(),
		quran.Reciter{ID: "alafasy"},
		quran.VerseID{Surah: 2, Verse: 255})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCatalog_Lookup_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCatalog(srv.URL)
	_, err := c.Lookup(ctx, quran.Reciter{ID: "alafasy"}, quran.VerseID{Surah: 1, Verse: 1})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestCatalog_Fetch(t *testing.T) {
	const body = "mp3-bytes"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	dir := t.TempDir()
	dst := filepath.Join(dir, "out.mp3")

	c := NewCatalog(srv.URL)
	if err := c.Fetch(context.Background(), srv.URL+"/audio.mp3", dst); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("reading fetched file: %v", err)
	}
	if string(got) != body {
		t.Errorf("fetched content = %q, want %q", got, body)
	}

	// No temp files left behind
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1", len(entries))
	}
}

func TestCatalog_Fetch_ErrorLeavesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := t.TempDir()
	dst := filepath.Join(dir, "out.mp3")

	c := NewCatalog(srv.URL)
	if err := c.Fetch(context.Background(), srv.URL+"/audio.mp3", dst); err == nil {
		t.Fatal("expected fetch error")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("dir has %d entries, want 0 (no partial state)", len(entries))
	}
}
