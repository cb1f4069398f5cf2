package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sakina-app/core/internal/quran"
)

func TestCachedResolver_FetchesOnceThenServesFromCache(t *testing.T) {
	var lookups, fetches atomic.Int64

	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/recitations/", func(w http.ResponseWriter, r *http.Request) {
		lookups.Add(1)
		w.Write([]byte(`{"audio_url":"` + srv.URL + `/audio.mp3","duration_ms":5000,"format":"mp3"}`))
	})
	mux.HandleFunc("/audio.mp3", func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Write([]byte("mp3"))
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	cache := setupTestCache(t)
	resolver := NewCachedResolver(NewCatalog(srv.URL), cache)

	reciter := quran.Reciter{ID: "husary"}
	verse := quran.VerseID{Surah: 36, Verse: 1}

	first, err := resolver.Resolve(context.Background(), verse, reciter)
	if err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}

	second, err := resolver.Resolve(context.Background(), verse, reciter)
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}

	if lookups.Load() != 1 || fetches.Load() != 1 {
		t.Errorf("lookups=%d fetches=%d, want 1 each", lookups.Load(), fetches.Load())
	}
	if first.Path != second.Path {
		t.Errorf("paths differ: %q vs %q", first.Path, second.Path)
	}
	if second.Duration != first.Duration {
		t.Errorf("durations differ: %v vs %v", first.Duration, second.Duration)
	}
}

func TestCachedResolver_RejectsInvalidInput(t *testing.T) {
	cache := setupTestCache(t)
	resolver := NewCachedResolver(NewCatalog("http://unused.invalid"), cache)

	if _, err := resolver.Resolve(context.Background(), quran.VerseID{Surah: 1, Verse: 1}, quran.Reciter{}); err == nil {
		t.Error("expected error for missing reciter")
	}
	if _, err := resolver.Resolve(context.Background(), quran.VerseID{Surah: 0, Verse: 0}, quran.Reciter{ID: "x"}); err == nil {
		t.Error("expected error for invalid verse")
	}
}

func TestCachedResolver_CancelledContext(t *testing.T) {
	cache := setupTestCache(t)
	resolver := NewCachedResolver(NewCatalog("http://unused.invalid"), cache)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := resolver.Resolve(ctx, quran.VerseID{Surah: 1, Verse: 1}, quran.Reciter{ID: "x"}); err == nil {
		t.Error("expected error for cancelled context")
	}
}
