package racefeed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pitwall/gridbet/internal/platform/logging"
	"github.com/pitwall/gridbet/internal/platform/resilience"
	"github.com/pitwall/gridbet/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
		Logger:  logging.NewNop(),
	})
	return client, server
}

func TestFetchSeasonCalendar(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/seasons/2026/schedule", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"season": 2026,
			"rounds": [
				{"round": 2, "name": "Chinese Grand Prix", "date": "2026-03-15T07:00:00Z", "isSprint": true},
				{"round": 1, "name": "Australian Grand Prix", "date": "2026-03-08T04:00:00Z"}
			]
		}`)
	})
	mux.HandleFunc("/seasons/2026/rounds/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"round": 1, "country": {"name": "Australia", "flag": "au.png"}}`)
	})
	mux.HandleFunc("/seasons/2026/rounds/2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"round": 2, "country": {"name": "China", "flag": "cn.png"}}`)
	})

	client, _ := newTestClient(t, mux)
	rounds, err := client.FetchSeasonCalendar(context.Background(), 2026)
	if err != nil {
		t.Fatalf("FetchSeasonCalendar error: %v", err)
	}

	if len(rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(rounds))
	}
	if rounds[0].Round != 1 || rounds[0].Name != "Australian Grand Prix" {
		t.Fatalf("rounds not ordered by round number: %+v", rounds[0])
	}
	if rounds[0].CountryName != "Australia" || rounds[0].FlagFileName != "au.png" {
		t.Fatalf("round detail not hydrated: %+v", rounds[0])
	}
	if !rounds[1].IsSprint {
		t.Fatal("sprint flag lost")
	}
}

func TestFetchSeasonCalendar_DetailFailureKeepsScheduleRow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/seasons/2026/schedule", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"season": 2026, "rounds": [{"round": 1, "name": "Australian Grand Prix", "date": "2026-03-08T04:00:00Z"}]}`)
	})
	mux.HandleFunc("/seasons/2026/rounds/1", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})

	client, _ := newTestClient(t, mux)
	rounds, err := client.FetchSeasonCalendar(context.Background(), 2026)
	if err != nil {
		t.Fatalf("FetchSeasonCalendar error: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("expected 1 round, got %d", len(rounds))
	}
	if rounds[0].CountryName != "" {
		t.Fatalf("expected schedule-only row, got country %q", rounds[0].CountryName)
	}
}

func TestFetchSeasonCalendar_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/seasons/2026/schedule", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"season": 2026, "rounds": []}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 1,
		Logger:     logging.NewNop(),
	})

	if _, err := client.FetchSeasonCalendar(context.Background(), 2026); err != nil {
		t.Fatalf("FetchSeasonCalendar error: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestFetchSeasonCalendar_CircuitOpenMapsToDependencyUnavailable(t *testing.T) {
	client := NewClient(ClientConfig{
		BaseURL: "http://127.0.0.1:0",
		Timeout: time.Second,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
		},
	})

	// First call trips the breaker, second is rejected before any dial.
	_, _ = client.FetchSeasonCalendar(context.Background(), 2026)
	_, err := client.FetchSeasonCalendar(context.Background(), 2026)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
