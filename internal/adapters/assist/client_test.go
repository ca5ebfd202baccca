package assist_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"smartstay/internal/adapters/assist"
)

func TestClient_PlanTrip_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			var in map[string]any
			_ = json.NewDecoder(r.Body).Decode(&in)
			w.WriteHeader(200)
			_ = json.NewEncoder(w).Encode(map[string]any{"plan": "done", "destination": in["destination"]})
		}
	}))
	defer ts.Close()

	cl, err := assist.New(ts.URL, 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := cl.PlanTrip(ctx, map[string]any{"destination": "Goa"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got["plan"] != "done" || got["destination"] != "Goa" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_Chat_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, err := assist.New(ts.URL, 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err = cl.Chat(ctx, map[string]any{"message": "hi"}); !errors.Is(err, assist.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_RequiresBaseURL(t *testing.T) {
	if _, err := assist.New("", 5); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}

func TestClient_ForwardsBodyVerbatim(t *testing.T) {
	var seen map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&seen)
		w.WriteHeader(200)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer ts.Close()

	cl, _ := assist.New(ts.URL, 100)
	req := map[string]any{"destination": "Manali", "days": float64(4), "budget": "mid"}
	if _, err := cl.PlanSoloTrip(context.Background(), req); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if seen["destination"] != "Manali" || seen["days"] != float64(4) || seen["budget"] != "mid" {
		t.Fatalf("body not forwarded verbatim: %+v", seen)
	}
}
