package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestSearch_ShortQuerySkipsLookup(t *testing.T) {
	t.Parallel()

	calls := int32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	c := New(server.URL)
	got, err := c.Search(context.Background(), "ab")
	if err != nil || got != nil {
		t.Errorf("short query: got %v, %v", got, err)
	}
	if calls != 0 {
		t.Errorf("short query must not hit the service, got %d calls", calls)
	}
}

func TestSearch_ParsesSuggestions(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "Tahrir" {
			t.Errorf("unexpected query %q", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"display_name":"Tahrir Square, Cairo","lat":"30.04","lon":"31.23"}]`))
	}))
	defer server.Close()

	c := New(server.URL)
	got, err := c.Search(context.Background(), "Tahrir")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].DisplayName != "Tahrir Square, Cairo" {
		t.Errorf("suggestions wrong: %+v", got)
	}
}

func TestReverse_FallsBackToCoordinates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL)
	got := c.Reverse(context.Background(), 30.044420, 31.235712)
	if got != "30.044420, 31.235712" {
		t.Errorf("fallback wrong: %q", got)
	}
}

func TestReverse_ReturnsDisplayName(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name":"Tahrir Square, Cairo"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	if got := c.Reverse(context.Background(), 30.04, 31.23); got != "Tahrir Square, Cairo" {
		t.Errorf("got %q", got)
	}
}
