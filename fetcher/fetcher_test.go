package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Soptik1290/restaurant-menu-summarizer/menuerr"
)

func TestFetchSuccess(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>PÁTEK: Polévka, 45 Kč</body></html>"))
	}))
	defer srv.Close()

	f := New(zerolog.Nop())
	content, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if content.ContentType != "text/html; charset=utf-8" {
		t.Errorf("ContentType = %q", content.ContentType)
	}
	if len(content.Body) == 0 {
		t.Error("Fetch() returned empty body")
	}
	if gotUA == "" || gotUA == "Go-http-client/1.1" {
		t.Errorf("request did not carry a browser-like User-Agent, got %q", gotUA)
	}
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := New(zerolog.Nop())
	_, err := f.Fetch(context.Background(), srv.URL)
	if got := menuerr.Classify(err); got != menuerr.KindFetchNotFound {
		t.Errorf("Classify(err) = %s, want %s (err=%v)", got, menuerr.KindFetchNotFound, err)
	}
}

func TestFetchOriginGatewayTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	f := New(zerolog.Nop())
	_, err := f.Fetch(context.Background(), srv.URL)
	if got := menuerr.Classify(err); got != menuerr.KindFetchTimeout {
		t.Errorf("Classify(err) = %s, want %s (err=%v)", got, menuerr.KindFetchTimeout, err)
	}
}

func TestFetchUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := New(zerolog.Nop())
	_, err := f.Fetch(context.Background(), srv.URL)
	if got := menuerr.Classify(err); got != menuerr.KindFetchUpstream {
		t.Errorf("Classify(err) = %s, want %s (err=%v)", got, menuerr.KindFetchUpstream, err)
	}
}

func TestFetchClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	f := NewWithClient(&http.Client{Timeout: 30 * time.Millisecond}, zerolog.Nop())
	_, err := f.Fetch(context.Background(), srv.URL)
	if got := menuerr.Classify(err); got != menuerr.KindFetchTimeout {
		t.Errorf("Classify(err) = %s, want %s (err=%v)", got, menuerr.KindFetchTimeout, err)
	}
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	f := New(zerolog.Nop())
	_, err := f.Fetch(context.Background(), addr)
	if got := menuerr.Classify(err); got != menuerr.KindFetchUpstream {
		t.Errorf("Classify(err) = %s, want %s (err=%v)", got, menuerr.KindFetchUpstream, err)
	}
}
