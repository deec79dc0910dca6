// Package fetcher retrieves raw page content for a restaurant URL and
// classifies transport failures into the pipeline's error taxonomy.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Soptik1290/restaurant-menu-summarizer/config"
	"github.com/Soptik1290/restaurant-menu-summarizer/menuerr"
)

// Content is the raw body and declared content type of a fetched page.
// It is consumed by the content-type router and never persisted.
type Content struct {
	Body        []byte
	ContentType string
}

// HTTPFetcher fetches pages with a browser-like identity and a bounded
// timeout.
type HTTPFetcher struct {
	client *http.Client
	log    zerolog.Logger
}

// New creates an HTTPFetcher with the configured timeout.
func New(log zerolog.Logger) *HTTPFetcher {
	return NewWithClient(&http.Client{Timeout: config.FetchTimeout}, log)
}

// NewWithClient constructs a fetcher around a preconfigured HTTP client.
func NewWithClient(client *http.Client, log zerolog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: client,
		log:    log.With().Str("component", "fetcher").Logger(),
	}
}

// Fetch retrieves the body and content type of url.
//
// Failures map onto the taxonomy: origin 404 is a broken link, a client
// deadline or origin 504 is a slow site, anything else is a generic
// upstream failure. No partial state is retained.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Content, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, menuerr.Wrap(menuerr.KindFetchUpstream, "building request", err)
	}
	req.Header.Set("User-Agent", config.BrowserUserAgent)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, menuerr.Wrap(menuerr.KindFetchTimeout, fmt.Sprintf("fetching %s", url), err)
		}
		return nil, menuerr.Wrap(menuerr.KindFetchUpstream, fmt.Sprintf("fetching %s", url), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, menuerr.New(menuerr.KindFetchNotFound, fmt.Sprintf("page not found: %s", url))
	case resp.StatusCode == http.StatusGatewayTimeout:
		return nil, menuerr.New(menuerr.KindFetchTimeout, fmt.Sprintf("origin timed out: %s", url))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, menuerr.New(menuerr.KindFetchUpstream, fmt.Sprintf("unexpected status %d for %s", resp.StatusCode, url))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, menuerr.Wrap(menuerr.KindFetchTimeout, fmt.Sprintf("reading body of %s", url), err)
		}
		return nil, menuerr.Wrap(menuerr.KindFetchUpstream, fmt.Sprintf("reading body of %s", url), err)
	}

	f.log.Info().
		Str("url", url).
		Str("content_type", resp.Header.Get("Content-Type")).
		Int("bytes", len(body)).
		Dur("took", time.Since(start)).
		Msg("Fetched page content")

	return &Content{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
