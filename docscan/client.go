// Package docscan is the HTTP client for the OCR/PDF text-extraction
// microservice. The service downloads the target itself; we only hand it
// the URL.
//
// Endpoints: POST {base}/ocr and POST {base}/pdf, body {"url": ...},
// response {"text": ...}.
package docscan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Soptik1290/restaurant-menu-summarizer/config"
	"github.com/Soptik1290/restaurant-menu-summarizer/menuerr"
)

// Client calls the OCR/PDF microservice with a bounded per-call timeout.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a Client for the service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: config.DocScanTimeout},
	}
}

type extractRequest struct {
	URL string `json:"url"`
}

type extractResponse struct {
	Text string `json:"text"`
}

// OCR returns the text recognized in the image at url.
func (c *Client) OCR(ctx context.Context, url string) (string, error) {
	return c.post(ctx, "/ocr", url)
}

// PDF returns the text extracted from the PDF at url.
func (c *Client) PDF(ctx context.Context, url string) (string, error) {
	return c.post(ctx, "/pdf", url)
}

func (c *Client) post(ctx context.Context, path, url string) (string, error) {
	payload, err := json.Marshal(extractRequest{URL: url})
	if err != nil {
		return "", menuerr.Wrap(menuerr.KindInternal, "encoding docscan request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", menuerr.Wrap(menuerr.KindSubserviceUnavailable, "building docscan request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", menuerr.Wrap(menuerr.KindSubserviceTimeout, fmt.Sprintf("docscan %s timed out", path), err)
		}
		return "", menuerr.Wrap(menuerr.KindSubserviceUnavailable, fmt.Sprintf("docscan %s unreachable", path), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", menuerr.New(menuerr.KindSubserviceUnavailable,
			fmt.Sprintf("docscan %s returned %d: %s", path, resp.StatusCode, bytes.TrimSpace(detail)))
	}

	var parsed extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", menuerr.Wrap(menuerr.KindSubserviceUnavailable, fmt.Sprintf("decoding docscan %s response", path), err)
	}
	return parsed.Text, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
