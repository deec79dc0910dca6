package config

import "time"

// Cache Constants
const (
	// CacheTTL bounds how long a summarized menu is served before it is
	// re-extracted. Hourly expiry picks up same-day menu corrections even
	// though the key already embeds the calendar date.
	CacheTTL = 1 * time.Hour

	// CacheKeyPrefix namespaces menu entries in Redis.
	CacheKeyPrefix = "menu"
)

// Fetch Constants
const (
	// FetchTimeout bounds the outbound request to the restaurant page.
	FetchTimeout = 10 * time.Second

	// BrowserUserAgent is sent with every fetch; some origin servers
	// reject clients that do not look like a browser.
	BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Extraction Constants
const (
	// DocScanTimeout bounds each OCR/PDF microservice call.
	DocScanTimeout = 15 * time.Second

	// MinRemoteTextLength is the minimum usable OCR/PDF output. Near-empty
	// output from those services indicates an unreadable source, not a
	// legitimately short menu.
	MinRemoteTextLength = 10

	// ShortHTMLWarnLength is the HTML text length below which a warning is
	// logged. Short HTML is still forwarded: boilerplate-only pages
	// ("see you Monday") are valid signal for a closed restaurant.
	ShortHTMLWarnLength = 50
)

// Prompt Constants
const (
	// MaxPromptTextLength caps the extracted text embedded in the prompt,
	// in runes. Trailing content beyond the cap is dropped silently.
	MaxPromptTextLength = 20000

	// ClosureMarker annotates the restaurant name when the page states the
	// restaurant is closed today.
	ClosureMarker = "ZAVŘENO"
)

// AI Constants
const (
	// AITimeout bounds each completion call. Model responses are slower
	// than the other outbound calls, but a hung provider must not hang
	// the request.
	AITimeout = 60 * time.Second

	// DefaultModel is used when OPENAI_MODEL is not set.
	DefaultModel = "gpt-4o-mini"

	// MenuToolName is the function tool the model must call to return
	// structured menu data.
	MenuToolName = "save_menu_json"
)

// Service Defaults
const (
	// DefaultDocScanBaseURL is where the OCR/PDF microservice listens when
	// DOCSCAN_BASE_URL is not set.
	DefaultDocScanBaseURL = "http://localhost:8000"

	// DefaultRedisAddr is used when REDIS_ADDR is not set.
	DefaultRedisAddr = "localhost:6379"
)
