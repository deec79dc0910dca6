// Package menu orchestrates the extraction pipeline: cache-aside lookup,
// fetch, content-type-routed extraction, prompted model call, assembly and
// cache write. Stages run strictly sequentially; any failure invalidates
// the cache key before it propagates, so the cache never holds a result for
// a failed run.
package menu

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Soptik1290/restaurant-menu-summarizer/ai"
	"github.com/Soptik1290/restaurant-menu-summarizer/fetcher"
	"github.com/Soptik1290/restaurant-menu-summarizer/menuerr"
	"github.com/Soptik1290/restaurant-menu-summarizer/prompt"
	"github.com/Soptik1290/restaurant-menu-summarizer/types"
)

// Cache is the minimal cache gateway required by the summarizer.
type Cache interface {
	Get(ctx context.Context, day time.Time, sourceURL string) (*types.MenuResult, bool, error)
	Set(ctx context.Context, day time.Time, sourceURL string, result *types.MenuResult) error
	Invalidate(ctx context.Context, day time.Time, sourceURL string)
}

// Fetcher retrieves raw page content for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Content, error)
}

// Extractor turns fetched content into plain text.
type Extractor interface {
	Extract(ctx context.Context, content *fetcher.Content, sourceURL string) (string, error)
}

// AIClient extracts structured menu data from a prompt.
type AIClient interface {
	Extract(ctx context.Context, p prompt.Payload) (*ai.RawMenu, error)
}

// Summarizer runs the menu extraction pipeline. All collaborators are
// explicit dependencies so tests can substitute fakes.
type Summarizer struct {
	cache     Cache
	fetcher   Fetcher
	extractor Extractor
	ai        AIClient
	now       func() time.Time
	log       zerolog.Logger
}

// NewSummarizer wires the pipeline from its collaborators.
func NewSummarizer(c Cache, f Fetcher, e Extractor, a AIClient, log zerolog.Logger) *Summarizer {
	return &Summarizer{
		cache:     c,
		fetcher:   f,
		extractor: e,
		ai:        a,
		now:       time.Now,
		log:       log.With().Str("component", "summarizer").Logger(),
	}
}

// WithClock replaces the summarizer's time source. Used by tests to pin the
// invocation date.
func (s *Summarizer) WithClock(now func() time.Time) *Summarizer {
	s.now = now
	return s
}

// Summarize returns today's structured menu for url, serving from cache
// when a same-day entry exists. A cached value is returned verbatim with no
// further validation; its staleness is bounded by the key's date component
// and the TTL.
func (s *Summarizer) Summarize(ctx context.Context, url string) (*types.MenuResult, error) {
	day := s.now()

	cached, ok, err := s.cache.Get(ctx, day, url)
	if err != nil {
		// A broken cache read is not fatal; fall through to the pipeline.
		s.log.Warn().Str("url", url).Err(err).Msg("Cache lookup failed; running pipeline")
	}
	if ok {
		s.log.Info().Str("url", url).Msg("Serving menu from cache")
		return cached, nil
	}

	result, err := s.run(ctx, day, url)
	if err != nil {
		// Clear any stale prior entry so a failed run is never served.
		s.cache.Invalidate(ctx, day, url)
		return nil, err
	}

	// Write-then-return: a crash after the write leaves a correct cache,
	// a crash before it means the caller saw nothing at all.
	if err := s.cache.Set(ctx, day, url, result); err != nil {
		s.cache.Invalidate(ctx, day, url)
		return nil, menuerr.Wrap(menuerr.KindInternal, "writing result to cache", err)
	}

	return result, nil
}

func (s *Summarizer) run(ctx context.Context, day time.Time, url string) (*types.MenuResult, error) {
	s.log.Info().Str("url", url).Msg("Starting menu summarization")

	content, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	text, err := s.extractor.Extract(ctx, content, url)
	if err != nil {
		return nil, err
	}

	raw, err := s.ai.Extract(ctx, prompt.Build(day, text))
	if err != nil {
		return nil, err
	}

	return Assemble(raw, day, url), nil
}

// Assemble merges the validated model output with the pipeline's own date
// and source URL. Both are set unconditionally; nothing the model echoed
// back is trusted for these fields. Pure and idempotent.
func Assemble(raw *ai.RawMenu, day time.Time, sourceURL string) *types.MenuResult {
	items := raw.MenuItems
	if items == nil || !raw.DailyMenuFound {
		items = []types.MenuItem{}
	}
	return &types.MenuResult{
		RestaurantName: raw.RestaurantName,
		MenuItems:      items,
		DailyMenuFound: raw.DailyMenuFound,
		Date:           day.Format("2006-01-02"),
		SourceURL:      sourceURL,
	}
}
