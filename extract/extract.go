// Package extract turns fetched page content into plain text. The declared
// content type selects one of three strategies: local HTML parsing, remote
// OCR for images, or remote PDF extraction.
package extract

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/Soptik1290/restaurant-menu-summarizer/config"
	"github.com/Soptik1290/restaurant-menu-summarizer/fetcher"
	"github.com/Soptik1290/restaurant-menu-summarizer/menuerr"
)

// MediaKind is the closed set of recognized content categories.
type MediaKind int

const (
	MediaUnknown MediaKind = iota
	MediaHTML
	MediaImage
	MediaPDF
)

// ClassifyMedia maps a declared content-type header onto the media set.
// Matching is a case-insensitive substring check: headers routinely carry
// parameters ("text/html; charset=utf-8").
func ClassifyMedia(contentType string) MediaKind {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "text/html"):
		return MediaHTML
	case strings.Contains(ct, "image/"):
		return MediaImage
	case strings.Contains(ct, "application/pdf"):
		return MediaPDF
	default:
		return MediaUnknown
	}
}

// DocScanner is the remote OCR/PDF extraction service.
type DocScanner interface {
	OCR(ctx context.Context, url string) (string, error)
	PDF(ctx context.Context, url string) (string, error)
}

// Extractor routes fetched content to the matching text extraction strategy.
type Extractor struct {
	scanner DocScanner
	log     zerolog.Logger
}

// New creates an Extractor using scanner for the image and PDF paths.
func New(scanner DocScanner, log zerolog.Logger) *Extractor {
	return &Extractor{
		scanner: scanner,
		log:     log.With().Str("component", "extract").Logger(),
	}
}

// Extract returns the plain text of content, which was fetched from
// sourceURL. The OCR and PDF services re-download the source themselves, so
// those paths pass the URL rather than the body.
//
// The length policy is asymmetric: short HTML text is forwarded with a
// warning, because boilerplate-only pages are valid "closed today" signal,
// while near-empty OCR/PDF output almost always means the source was
// unreadable and is rejected.
func (e *Extractor) Extract(ctx context.Context, content *fetcher.Content, sourceURL string) (string, error) {
	switch kind := ClassifyMedia(content.ContentType); kind {
	case MediaHTML:
		text, err := HTMLText(content.Body, content.ContentType)
		if err != nil {
			return "", menuerr.Wrap(menuerr.KindUnprocessableContent, "parsing HTML", err)
		}
		// Thresholds count characters, not bytes; Czech text is mostly
		// multi-byte in UTF-8.
		if utf8.RuneCountInString(text) < config.ShortHTMLWarnLength {
			e.log.Warn().
				Str("url", sourceURL).
				Int("length", utf8.RuneCountInString(text)).
				Msg("HTML page yielded very little text; forwarding anyway")
		}
		return text, nil

	case MediaImage:
		text, err := e.scanner.OCR(ctx, sourceURL)
		if err != nil {
			return "", err
		}
		return e.requireMinimum(text, sourceURL, "OCR")

	case MediaPDF:
		text, err := e.scanner.PDF(ctx, sourceURL)
		if err != nil {
			return "", err
		}
		return e.requireMinimum(text, sourceURL, "PDF")

	case MediaUnknown:
		return "", menuerr.New(menuerr.KindUnsupportedMedia,
			"unsupported content type: "+content.ContentType)

	default:
		return "", menuerr.New(menuerr.KindUnsupportedMedia,
			"unsupported content type: "+content.ContentType)
	}
}

func (e *Extractor) requireMinimum(text, sourceURL, stage string) (string, error) {
	trimmed := strings.TrimSpace(text)
	length := utf8.RuneCountInString(trimmed)
	if length < config.MinRemoteTextLength {
		return "", menuerr.New(menuerr.KindUnprocessableContent,
			stage+" produced no readable text for "+sourceURL)
	}
	e.log.Info().Str("url", sourceURL).Str("stage", stage).Int("length", length).Msg("Extracted text from document")
	return trimmed, nil
}
