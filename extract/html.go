package extract

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// noiseSelectors are elements removed before text extraction; they carry no
// visible menu content.
var noiseSelectors = "script,noscript,style,head,iframe,svg"

// HTMLText parses raw HTML and returns the visible text of the document
// body, markup and scripts discarded, whitespace collapsed.
func HTMLText(raw []byte, contentType string) (string, error) {
	enc, _, _ := charset.DetermineEncoding(raw, contentType)
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		// fallback: if already utf-8, continue
		if !utf8.Valid(raw) {
			return "", err
		}
		decoded = raw
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(decoded))
	if err != nil {
		return "", err
	}

	doc.Find(noiseSelectors).Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	body := doc.Find("body")
	var text string
	if body.Length() > 0 {
		text = body.Text()
	} else {
		text = doc.Text()
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " ")), nil
}
