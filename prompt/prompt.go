// Package prompt builds the extraction instruction sent to the model.
//
// Day matching is textual: Czech menus label sections by day name
// ("PÁTEK"), almost never by structured date, so the instructions anchor on
// the localized day-of-week name for the invocation date. Weekend-offer and
// closure handling are encoded purely as instructions to the model; there
// is no deterministic fallback, since the upstream behavior offers no
// ground truth to validate one against.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/Soptik1290/restaurant-menu-summarizer/config"
)

// czechDays indexes day names by time.Weekday (Sunday first).
var czechDays = [7]string{
	"NEDĚLE",
	"PONDĚLÍ",
	"ÚTERÝ",
	"STŘEDA",
	"ČTVRTEK",
	"PÁTEK",
	"SOBOTA",
}

// DayName returns the Czech day-of-week name as it appears in menus.
func DayName(d time.Weekday) string {
	return czechDays[d]
}

// Payload is the prompt pair for one extraction call.
type Payload struct {
	System string
	User   string
}

// Build assembles the extraction prompt for the given invocation date and
// extracted page text. Pure; no I/O and no failure modes. Text beyond the
// configured prefix is dropped silently.
func Build(date time.Time, text string) Payload {
	day := DayName(date.Weekday())
	iso := date.Format("2006-01-02")

	var sb strings.Builder
	sb.WriteString("You extract the daily menu of a Czech restaurant from page text.\n")
	fmt.Fprintf(&sb, "Today is %s (%s).\n\n", iso, day)
	sb.WriteString("Find today's menu in this order:\n")
	fmt.Fprintf(&sb, "1. Prefer a section labeled with today's day name, %q.\n", day)
	sb.WriteString("2. If there is no such section, accept a weekend offer only when its stated date range covers today.\n")
	fmt.Fprintf(&sb, "3. If neither matches, look for an explicit closure statement (holiday, sanitary day). If found, set daily_menu to false and append %q to the restaurant name.\n\n", "("+config.ClosureMarker+")")
	sb.WriteString("Rules for items:\n")
	sb.WriteString("- A soup listed before the main dishes belongs to the \"soup\" category even when not labeled as soup.\n")
	sb.WriteString("- Prices are bare numbers; strip currency suffixes such as \"Kč\".\n")
	sb.WriteString("- When no allergens are listed, use an empty list.\n")
	sb.WriteString("- Never invent items or prices. When no daily menu is present, set daily_menu to false and return no items.\n\n")
	fmt.Fprintf(&sb, "Save the result by calling the %s function.", config.MenuToolName)

	return Payload{
		System: sb.String(),
		User:   "Page text:\n\n" + Truncate(text, config.MaxPromptTextLength),
	}
}

// Truncate returns at most limit runes of text. Cutting mid-menu is an
// accepted lossy boundary, not an error.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
