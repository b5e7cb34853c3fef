package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the format produced for relative dates. It sorts
// chronologically as plain text.
const DateLayout = "2006-01-02"

var relativeRegex = regexp.MustCompile(`^(\d+)\s*(day|days|d|week|weeks|w)$`)

// ExpandDate turns relative shorthand into a YYYY-MM-DD date.
// Supported shorthand:
// - today, tomorrow
// - X days (e.g., "3 days", "1 day", "3d")
// - X weeks (e.g., "2 weeks", "1w")
// Anything else is returned unchanged; task dates are free-form text.
func ExpandDate(input string, now time.Time) string {
	trimmed := strings.TrimSpace(input)
	lower := strings.ToLower(trimmed)

	switch lower {
	case "today":
		return now.Format(DateLayout)
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(DateLayout)
	}

	matches := relativeRegex.FindStringSubmatch(lower)
	if len(matches) != 3 {
		return trimmed
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil || amount > 3650 {
		return trimmed
	}

	switch matches[2] {
	case "week", "weeks", "w":
		amount *= 7
	}

	return now.AddDate(0, 0, amount).Format(DateLayout)
}
