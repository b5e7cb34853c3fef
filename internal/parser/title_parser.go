package parser

import (
	"regexp"
	"strings"
	"time"
)

// ParsedTask represents a task parsed from natural language
type ParsedTask struct {
	Action   string
	Date     string
	Priority bool
	Errors   []string
}

var (
	dueRegex      = regexp.MustCompile(`\bdue:(\S*)`)
	priorityRegex = regexp.MustCompile(`^(\+[a-zA-Z]+|!)$`)
)

// ParseAction extracts metadata from an action using natural syntax.
// Syntax: "Buy milk +high due:tomorrow" or "Buy milk ! due:2024-06-01"
func ParseAction(input string, now time.Time) ParsedTask {
	result := ParsedTask{
		Errors: []string{},
	}

	// Extract due date (due:tomorrow, due:2024-06-01, etc.)
	if matches := dueRegex.FindStringSubmatch(input); len(matches) > 1 {
		if matches[1] == "" {
			result.Errors = append(result.Errors, "Empty due date after 'due:'")
		} else {
			result.Date = ExpandDate(matches[1], now)
		}
		input = dueRegex.ReplaceAllString(input, "")
	}

	// Extract priority (+high, +prio, !)
	var words []string
	for _, word := range strings.Fields(input) {
		if !priorityRegex.MatchString(word) {
			words = append(words, word)
			continue
		}
		if isPriorityMarker(strings.ToLower(word)) {
			result.Priority = true
		} else {
			result.Errors = append(result.Errors, "Invalid priority '"+word+"'. Use: +high, +prio or !")
		}
	}

	// Clean up the action (remove extra spaces)
	result.Action = strings.Join(words, " ")

	return result
}

// isPriorityMarker checks if a marker flags the task as priority
func isPriorityMarker(marker string) bool {
	switch marker {
	case "!", "+high", "+prio", "+priority", "+urgent":
		return true
	}
	return false
}
