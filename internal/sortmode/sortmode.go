// Package sortmode holds the display order of the task list.
package sortmode

import "sync"

// Mode selects how listings are ordered by date
type Mode int

const (
	Unsorted Mode = iota
	Descending
	Ascending
)

func (m Mode) String() string {
	switch m {
	case Descending:
		return "descending"
	case Ascending:
		return "ascending"
	default:
		return "unsorted"
	}
}

// Order is the label used by the sort links and flags
type Order string

const (
	Up   Order = "up"
	Down Order = "down"
)

// ParseOrder recognises the "up" and "down" labels
func ParseOrder(label string) (Order, bool) {
	switch Order(label) {
	case Up:
		return Up, true
	case Down:
		return Down, true
	}
	return "", false
}

// Mode returns the listing mode selected by the label.
// "up" has always meant newest date first, so Up maps to Descending.
func (o Order) Mode() Mode {
	if o == Up {
		return Descending
	}
	return Ascending
}

// State is the process-wide sort selection. The zero value is Unsorted.
type State struct {
	mu   sync.RWMutex
	mode Mode
}

// Set replaces the current mode with the one selected by o
func (s *State) Set(o Order) {
	s.mu.Lock()
	s.mode = o.Mode()
	s.mu.Unlock()
}

// SetLabel applies a raw label. Unknown labels leave the mode unchanged
// and report false.
func (s *State) SetLabel(label string) bool {
	o, ok := ParseOrder(label)
	if !ok {
		return false
	}
	s.Set(o)
	return true
}

// Current returns the active mode
func (s *State) Current() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}
