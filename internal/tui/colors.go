package tui

// Color constants for the todoweb terminal theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2"
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383" // Completed tasks
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240"

	// Accent Colors (Teal theme)
	ColorAccentMain   = "#0D9488" // Headings, active borders
	ColorAccentBright = "#5EEAD4" // Current step, sort indicator

	// State Colors
	ColorError    = "#EF4444"
	ColorSuccess  = "#22C55E"
	ColorPriority = "#F59E0B" // Priority badge
)
