// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#CCCCCC"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#696969"}
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Selection indicator color (used for the ">" prefix in lists)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	// Category separators
	CategoryColor = lipgloss.AdaptiveColor{Light: "#5B6078", Dark: "#A5ADCB"}

	// Overlays
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"}

	// Selection indicator style
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Entry list styles
	EntryNameStyle         = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	EntryDescriptionStyle  = lipgloss.NewStyle().Foreground(TextDescriptionColor)
	CategoryStyle          = lipgloss.NewStyle().Bold(true).Foreground(CategoryColor)
	MissingBadgeStyle      = lipgloss.NewStyle().Foreground(StatusWarningColor)
	SelectedBackgroundTint = lipgloss.NewStyle().Bold(true)

	// Status bar styles
	StatusInfoStyle  = lipgloss.NewStyle().Foreground(TextMutedColor)
	StatusWarnStyle  = lipgloss.NewStyle().Foreground(StatusWarningColor)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)

	// Overlay box style shared by modals
	OverlayBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(OverlayBorderColor).
			Padding(0, 1)

	OverlayTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(OverlayTitleColor)
)
