package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#10B981") // Green
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	errorColor     = lipgloss.Color("#EF4444") // Red
	warningColor   = lipgloss.Color("#F59E0B") // Amber/Yellow

	// Header styles
	headerContainerStyle = lipgloss.NewStyle().
				Background(primaryColor)

	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(primaryColor).
				Padding(0, 1)

	headerStatsStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#E0E0E0")).
				Background(primaryColor).
				Padding(0, 1)

	headerRunningStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(secondaryColor).
				Background(primaryColor)

	headerIdleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C4B5FD")).
			Background(primaryColor)

	// Status bar style
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	errorBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(errorColor).
			Padding(0, 1)

	// Notification log styles
	logTimeStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	logInfoStyle = lipgloss.NewStyle()

	logWarnStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	logErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	logEmptyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(1, 2)
)
