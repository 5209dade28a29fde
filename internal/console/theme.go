package console

import "github.com/charmbracelet/lipgloss"

var (
	// Core palette
	Green       = lipgloss.Color("#00FF41")
	BrightGreen = lipgloss.Color("#39FF14")
	DarkGreen   = lipgloss.Color("#008F11")
	DimGreen    = lipgloss.Color("#003B00")
	Cyan        = lipgloss.Color("#00D4AA")
	Gold        = lipgloss.Color("#FFD700")
	Red         = lipgloss.Color("#FF4136")
	LightGray   = lipgloss.Color("#aaaaaa")
	White       = lipgloss.Color("#e0e0e0")

	// Banner
	BannerStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	// Labels in help and doctor output
	LabelStyle = lipgloss.NewStyle().
			Foreground(BrightGreen).
			Bold(true)

	// Progress lines
	InfoStyle = lipgloss.NewStyle().
			Foreground(Cyan)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Gold)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	// Fact text
	FactStyle = lipgloss.NewStyle().
			Foreground(White).
			Italic(true)

	// Separator
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(DimGreen)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	// Box around the fact of the day in single-shot mode
	FactBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DarkGreen).
			Padding(0, 1)
)
