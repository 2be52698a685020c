package styles

import (
	"github.com/charmbracelet/lipgloss"

	"taskmaster/internal/task"
)

var (
	PrimaryColor = lipgloss.Color("#A78BFA")
	GreenColor   = lipgloss.Color("#10B981")
	OrangeColor  = lipgloss.Color("#F59E0B")
	RedColor     = lipgloss.Color("#F87171")
	BlueColor    = lipgloss.Color("#60A5FA")
	MutedColor   = lipgloss.Color("#9CA3AF")
	TextColor    = lipgloss.Color("#F9FAFB")
	BorderColor  = lipgloss.Color("#6B7280")

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	TabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(PrimaryColor).
			Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	Selected = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	Muted    = lipgloss.NewStyle().Foreground(MutedColor)
	Done     = lipgloss.NewStyle().Foreground(MutedColor).Strikethrough(true)
	Error    = lipgloss.NewStyle().Foreground(RedColor)
	Success  = lipgloss.NewStyle().Foreground(GreenColor)
	Warning  = lipgloss.NewStyle().Foreground(OrangeColor)
	Info     = lipgloss.NewStyle().Foreground(BlueColor)
	Category = lipgloss.NewStyle().Foreground(TextColor).Background(BorderColor).Padding(0, 1)
	Help     = lipgloss.NewStyle().Foreground(MutedColor)
)

// Priority colors a priority badge: high red, medium orange, low green.
func Priority(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityHigh:
		return lipgloss.NewStyle().Bold(true).Foreground(RedColor)
	case task.PriorityMedium:
		return lipgloss.NewStyle().Bold(true).Foreground(OrangeColor)
	case task.PriorityLow:
		return lipgloss.NewStyle().Bold(true).Foreground(GreenColor)
	default:
		return Muted
	}
}
