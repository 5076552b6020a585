package board

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorDim     = lipgloss.Color("#565f89")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorWarning = lipgloss.Color("#e0af68")
	colorError   = lipgloss.Color("#f7768e")
	colorSelect  = lipgloss.Color("#33467c")
)

type styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Done      lipgloss.Style
	Due       lipgloss.Style
	Tag       lipgloss.Style
	High      lipgloss.Style
	Error     lipgloss.Style
	Status    lipgloss.Style
}

func newStyles() styles {
	return styles{
		Title:     lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1),
		Tab:       lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1),
		TabActive: lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Underline(true).Padding(0, 1),
		Item:      lipgloss.NewStyle().Padding(0, 2),
		Selected:  lipgloss.NewStyle().Background(colorSelect).Bold(true).Padding(0, 2),
		Done:      lipgloss.NewStyle().Foreground(colorSuccess).Strikethrough(true),
		Due:       lipgloss.NewStyle().Foreground(colorWarning),
		Tag:       lipgloss.NewStyle().Foreground(colorDim),
		High:      lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(colorError).Padding(0, 1),
		Status:    lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1),
	}
}
