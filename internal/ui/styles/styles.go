package styles

import "github.com/charmbracelet/lipgloss"

var (
	Title    = lipgloss.NewStyle().Bold(true)
	Header   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	Footer   = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	Box      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	Danger   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	Warn     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00"))
	Good     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7AF"))
	Faint    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
	Accent   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7DCE13"))
	Selected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7DCE13"))
	NodeTag  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF"))
	Upgrade  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00D7AF"))
	GameOver = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))
)

// Piece returns a bold style in the catalog color of a piece kind.
func Piece(hex string) lipgloss.Style {
	if hex == "" {
		hex = "#FFFFFF"
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hex))
}
