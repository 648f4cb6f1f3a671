package output

import "github.com/charmbracelet/lipgloss"

// Color palette, a single teal accent with neutral support colors.
const (
	colorTeal     = "43"  // primary accent
	colorWhite    = "255" // titles
	colorGray     = "245" // secondary text
	colorDarkGray = "238" // separators
	colorYellow   = "220" // scores
)

// Styles holds the lipgloss styles used for CLI rendering.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Dim       lipgloss.Style
	Score     lipgloss.Style
	Header    lipgloss.Style
	Separator lipgloss.Style
}

// styleFn selects one style out of Styles.
type styleFn func(Styles) lipgloss.Style

// DefaultStyles returns the default CLI styles.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorWhite)),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorTeal)),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
		Score:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTeal)),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color(colorDarkGray)),
	}
}
