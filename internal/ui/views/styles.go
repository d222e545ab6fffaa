package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Kind        lipgloss.Style
	Dim         lipgloss.Style
	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	Item        lipgloss.Style
	SelectionBg lipgloss.Style
	Placeholder lipgloss.Style
	Scroll      lipgloss.Style
	Tab         lipgloss.Style
	TabFocused  lipgloss.Style
	HintKey     lipgloss.Style
	HintDesc    lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	FormBox     lipgloss.Style
	FormLabel   lipgloss.Style
	Main        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Kind: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Dim:  lipgloss.NewStyle().Faint(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		Item:        lipgloss.NewStyle(),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Tab:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		TabFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("62")).
			Bold(true).
			Padding(0, 1),
		HintKey:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		HintDesc:    lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		FormBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
		FormLabel: lipgloss.NewStyle().Bold(true),
		Main:      lipgloss.NewStyle().Padding(0, 1),
	}
}
