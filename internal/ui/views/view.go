package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cloudhop/internal/ui/viewmodels"
)

// Frame carries terminal facts the view model does not know about
type Frame struct {
	Width   int
	Height  int
	Spinner string // current spinner glyph, shown while a level loads
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(vm viewmodels.ViewModel, f Frame) string {
	width := f.Width
	if width <= 0 {
		width = 80
	}
	height := f.Height
	if height <= 0 {
		height = 24
	}
	inner := width - 2 // Main padding

	header := r.renderHeader(vm, inner, f.Spinner)
	tabs := r.renderTabs(vm.Levels)
	status := r.renderStatus(vm)
	footer := r.renderHints(vm.Hints, inner)
	if vm.Form != nil {
		footer = r.renderForm(*vm.Form, inner)
	}

	// header, tabs, status and footer surround two bordered panels
	chrome := lipgloss.Height(header) + lipgloss.Height(tabs) + lipgloss.Height(status) + lipgloss.Height(footer)
	bodyRows := height - chrome - 3 // borders plus panel title
	if bodyRows < 3 {
		bodyRows = 3
	}

	listWidth := inner*3/5 - 4
	summaryWidth := inner - listWidth - 8
	if summaryWidth < 20 {
		summaryWidth = 20
	}
	spin := ""
	if vm.List.Marker == viewmodels.MarkerLoading {
		spin = f.Spinner
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		r.renderList(vm.List, listWidth, bodyRows, spin),
		" ",
		r.renderSummary(vm.Summary, summaryWidth, bodyRows),
	)

	content := strings.Join([]string{header, body, tabs, status, footer}, "\n")
	return r.styles.Main.Render(content)
}

func (r *Renderer) renderHeader(vm viewmodels.ViewModel, width int, spin string) string {
	logo := r.styles.Title.Render("cloudhop")
	if vm.Kind != "" {
		logo += r.styles.Dim.Render(" · ") + r.styles.Kind.Render(vm.Kind)
	}

	var loading []string
	for _, tab := range vm.Levels {
		if tab.Loading {
			loading = append(loading, tab.Title)
		}
	}
	if len(loading) == 0 {
		return logo
	}
	right := r.styles.Dim.Render(fmt.Sprintf("%s Loading %s", spin, strings.Join(loading, ", ")))
	pad := width - lipgloss.Width(logo) - lipgloss.Width(right)
	if pad < 2 {
		pad = 2
	}
	return logo + strings.Repeat(" ", pad) + right
}

func (r *Renderer) renderTabs(levels []viewmodels.LevelTab) string {
	if len(levels) <= 1 {
		return ""
	}
	parts := make([]string, 0, len(levels)*2)
	for i, tab := range levels {
		if i > 0 {
			parts = append(parts, r.styles.Dim.Render("›"))
		}
		if tab.Focused {
			parts = append(parts, r.styles.TabFocused.Render(tab.Title))
		} else {
			parts = append(parts, r.styles.Tab.Render(tab.Title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (r *Renderer) renderStatus(vm viewmodels.ViewModel) string {
	if vm.Status == "" {
		return ""
	}
	if vm.StatusError {
		return r.styles.StatusError.Render(vm.Status)
	}
	return r.styles.Status.Render(vm.Status)
}

func (r *Renderer) renderHints(hints []viewmodels.Hint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, r.styles.HintKey.Render(h.Key)+" "+r.styles.HintDesc.Render(h.Desc))
	}
	line := strings.Join(parts, r.styles.Dim.Render(" • "))
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

func (r *Renderer) renderForm(f viewmodels.Form, width int) string {
	title := r.styles.PanelTitle.Render(f.Title)
	if f.Steps > 1 {
		title += r.styles.Dim.Render(fmt.Sprintf(" (%d/%d)", f.Step, f.Steps))
	}
	lines := []string{
		title,
		r.styles.FormLabel.Render(f.Label+": ") + f.Input,
	}
	if f.Err != "" {
		lines = append(lines, r.styles.StatusError.Render(f.Err))
	} else {
		lines = append(lines, r.styles.Dim.Render("enter confirm • esc cancel"))
	}
	boxWidth := width - 4
	if boxWidth > 70 {
		boxWidth = 70
	}
	return r.styles.FormBox.Width(boxWidth).Render(strings.Join(lines, "\n"))
}
