package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cloudhop/internal/ui/viewmodels"
)

// Window returns the [start, end) slice of a list of total rows that fits
// in height rows while keeping selected roughly centred.
func Window(total, selected, height int) (int, int) {
	if height <= 0 || total <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, total
	}
	if selected < 0 {
		selected = 0
	}
	start := selected - height/2
	if start < 0 {
		start = 0
	}
	if start > total-height {
		start = total - height
	}
	return start, start + height
}

func (r *Renderer) renderList(p viewmodels.ListPanel, width, height int, spin string) string {
	content := width - 2 // panel padding
	var lines []string
	if len(p.Rows) == 0 {
		msg := p.Message
		if p.Marker == viewmodels.MarkerLoading && spin != "" {
			msg = spin + " " + msg
		}
		style := r.styles.Placeholder
		if p.Marker == viewmodels.MarkerFailed {
			style = r.styles.StatusError
		}
		lines = append(lines, style.Render(truncate(msg, content)))
	} else {
		visible := height
		if len(p.Rows) > height && height > 2 {
			// leave room for the scroll indicators
			visible = height - 2
		}
		start, end := Window(len(p.Rows), p.Selected, visible)
		scrolled := visible < height
		if scrolled {
			lines = append(lines, r.scrollLine("↑", start))
		}
		for _, row := range p.Rows[start:end] {
			lines = append(lines, r.renderRow(row, content))
		}
		if scrolled {
			lines = append(lines, r.scrollLine("↓", len(p.Rows)-end))
		}
	}

	title := r.styles.PanelTitle.Render(p.Title)
	body := strings.Join(lines, "\n")
	return r.styles.Panel.
		Width(width).
		Height(height+1).
		Render(title + "\n" + body)
}

func (r *Renderer) scrollLine(arrow string, n int) string {
	if n == 0 {
		return ""
	}
	return r.styles.Scroll.Render(fmt.Sprintf("%s %d more", arrow, n))
}

func (r *Renderer) renderRow(row viewmodels.Row, width int) string {
	label := truncate(row.Label, width-2)
	if row.Selected {
		return r.styles.SelectionBg.Render(padRight("> "+label, width))
	}
	return r.styles.Item.Render("  " + label)
}

func (r *Renderer) renderSummary(rows []viewmodels.SummaryRow, width, height int) string {
	titleWidth := 0
	for _, row := range rows {
		if w := lipgloss.Width(row.Title); w > titleWidth {
			titleWidth = w
		}
	}

	lines := []string{r.styles.PanelTitle.Render("Selection")}
	for _, row := range rows {
		title := padRight(row.Title, titleWidth)
		if row.Focused {
			title = r.styles.FormLabel.Render(title)
		} else {
			title = r.styles.Dim.Render(title)
		}
		value := truncate(row.Value, width-titleWidth-4)
		if row.Placeholder {
			value = r.styles.Placeholder.Render(value)
		}
		lines = append(lines, title+"  "+value)
	}
	return r.styles.Panel.
		Width(width).
		Height(height+1).
		Render(strings.Join(lines, "\n"))
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
