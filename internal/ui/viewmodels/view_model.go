package viewmodels

import (
	"strings"

	"cloudhop/internal/domain"
	"cloudhop/internal/navigator"
)

// Marker explains why the list panel shows no rows
type Marker int

const (
	MarkerNone    Marker = iota // rows are shown
	MarkerEmpty                 // fetched, nothing there
	MarkerLoading               // fetch outstanding or about to start
	MarkerFailed                // last fetch failed, retry pending
	MarkerBlocked               // nothing selected in the level above
)

// Placeholder is shown in the summary for levels without a selection
const Placeholder = "None"

// Row is one entry of the list panel
type Row struct {
	Label    string
	Selected bool
}

// ListPanel shows the focused level
type ListPanel struct {
	Title    string
	Rows     []Row
	Selected int
	Marker   Marker
	Message  string
}

// SummaryRow is the selection at one level
type SummaryRow struct {
	Title       string
	Value       string
	Placeholder bool
	Focused     bool
}

// LevelTab is one entry of the level strip
type LevelTab struct {
	Title   string
	Focused bool
	Loading bool
}

// Hint is a key and what it does right now
type Hint struct {
	Key  string
	Desc string
}

// Form is the parameter prompt drawn over the footer
type Form struct {
	Title string
	Label string
	Step  int
	Steps int
	Input string
	Err   string
}

// Options carry the non-navigator inputs of a frame
type Options struct {
	Kind        string
	Status      string
	StatusError bool
	Form        *Form
}

// ViewModel is everything the renderer draws
type ViewModel struct {
	Kind        string
	List        ListPanel
	Summary     []SummaryRow
	Levels      []LevelTab
	Status      string
	StatusError bool
	Hints       []Hint
	CanDispatch bool
	Form        *Form
}

// Project derives a frame from navigator state. It has no side effects.
func Project(s navigator.State, opts Options) ViewModel {
	vm := ViewModel{
		Kind:        opts.Kind,
		Status:      opts.Status,
		StatusError: opts.StatusError,
		CanDispatch: s.CanDispatch(),
		Form:        opts.Form,
	}

	for d, l := range s.Levels {
		vm.Levels = append(vm.Levels, LevelTab{
			Title:   l.Title,
			Focused: d == s.Focus,
			Loading: l.Load == navigator.Loading,
		})
		row := SummaryRow{Title: l.Title, Focused: d == s.Focus}
		if r, ok := l.SelectedItem(); ok {
			row.Value = domain.ArnName(r.ID)
		} else {
			row.Value = Placeholder
			row.Placeholder = true
		}
		vm.Summary = append(vm.Summary, row)
	}

	if focused, ok := s.Focused(); ok {
		vm.List = listPanel(s, focused)
	}
	vm.Hints = hints(s, vm.CanDispatch)
	return vm
}

func listPanel(s navigator.State, l navigator.Level) ListPanel {
	p := ListPanel{Title: l.Title, Selected: l.Selected}
	if !l.Empty() {
		p.Rows = make([]Row, len(l.Items))
		for i, r := range l.Items {
			p.Rows[i] = Row{Label: r.Label(), Selected: i == l.Selected}
		}
		return p
	}

	switch l.Load {
	case navigator.Loaded:
		p.Marker = MarkerEmpty
		p.Message = "No " + lowerTitle(l.Title) + " found"
	case navigator.Failed:
		p.Marker = MarkerFailed
		p.Message = "Could not load " + lowerTitle(l.Title)
		if l.Err != nil {
			p.Message += ": " + l.Err.Error()
		}
	default:
		if l.Depth > 0 {
			if _, ok := s.Selected(l.Depth - 1); !ok {
				p.Marker = MarkerBlocked
				p.Message = "Nothing selected in " + s.Levels[l.Depth-1].Title
				return p
			}
		}
		p.Marker = MarkerLoading
		p.Message = "Loading " + lowerTitle(l.Title) + "..."
	}
	return p
}

func hints(s navigator.State, canDispatch bool) []Hint {
	var out []Hint
	if focused, ok := s.Focused(); ok && len(focused.Items) > 1 {
		out = append(out, Hint{Key: "↑/↓", Desc: "select"})
	}
	if s.Focus > 0 {
		out = append(out, Hint{Key: "←", Desc: "back"})
	}
	if s.Focus < s.Deepest() {
		if _, ok := s.Selected(s.Focus); ok {
			out = append(out, Hint{Key: "→", Desc: "open"})
		}
	}
	if canDispatch {
		out = append(out,
			Hint{Key: "c", Desc: domain.ActionShell.Label()},
			Hint{Key: "p", Desc: domain.ActionPortForward.Label()},
		)
	}
	out = append(out, Hint{Key: "?", Desc: "help"}, Hint{Key: "q", Desc: "quit"})
	return out
}

func lowerTitle(title string) string {
	if title == "" {
		return "items"
	}
	return strings.ToLower(title)
}
