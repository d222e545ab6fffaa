package navigator

import "cloudhop/internal/domain"

// NoSelection marks a level without a selected item
const NoSelection = -1

// LoadState tracks where a level's contents came from
type LoadState int

const (
	Unloaded LoadState = iota // never fetched, or cleared by an ancestor change
	Loading                   // a fetch is outstanding
	Loaded                    // fetched; may legitimately be empty
	Failed                    // last fetch failed or timed out; retried later
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unloaded"
	}
}

// Level is the cache for one rung of the hierarchy
type Level struct {
	Depth    int
	Title    string
	Items    []domain.Resource
	Selected int // NoSelection when Items is empty
	Load     LoadState
	Err      error // last fetch failure, nil unless Load == Failed
}

// NewLevel returns an empty level
func NewLevel(depth int, title string) Level {
	return Level{Depth: depth, Title: title, Selected: NoSelection}
}

// Set replaces the contents and resets the selection to the first item
func (l *Level) Set(items []domain.Resource) {
	l.Items = append([]domain.Resource(nil), items...)
	l.Selected = NoSelection
	if len(l.Items) > 0 {
		l.Selected = 0
	}
	l.Load = Loaded
	l.Err = nil
}

// Clear empties the level and forgets it was ever fetched
func (l *Level) Clear() {
	l.Items = nil
	l.Selected = NoSelection
	l.Load = Unloaded
	l.Err = nil
}

// Empty reports whether the level has no items
func (l Level) Empty() bool {
	return len(l.Items) == 0
}

// HasSelection reports whether Selected points at an item
func (l Level) HasSelection() bool {
	return l.Selected >= 0 && l.Selected < len(l.Items)
}

// SelectedItem returns the selected resource, or false when there is none
func (l Level) SelectedItem() (domain.Resource, bool) {
	if !l.HasSelection() {
		return domain.Resource{}, false
	}
	return l.Items[l.Selected], true
}
