package ui

import (
	"cloudhop/internal/domain"
	"cloudhop/internal/navigator"
)

// tickMsg drives the lazy fetch check. Only the tick carrying the current
// chain seq schedules the next one.
type tickMsg struct {
	seq int
}

// fetchResultMsg carries a finished directory query back to Update
type fetchResultMsg struct {
	req   navigator.FetchRequest
	items []domain.Resource
	err   error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// clearStatusMsg clears the status line if nothing newer replaced it
type clearStatusMsg struct {
	seq int
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
