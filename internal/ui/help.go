package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"cloudhop/internal/ui/input/types"
)

// HelpRenderer builds the help text shown in the pager
type HelpRenderer struct {
	keys types.KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys types.KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// Render returns the help document for a resource kind and its level titles
func (r *HelpRenderer) Render(kind string, titles []string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	line := func(b key.Binding) string {
		h := b.Help()
		keys := strings.Join(b.Keys(), ", ")
		return fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-22s", keys)), descStyle.Render(h.Desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("cloudhop help"))
	help.WriteString("\n\n")

	if len(titles) > 0 {
		help.WriteString(sectionStyle.Render("Levels (" + kind + ")"))
		help.WriteString("\n")
		help.WriteString("  " + strings.Join(titles, " → "))
		help.WriteString("\n\n")
	}

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	help.WriteString(line(r.keys.Up))
	help.WriteString(line(r.keys.Down))
	help.WriteString(line(r.keys.Prev))
	help.WriteString(line(r.keys.Next))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Actions (deepest level only)"))
	help.WriteString("\n")
	help.WriteString(line(r.keys.Shell))
	help.WriteString(line(r.keys.PortForward))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(line(r.keys.Help))
	help.WriteString(line(r.keys.Quit))
	help.WriteString("\n")

	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Lists load when you open a level. Changing a selection clears the levels below it."))
	help.WriteString("\n")

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h == nil || h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Don't write the document back to the terminal on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
