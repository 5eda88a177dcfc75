package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/wcgraph/internal/core/ports/driving"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	boxStyle     = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)
)

// printer renders command output, styled only on a terminal.
type printer struct {
	styled bool
}

func newPrinter(w io.Writer) printer {
	f, ok := w.(*os.File)
	return printer{styled: ok && term.IsTerminal(int(f.Fd()))}
}

func (p printer) paint(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

// summary renders a run result.
func (p printer) summary(result *driving.RunResult) string {
	types := make([]string, 0, len(result.NodesByType))
	width := 0
	for t := range result.NodesByType {
		types = append(types, t)
		width = max(width, len(t))
	}
	sort.Strings(types)

	var b strings.Builder
	b.WriteString(p.paint(titleStyle, "Sync complete"))
	b.WriteString("\n")
	for _, t := range types {
		fmt.Fprintf(&b, "  %-*s %d\n", width, t, result.NodesByType[t])
	}
	fmt.Fprintf(&b, "%s %d nodes in %s",
		p.paint(successStyle, "Emitted"), result.NodesEmitted, result.Duration.Round(time.Millisecond))
	if result.Warnings > 0 {
		b.WriteString(", ")
		b.WriteString(p.paint(warningStyle, fmt.Sprintf("%d warnings", result.Warnings)))
	}

	if !p.styled {
		return b.String() + "\n"
	}
	return boxStyle.Render(b.String()) + "\n"
}

func (p printer) muted(s string) string {
	return p.paint(mutedStyle, s)
}
