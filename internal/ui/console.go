package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/moby/term"
)

type ConsoleStyle int

const (
	StyleNormal ConsoleStyle = iota
	StyleError
	StyleWarning
	StyleInfo
	StyleLabel
)

var styles = map[ConsoleStyle]lipgloss.Style{
	StyleError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	StyleWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	StyleInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	StyleLabel:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
}

type Console struct {
	out       io.Writer
	errOut    io.Writer
	useColors bool
}

func NewConsole() *Console {
	return &Console{
		out:       os.Stdout,
		errOut:    os.Stderr,
		useColors: term.IsTerminal(os.Stderr.Fd()),
	}
}

// NewConsoleTo writes plain, uncolored text to the given writers.
func NewConsoleTo(out, errOut io.Writer) *Console {
	return &Console{out: out, errOut: errOut}
}

func (c *Console) formatMessage(style ConsoleStyle, message string) string {
	if !c.useColors {
		return message
	}
	s, ok := styles[style]
	if !ok {
		return message
	}
	return s.Render(message)
}

func (c *Console) PrintError(message string) {
	fmt.Fprintln(c.errOut, c.formatMessage(StyleError, "Error: "+message))
}

func (c *Console) PrintWarning(message string) {
	fmt.Fprintln(c.errOut, c.formatMessage(StyleWarning, "Warning: "+message))
}

func (c *Console) PrintInfo(message string) {
	fmt.Fprintln(c.out, c.formatMessage(StyleInfo, message))
}

// PrintRows prints aligned columns to stdout, styling the first row as a header.
func (c *Console) PrintRows(rows [][]string) {
	if len(rows) == 0 {
		return
	}

	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i < len(row)-1 {
				cell += strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			}
			cells[i] = cell
		}
		line := strings.Join(cells, "  ")
		if r == 0 {
			line = c.formatMessage(StyleLabel, line)
		}
		fmt.Fprintln(c.out, line)
	}
}

func (c *Console) FormatErrorMessage(context, cause, suggestion string) string {
	var parts []string

	if context != "" {
		parts = append(parts, context)
	}

	if cause != "" {
		parts = append(parts, fmt.Sprintf("Cause: %s", cause))
	}

	if suggestion != "" {
		parts = append(parts, fmt.Sprintf("Suggestion: %s", suggestion))
	}

	return strings.Join(parts, "\n")
}
