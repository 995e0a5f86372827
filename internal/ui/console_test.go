package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConsole(t *testing.T) {
	console := NewConsole()
	assert.NotNil(t, console)
}

func TestConsole_formatMessage(t *testing.T) {
	console := &Console{useColors: true}

	for _, style := range []ConsoleStyle{StyleNormal, StyleError, StyleWarning, StyleInfo, StyleLabel} {
		assert.Contains(t, console.formatMessage(style, "a message"), "a message")
	}
	assert.Equal(t, "plain", console.formatMessage(StyleNormal, "plain"))
}

func TestConsole_formatMessage_NoColors(t *testing.T) {
	console := &Console{useColors: false}
	assert.Equal(t, "test message", console.formatMessage(StyleError, "test message"))
}

func TestConsole_PrintRoutesToStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	console := NewConsoleTo(&out, &errOut)

	console.PrintError("boom")
	console.PrintWarning("careful")
	console.PrintInfo("info")

	assert.Equal(t, "Error: boom\nWarning: careful\n", errOut.String())
	assert.Equal(t, "info\n", out.String())
}

func TestConsole_PrintRows(t *testing.T) {
	var out bytes.Buffer
	console := NewConsoleTo(&out, &bytes.Buffer{})

	console.PrintRows([][]string{
		{"NAME", "IMAGE", "TAGS"},
		{"rust", "docker.io/library/rust:alpine", "rust,cargo"},
		{"uv", "ghcr.io/astral-sh/uv:alpine", "python"},
	})

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"NAME  IMAGE                          TAGS",
		"rust  docker.io/library/rust:alpine  rust,cargo",
		"uv    ghcr.io/astral-sh/uv:alpine    python",
	}, lines)
}

func TestConsole_PrintRows_Empty(t *testing.T) {
	var out bytes.Buffer
	NewConsoleTo(&out, &bytes.Buffer{}).PrintRows(nil)
	assert.Empty(t, out.String())
}

func TestConsole_FormatErrorMessage(t *testing.T) {
	console := NewConsole()

	tests := []struct {
		context    string
		cause      string
		suggestion string
		expected   string
	}{
		{"Test context", "Test cause", "Test suggestion", "Test context\nCause: Test cause\nSuggestion: Test suggestion"},
		{"Only context", "", "", "Only context"},
		{"", "Only cause", "", "Cause: Only cause"},
		{"", "", "Only suggestion", "Suggestion: Only suggestion"},
		{"Context", "", "Suggestion", "Context\nSuggestion: Suggestion"},
		{"", "", "", ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, console.FormatErrorMessage(test.context, test.cause, test.suggestion))
	}
}

func TestStyleConstants(t *testing.T) {
	seen := make(map[ConsoleStyle]bool)
	for _, style := range []ConsoleStyle{StyleNormal, StyleError, StyleWarning, StyleInfo, StyleLabel} {
		assert.False(t, seen[style], "duplicate style value %d", style)
		seen[style] = true
	}
}
