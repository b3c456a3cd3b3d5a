package logging

import (
	"fmt"
	"io"
	"strings"
)

// Raw ANSI codes for prefix coloring. Log prefixes predate the lipgloss
// styles in internal/ui; user-facing output should use those styles instead.
const (
	Reset     = "\033[0m"
	FgCyan    = "\033[36m"
	FgGreen   = "\033[32m"
	FgMagenta = "\033[35m"
	FgYellow  = "\033[33m"
	FgRed     = "\033[31m"
)

// Color wraps a string with the given ANSI code.
func Color(s string, code string) string {
	return code + s + Reset
}

// Logger is a tiny opt-in logger used across internal packages.
// When Writer is nil, logging is disabled.
//
// The output format is:
//
//	<ColoredPrefix> model=<modelID> <formattedMessage>\n
//
// The model field is omitted when modelID is empty, which is the common
// case for search-level logs that are not about a single model.
type Logger struct {
	Writer io.Writer

	PrefixText  string
	PrefixColor string
}

func (l *Logger) SetWriter(w io.Writer) { l.Writer = w }

func (l *Logger) Enabled() bool { return l != nil && l.Writer != nil }

func (l *Logger) Logf(modelID string, format string, args ...any) {
	if l == nil || l.Writer == nil {
		return
	}
	prefix := l.PrefixText
	if prefix == "" {
		prefix = "Log:"
	}
	if l.PrefixColor != "" {
		prefix = Color(prefix, l.PrefixColor)
	}
	msg := fmt.Sprintf(format, args...)

	m := strings.TrimSpace(modelID)
	if m == "" {
		fmt.Fprintf(l.Writer, "%s %s\n", prefix, msg)
		return
	}
	fmt.Fprintf(l.Writer, "%s model=%s %s\n", prefix, m, msg)
}
