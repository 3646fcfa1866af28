package ui

import (
	"encoding/json"
	"io"
)

// Severity classifies the visual weight of a piece of inline text. The
// print layer maps each value to a terminal style; data consumers (JSON,
// tests) see plain text.
type Severity uint8

const (
	SeverityInfo    Severity = iota // plain, no colour emphasis
	SeveritySuccess                 // green, resolved / positive
	SeverityWarn                    // yellow, uncertain / degraded
	SeverityError                   // red, failed / negative
)

// StyledText pairs a plain string with a Severity annotation.
//
// JSON serialization: the struct marshals as just the plain Text string so
// consumers receive clean output with no ANSI codes and no extra structure.
type StyledText struct {
	Text     string
	Severity Severity
}

// MarshalJSON serializes StyledText as a plain JSON string (just Text).
func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// UI provides all terminal interaction for nftmeta commands.
//
// Production code uses TerminalUI (writes to os.Stdout, reads from
// os.Stdin); tests use RecordingUI (captures all output, serves scripted
// inputs).
//
// Use [UI.Indent] to get a child UI at one deeper indent level, for
// example to render a token's attributes under its header line. The child
// shares the same underlying writer and reader, so input sequencing is
// preserved across scopes.
type UI interface {
	// Style returns the text from t coloured according to its Severity.
	// When colours are disabled (piped output, RecordingUI) the plain
	// text is returned unchanged.
	Style(t StyledText) string

	// Info writes a neutral status line (no prefix, no color).
	Info(format string, args ...any)

	// Success writes a positive outcome in green.
	Success(format string, args ...any)

	// Warn writes a non-fatal warning in yellow.
	Warn(format string, args ...any)

	// Error writes a failure in red. This does NOT exit or return an
	// error, callers decide what to do next.
	Error(format string, args ...any)

	// Section writes a visual separator centred around a title.
	// Example: "===== Bored Ape Yacht Club ====="
	Section(title string)

	// KeyValue renders an aligned 2-column block with all values
	// left-aligned to the same column. Use for compact metadata like
	// Name/Symbol/Supply.
	KeyValue(rows [][2]string)

	// Table renders a full bordered table with a header row followed by
	// data rows. Use for inherently tabular data like attribute lists.
	Table(headers []string, rows [][]string)

	// Spinner starts an animated spinner with the given message and
	// returns a stop function. Call the stop function (or defer it) to
	// clear the spinner once the work is done. In RecordingUI and
	// non-terminal contexts the stop function is a no-op.
	Spinner(msg string) func()

	// Ask displays a "> " prompt at the current indent level and reads a
	// line. It loops until validate returns nil. Pass nil to accept any
	// input. The caller is responsible for printing a label line before
	// calling Ask.
	Ask(validate func(string) error) string

	// Confirm asks a yes/no question and returns the boolean answer.
	Confirm(prompt string, defaultYes bool) bool

	// Choose prints a numbered list of options, prompts for a selection,
	// and returns the 0-based index of the chosen option.
	Choose(prompt string, options []string) int

	// Indent returns a child UI with indent level increased by one,
	// sharing the same underlying writer and reader as the parent.
	Indent() UI

	// Writer returns an io.Writer that prepends the current indentation
	// to every line, for functions that take io.Writer directly.
	Writer() io.Writer
}
