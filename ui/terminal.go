package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/logrusorgru/aurora"
	runewidth "github.com/mattn/go-runewidth"
	indent "github.com/openconfig/goyang/pkg/indent"
	"golang.org/x/term"
)

const (
	indentUnit   = "  "  // 2 spaces per indent level
	sectionWidth = 50    // total character width for Section separators
	promptPrefix = "> "  // shown on the input line before the cursor
)

// TerminalUI is the production UI implementation.
// It writes coloured output to os.Stdout and reads input from os.Stdin.
// Indentation is tracked as a level count; each level adds two spaces.
type TerminalUI struct {
	indentLevel int
	out         io.Writer
	in          *bufio.Reader
	au          aurora.Aurora
}

// NewTerminalUI creates a TerminalUI that writes to os.Stdout and reads from
// os.Stdin. Colours are enabled automatically when stdout is a real terminal.
func NewTerminalUI() *TerminalUI {
	colorsEnabled := term.IsTerminal(int(os.Stdout.Fd()))
	return &TerminalUI{
		out: os.Stdout,
		in:  bufio.NewReader(os.Stdin),
		au:  aurora.NewAurora(colorsEnabled),
	}
}

func (u *TerminalUI) prefix() string {
	return strings.Repeat(indentUnit, u.indentLevel)
}

// displayWidth is the visible terminal width of s: ANSI codes stripped,
// wide runes counted as two cells.
func displayWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

// writeLine writes a single line to the output with the current indent prefix.
func (u *TerminalUI) writeLine(line string) {
	fmt.Fprintf(u.out, "%s%s\n", u.prefix(), line)
}

func (u *TerminalUI) Style(t StyledText) string {
	switch t.Severity {
	case SeveritySuccess:
		return u.au.Green(t.Text).String()
	case SeverityWarn:
		return u.au.Yellow(t.Text).String()
	case SeverityError:
		return u.au.Red(t.Text).String()
	default: // SeverityInfo
		return t.Text
	}
}

func (u *TerminalUI) Info(format string, args ...any) {
	u.writeLine(fmt.Sprintf(format, args...))
}

func (u *TerminalUI) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	u.writeLine(u.au.Green(msg).String())
}

func (u *TerminalUI) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	u.writeLine(u.au.Yellow(msg).String())
}

func (u *TerminalUI) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	u.writeLine(u.au.Red(msg).String())
}

// Section prints a separator line centred around the title, surrounded by
// blank lines so sections are visually distinct in long output.
//
// Example output:
//
//	===== Bored Ape Yacht Club =====
func (u *TerminalUI) Section(title string) {
	titled := " " + title + " "
	bars := sectionWidth - displayWidth(titled)
	if bars < 6 {
		bars = 6
	}
	left := bars / 2
	right := bars - left
	line := strings.Repeat("=", left) + titled + strings.Repeat("=", right)
	fmt.Fprintf(u.out, "\n%s%s\n\n", u.prefix(), line)
}

// Ask prints a "> " prompt at the current indent and reads a line from stdin.
// It repeats until validate returns nil. A nil validator accepts everything.
func (u *TerminalUI) Ask(validate func(string) error) string {
	for {
		fmt.Fprintf(u.out, "%s%s", u.prefix(), promptPrefix)
		text, _ := u.in.ReadString('\n')
		input := strings.TrimRight(text, "\r\n")
		if validate == nil {
			return input
		}
		if err := validate(input); err == nil {
			return input
		} else {
			u.writeLine(u.au.Red(err.Error()).String())
		}
	}
}

// Confirm prints a yes/no question followed by a "> " prompt and returns the
// user's answer. An empty response accepts the default.
func (u *TerminalUI) Confirm(prompt string, defaultYes bool) bool {
	options := "[Y/n]"
	if !defaultYes {
		options = "[y/N]"
	}
	u.Info("%s %s", prompt, options)
	input := strings.ToLower(strings.TrimSpace(u.Ask(func(s string) error {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || s == "y" || s == "n" {
			return nil
		}
		return fmt.Errorf("please enter y or n")
	})))
	if input == "" {
		return defaultYes
	}
	return input == "y"
}

// Choose prints a numbered list of options, then prompts for an index.
// It returns the 0-based index of the chosen option.
func (u *TerminalUI) Choose(prompt string, options []string) int {
	for i, opt := range options {
		u.Info("%d. %s", i+1, opt)
	}
	u.Info("%s [1-%d]", prompt, len(options))
	input := u.Ask(func(s string) error {
		idx, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || idx < 1 || idx > len(options) {
			return fmt.Errorf("please enter a number between 1 and %d", len(options))
		}
		return nil
	})
	idx, _ := strconv.Atoi(strings.TrimSpace(input))
	return idx - 1
}

// KeyValue renders an aligned 2-column block.
// The label column is right-padded to the width of the longest label so all
// values line up, making metadata blocks easy to scan at a glance.
func (u *TerminalUI) KeyValue(rows [][2]string) {
	if len(rows) == 0 {
		return
	}
	maxLabel := 0
	for _, r := range rows {
		if len(r[0]) > maxLabel {
			maxLabel = len(r[0])
		}
	}
	p := u.prefix()
	for _, r := range rows {
		fmt.Fprintf(u.out, "%s%-*s  %s\n", p, maxLabel, r[0], r[1])
	}
}

// Table renders a full bordered table. When headers is nil or empty no header
// row is rendered, producing a clean bordered block useful for compact
// metadata (e.g. a token summary card). ANSI colour codes embedded in cell
// values (e.g. from u.Style) are measured correctly when padding.
func (u *TerminalUI) Table(headers []string, rows [][]string) {
	// Infer column count from the widest row when no headers are supplied.
	ncols := len(headers)
	if ncols == 0 {
		for _, r := range rows {
			if len(r) > ncols {
				ncols = len(r)
			}
		}
	}
	if ncols == 0 {
		return
	}

	widths := make([]int, ncols)
	for i, h := range headers {
		widths[i] = displayWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < ncols && i < len(row); i++ {
			if w := displayWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	pad := func(s string, w int) string {
		visible := displayWidth(s)
		if visible >= w {
			return s
		}
		return s + strings.Repeat(" ", w-visible)
	}

	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	border := func(s string) string { return borderStyle.Render(s) }

	parts := make([]string, ncols)
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	topBorder := border("┌" + strings.Join(parts, "┬") + "┐")
	headerSep := border("├" + strings.Join(parts, "┼") + "┤")
	botBorder := border("└" + strings.Join(parts, "┴") + "┘")

	renderRow := func(cells []string) string {
		cols := make([]string, ncols)
		for i := 0; i < ncols; i++ {
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			cols[i] = " " + pad(val, widths[i]) + " "
		}
		return border("│") + strings.Join(cols, border("│")) + border("│")
	}

	p := u.prefix()
	fmt.Fprintf(u.out, "%s%s\n", p, topBorder)
	if len(headers) > 0 {
		fmt.Fprintf(u.out, "%s%s\n", p, renderRow(headers))
		fmt.Fprintf(u.out, "%s%s\n", p, headerSep)
	}
	for _, row := range rows {
		fmt.Fprintf(u.out, "%s%s\n", p, renderRow(row))
	}
	fmt.Fprintf(u.out, "%s%s\n", p, botBorder)
}

// Spinner starts an animated spinner with msg and returns a stop function.
// The stop function clears the spinner line. On non-terminal outputs the
// spinner is a no-op and only the message is printed once.
func (u *TerminalUI) Spinner(msg string) func() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintf(u.out, "%s%s\n", u.prefix(), msg)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(u.out))
	s.Suffix = " " + msg
	s.Start()
	return func() {
		s.Stop()
		// briandowns/spinner clears the line with \r but no trailing \n,
		// so we emit one to ensure the next output starts on a fresh line.
		fmt.Fprintf(u.out, "\n")
	}
}

// Indent returns a child UI at one deeper indent level.
// The child shares the underlying writer and reader with the parent, so
// input sequencing and output ordering are preserved across nested scopes.
func (u *TerminalUI) Indent() UI {
	return &TerminalUI{
		indentLevel: u.indentLevel + 1,
		out:         u.out,
		in:          u.in,
		au:          u.au,
	}
}

// Writer returns an io.Writer that automatically prepends the current
// indentation prefix to every line written to it.
func (u *TerminalUI) Writer() io.Writer {
	if u.indentLevel == 0 {
		return u.out
	}
	return indent.NewWriter(u.out, u.prefix())
}
