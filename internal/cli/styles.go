package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/emoset/internal/logging"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#7D56F4") // Emoset violet
	accentColor  = lipgloss.Color("#FFA500") // Orange
	successColor = lipgloss.Color("#00AA00") // Green
	mutedColor   = lipgloss.Color("#888888") // Gray
	textColor    = lipgloss.Color("#FFFFFF") // White
	errorColor   = lipgloss.Color("#A40000") // Red
)

// Styles
var (
	// Title style
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	// Warning style for recoverable issues
	WarnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	// Success style
	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	// Key-value pair styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render("Emoset 🎭"))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintKeyValue prints one labelled value
func PrintKeyValue(key string, value any) {
	fmt.Printf("%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(fmt.Sprint(value)))
}

// PrintIssues writes every path that triggered a recoverable condition,
// grouped by kind. Nothing is written for a clean run.
func PrintIssues(w io.Writer, issues *logging.Issues) {
	if issues.Len() == 0 {
		fmt.Fprintln(w, SuccessStyle.Render("✓ No issues"))
		return
	}

	fmt.Fprintln(w, WarnStyle.Render(fmt.Sprintf("⚠ %d issue(s) during this run:", issues.Len())))
	var last logging.IssueKind
	for _, it := range sortedByKind(issues) {
		if it.Kind != last {
			fmt.Fprintf(w, "\n  %s\n", KeyStyle.Render(string(it.Kind)))
			last = it.Kind
		}
		fmt.Fprintf(w, "    %s\n", it.Path)
	}
	fmt.Fprintln(w)
}

// sortedByKind groups issues by kind, keeping recorded order within a kind
func sortedByKind(issues *logging.Issues) []logging.Issue {
	var kinds []logging.IssueKind
	seen := make(map[logging.IssueKind]bool)
	for _, it := range issues.All() {
		if !seen[it.Kind] {
			seen[it.Kind] = true
			kinds = append(kinds, it.Kind)
		}
	}
	var out []logging.Issue
	for _, k := range kinds {
		out = append(out, issues.OfKind(k)...)
	}
	return out
}
