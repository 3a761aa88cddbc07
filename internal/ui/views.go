package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Spinner frames for the active file
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// queueWindow is how many queue entries are shown around the active file
const queueWindow = 8

// renderProcessingView renders the main processing view
func renderProcessingView(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")

	b.WriteString(renderFileQueue(m))
	b.WriteString("\n")

	b.WriteString(renderOverallProgress(m))

	return b.String()
}

// renderHeader renders the application header
func renderHeader(m Model) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7D56F4")).
		Render("Emoset 🎭 - " + m.Action)

	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Italic(true).
		Render(fmt.Sprintf("%d file(s), q to cancel", m.TotalFiles))

	return title + "\n" + subtitle
}

// renderFileQueue renders a window of the queue around the active file.
// Corpora run to thousands of files so the whole queue is never shown.
func renderFileQueue(m Model) string {
	var b strings.Builder

	start := max(m.CurrentIndex-queueWindow/2, 0)
	end := min(start+queueWindow, len(m.Files))
	if start > 0 {
		fmt.Fprintf(&b, "   … %d earlier\n", start)
	}
	for i := start; i < end; i++ {
		b.WriteString(renderFileEntry(m.Files[i], m.spinnerIndex))
		b.WriteString("\n")
	}
	if end < len(m.Files) {
		fmt.Fprintf(&b, "   … %d more\n", len(m.Files)-end)
	}

	return b.String()
}

// renderFileEntry renders a single file entry in the queue
func renderFileEntry(file FileProgress, spinnerIndex int) string {
	fileName := filepath.Base(file.Path)

	switch file.Status {
	case StatusComplete:
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Render("✓")
		return fmt.Sprintf(" %s %s [%s]", icon, fileName, formatElapsed(file.ElapsedTime))

	case StatusRunning:
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render(spinnerFrames[spinnerIndex])
		return fmt.Sprintf(" %s %s [%s]", icon, fileName, formatElapsed(file.ElapsedTime))

	case StatusError:
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#A40000")).Render("✗")
		return fmt.Sprintf(" %s %s\n   Error: %v", icon, fileName, file.Error)

	default:
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("○")
		return fmt.Sprintf(" %s %s", icon, fileName)
	}
}

// renderProgressBar renders a progress bar with percentage
func renderProgressBar(progress float64, width int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))
	empty := width - filled

	filledStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))

	bar := filledStyle.Render(strings.Repeat("━", filled)) +
		emptyStyle.Render(strings.Repeat("━", empty))

	return fmt.Sprintf("%s %3d%%", bar, int(progress*100))
}

// renderOverallProgress renders the overall progress footer
func renderOverallProgress(m Model) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#888888")).
		Padding(0, 1).
		Width(60)

	finished := m.CompletedFiles + m.FailedFiles
	var progress float64
	if m.TotalFiles > 0 {
		progress = float64(finished) / float64(m.TotalFiles)
	}

	content := fmt.Sprintf("%s\n%d of %d done, %d failed [%s]",
		renderProgressBar(progress, 40),
		finished, m.TotalFiles, m.FailedFiles,
		formatElapsed(time.Since(m.StartTime)))

	return box.Render(content)
}

// renderCompletionSummary renders the final completion summary
func renderCompletionSummary(m Model) string {
	var b strings.Builder

	headerColor := lipgloss.Color("#00AA00")
	headline := "✨ " + m.Action + " complete!"
	if m.FailedFiles > 0 || m.Err != nil {
		headerColor = lipgloss.Color("#FFA500")
		headline = "⚠ " + m.Action + " finished with errors"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(headerColor).Render(headline))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, " %d succeeded, %d failed, %d total [%s]\n",
		m.CompletedFiles, m.FailedFiles, m.TotalFiles, formatElapsed(time.Since(m.StartTime)))

	failed := m.Failed()
	if len(failed) > 0 {
		b.WriteString("\n Failed:\n")
		for _, path := range failed {
			fmt.Fprintf(&b, "   %s\n", path)
		}
	}
	if m.Err != nil {
		fmt.Fprintf(&b, "\n Stopped early: %v\n", m.Err)
	}

	return b.String()
}

// formatElapsed formats elapsed time as MM:SS or HH:MM:SS
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
