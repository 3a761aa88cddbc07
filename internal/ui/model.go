// Package ui provides the Bubbletea terminal user interface for the emoset batch steps
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FileStatus represents the processing state of a single file
type FileStatus int

const (
	StatusQueued FileStatus = iota
	StatusRunning
	StatusComplete
	StatusError
)

// FileProgress tracks progress for a single audio file
type FileProgress struct {
	Path        string
	Status      FileStatus
	StartTime   time.Time
	ElapsedTime time.Duration
	Error       error
}

// Model is the Bubbletea model for a batch run over many recordings
type Model struct {
	// Action describes the batch, e.g. "Stripping metadata"
	Action string

	// File queue
	Files          []FileProgress
	CurrentIndex   int
	TotalFiles     int
	CompletedFiles int
	FailedFiles    int

	// Global state
	StartTime time.Time
	Done      bool
	Cancelled bool
	Err       error

	// Cancel stops the background batch when the user quits early
	Cancel context.CancelFunc

	spinnerIndex int

	// Terminal dimensions
	Width  int
	Height int
}

// NewModel creates a new UI model for the given files
func NewModel(action string, paths []string, cancel context.CancelFunc) Model {
	files := make([]FileProgress, len(paths))
	for i, path := range paths {
		files[i] = FileProgress{Path: path, Status: StatusQueued}
	}

	return Model{
		Action:       action,
		Files:        files,
		CurrentIndex: -1, // No file processing yet
		TotalFiles:   len(paths),
		StartTime:    time.Now(),
		Cancel:       cancel,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tick message every 100ms
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.Cancel != nil {
				m.Cancel()
			}
			m.Cancelled = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tickMsg:
		if m.Done {
			return m, nil
		}
		m.spinnerIndex = (m.spinnerIndex + 1) % len(spinnerFrames)
		if m.CurrentIndex >= 0 && m.CurrentIndex < len(m.Files) {
			f := &m.Files[m.CurrentIndex]
			if f.Status == StatusRunning {
				f.ElapsedTime = time.Since(f.StartTime)
			}
		}
		return m, tickCmd()

	case FileStartMsg:
		if msg.FileIndex < 0 || msg.FileIndex >= len(m.Files) {
			return m, nil
		}
		m.CurrentIndex = msg.FileIndex
		m.Files[m.CurrentIndex].Status = StatusRunning
		m.Files[m.CurrentIndex].StartTime = time.Now()

	case FileCompleteMsg:
		if msg.FileIndex < 0 || msg.FileIndex >= len(m.Files) {
			return m, nil
		}
		f := &m.Files[msg.FileIndex]
		if !f.StartTime.IsZero() {
			f.ElapsedTime = time.Since(f.StartTime)
		}
		f.Error = msg.Error
		if msg.Error != nil {
			f.Status = StatusError
			m.FailedFiles++
		} else {
			f.Status = StatusComplete
			m.CompletedFiles++
		}

	case AllCompleteMsg:
		m.Done = true
		m.Err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.Done {
		return renderCompletionSummary(m)
	}
	if m.Width == 0 {
		return "Initializing..."
	}
	return renderProcessingView(m)
}

// Failed returns the paths of files that ended in error
func (m Model) Failed() []string {
	var out []string
	for _, f := range m.Files {
		if f.Status == StatusError {
			out = append(out, f.Path)
		}
	}
	return out
}
