package ui

// FileStartMsg indicates work on a file has started
type FileStartMsg struct {
	FileIndex int
	FileName  string
}

// FileCompleteMsg indicates a file has finished, successfully when Error is nil
type FileCompleteMsg struct {
	FileIndex int
	Error     error
}

// AllCompleteMsg indicates the batch has finished. Err is set when the batch
// stopped early.
type AllCompleteMsg struct {
	Err error
}

// tickMsg is sent for spinner/timer animation
type tickMsg struct{}
