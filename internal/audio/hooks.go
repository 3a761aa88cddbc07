package audio

// Hooks receive per-file progress from the batch steps. Nil hooks are skipped.
type Hooks struct {
	Start func(index int, f File)
	Done  func(index int, f File, err error)
}

// FileStart reports that work on a file has begun
func (h Hooks) FileStart(index int, f File) {
	if h.Start != nil {
		h.Start(index, f)
	}
}

// FileDone reports that work on a file has finished, successfully if err is nil
func (h Hooks) FileDone(index int, f File, err error) {
	if h.Done != nil {
		h.Done(index, f, err)
	}
}
