package status

import "sync"

// Status is one of the user-visible messages shown by the upload form.
type Status int

const (
	Blank Status = iota
	SelectFile
	Uploading
	Generated
	GenerationFailed
	UploadError
)

func (s Status) Text() string {
	switch s {
	case SelectFile:
		return "Please select a file."
	case Uploading:
		return "Uploading..."
	case Generated:
		return "Article generated! Reloading..."
	case GenerationFailed:
		return "Failed to generate article."
	case UploadError:
		return "Error during upload."
	default:
		return ""
	}
}

func (s Status) String() string {
	return s.Text()
}

// Recorder is an in-memory display keeping every status it was shown.
type Recorder struct {
	mu      sync.Mutex
	history []Status
}

func (r *Recorder) Show(s Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, s)
}

// Current returns the last shown status, Blank if nothing was shown yet.
func (r *Recorder) Current() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return Blank
	}
	return r.history[len(r.history)-1]
}

func (r *Recorder) History() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Status, len(r.history))
	copy(out, r.history)
	return out
}
