package ui

import (
	"fmt"
	"io"
	"sync"

	"article-uploader/internal/status"

	"github.com/gookit/color"
)

var styles = map[status.Status]color.Style{
	status.SelectFile:       color.New(color.FgYellow),
	status.Uploading:        color.New(color.FgCyan),
	status.Generated:        color.New(color.FgGreen, color.OpBold),
	status.GenerationFailed: color.New(color.FgYellow, color.OpBold),
	status.UploadError:      color.New(color.FgRed, color.OpBold),
}

// StatusLine is the terminal counterpart of the page's status element.
// It is safe for concurrent use.
type StatusLine struct {
	mu      sync.Mutex
	out     io.Writer
	colours bool
	current status.Status
}

func NewStatusLine(out io.Writer, colours bool) *StatusLine {
	return &StatusLine{out: out, colours: colours}
}

func (l *StatusLine) Show(s status.Status) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = s

	text := s.Text()
	if text == "" {
		return
	}
	if style, ok := styles[s]; ok && l.colours {
		text = style.Render(text)
	}
	fmt.Fprintln(l.out, text)
}

func (l *StatusLine) Current() status.Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}
