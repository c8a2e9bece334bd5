package ui

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const barWidth = 40

// ProgressReader tracks the number of bytes read from an upload body and
// draws a progress bar on Out.
type ProgressReader struct {
	Total      int64
	Current    int64
	Reader     io.Reader
	Out        io.Writer
	Label      string
	startTime  time.Time
	lastUpdate time.Time
	finished   bool
}

func NewProgressReader(total int64, r io.Reader, out io.Writer, label string) *ProgressReader {
	return &ProgressReader{
		Total:     total,
		Reader:    r,
		Out:       out,
		Label:     label,
		startTime: time.Now(),
	}
}

func (pr *ProgressReader) Read(p []byte) (int, error) {
	n, err := pr.Reader.Read(p)
	pr.Current += int64(n)
	pr.printProgress()
	return n, err
}

// Close closes the wrapped reader when it is closable.
func (pr *ProgressReader) Close() error {
	if c, ok := pr.Reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (pr *ProgressReader) printProgress() {
	if pr.finished {
		return
	}
	// Only update every 100ms or if complete to avoid flashing
	if pr.Current < pr.Total && time.Since(pr.lastUpdate) < 100*time.Millisecond {
		return
	}
	pr.lastUpdate = time.Now()

	ratio := 1.0
	if pr.Total > 0 {
		ratio = float64(pr.Current) / float64(pr.Total)
	}
	if ratio > 1 {
		ratio = 1
	}
	completed := int(float64(barWidth) * ratio)
	bar := strings.Repeat("█", completed) + strings.Repeat("░", barWidth-completed)

	duration := time.Since(pr.startTime).Seconds()
	if duration == 0 {
		duration = 0.0001
	}
	speed := float64(pr.Current) / (1024 * 1024) / duration // MB/s

	fmt.Fprintf(pr.Out, "\r⬆️  %s [%s] %.1f%% (%.2f MB/s)", pr.Label, bar, ratio*100, speed)
	if pr.Current >= pr.Total {
		pr.finished = true
		fmt.Fprintln(pr.Out)
	}
}
