package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"article-uploader/internal/protocol"
	"article-uploader/internal/status"

	"github.com/stretchr/testify/require"
)

// syncBuffer collects output written from the loop and from upload goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// fakeReceiver answers the generate endpoint after delay and records the
// uploaded filenames in arrival order.
type fakeReceiver struct {
	mu       sync.Mutex
	received []string
	delay    time.Duration
	reply    string
}

func (f *fakeReceiver) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == protocol.UploadsPath:
		_, _ = io.WriteString(w, `[]`)
	case r.Method == http.MethodPost && r.URL.Path == protocol.GeneratePath:
		_, header, err := r.FormFile(protocol.FileField)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.received = append(f.received, header.Filename)
		f.mu.Unlock()
		time.Sleep(f.delay)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, f.reply)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeReceiver) Received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.received...)
}

// setupClientEnv points the client at receiver and returns a directory holding
// a.png and b.png.
func setupClientEnv(t *testing.T, receiver *fakeReceiver) string {
	t.Helper()
	srv := httptest.NewServer(receiver)
	t.Cleanup(srv.Close)

	t.Setenv("UPLOAD_SERVER_URL", srv.URL)
	t.Setenv("UPLOAD_PROGRESS", "false")
	t.Setenv("UPLOAD_COLOURS", "false")
	t.Setenv("LOG_LEVEL", "ERROR")

	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("pixels of "+name), 0o644))
	}
	return dir
}

func TestRun_SingleSubmission(t *testing.T) {
	tests := []struct {
		description string
		reply       string
		files       func(dir string) []string
		env         map[string]string
		wantCode    int
		wantErr     bool
		wantOutput  string
		wantSent    []string
	}{
		{
			description: "Should exit 0 when the article is generated",
			reply:       `{"success": true}`,
			files:       func(dir string) []string { return []string{filepath.Join(dir, "a.png")} },
			wantCode:    exitOK,
			wantOutput:  status.Generated.Text(),
			wantSent:    []string{"a.png"},
		},
		{
			description: "Should exit 1 when the server rejects the upload",
			reply:       `{"success": false}`,
			files:       func(dir string) []string { return []string{filepath.Join(dir, "a.png")} },
			wantCode:    exitRuntime,
			wantOutput:  status.GenerationFailed.Text(),
			wantSent:    []string{"a.png"},
		},
		{
			description: "Should exit 1 and ask for a file when nothing is selected",
			reply:       `{"success": true}`,
			files:       func(string) []string { return nil },
			wantCode:    exitRuntime,
			wantOutput:  "Please select a file.",
		},
		{
			description: "Should exit 1 when the selected file does not exist",
			reply:       `{"success": true}`,
			files:       func(dir string) []string { return []string{filepath.Join(dir, "ghost.png")} },
			wantCode:    exitRuntime,
			wantErr:     true,
		},
		{
			description: "Should exit 2 on invalid configuration",
			reply:       `{"success": true}`,
			files:       func(dir string) []string { return []string{filepath.Join(dir, "a.png")} },
			env:         map[string]string{"LOG_LEVEL": "LOUD"},
			wantCode:    exitConfig,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			receiver := &fakeReceiver{reply: tt.reply}
			dir := setupClientEnv(t, receiver)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var out syncBuffer
			code, err := run(tt.files(dir), false, filepath.Join(dir, "missing.env"), strings.NewReader(""), &out)
			req.Equal(tt.wantCode, code)
			if tt.wantErr {
				req.Error(err)
			} else {
				req.NoError(err)
			}
			req.Contains(out.String(), tt.wantOutput)
			req.Equal(tt.wantSent, receiver.Received())
		})
	}
}

func TestRun_Interactive(t *testing.T) {
	tests := []struct {
		description string
		lines       func(dir string) string
		wantSent    []string
		wantOutput  []string
	}{
		{
			description: "Should upload the first line and ignore a line read while it runs",
			lines: func(dir string) string {
				return filepath.Join(dir, "a.png") + "\n" + filepath.Join(dir, "b.png") + "\n"
			},
			wantSent:   []string{"a.png"},
			wantOutput: []string{status.Uploading.Text(), status.Generated.Text()},
		},
		{
			description: "Should ask for a file on an empty line",
			lines:       func(string) string { return "\n" },
			wantOutput:  []string{"Please select a file."},
		},
		{
			description: "Should treat a missing path as an empty selection",
			lines:       func(dir string) string { return filepath.Join(dir, "ghost.png") + "\n" },
			wantOutput:  []string{"Please select a file."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			receiver := &fakeReceiver{reply: `{"success": true}`, delay: 200 * time.Millisecond}
			dir := setupClientEnv(t, receiver)

			var out syncBuffer
			code, err := run(nil, true, filepath.Join(dir, "missing.env"), strings.NewReader(tt.lines(dir)), &out)
			req.NoError(err)
			req.Equal(exitOK, code)
			req.Equal(tt.wantSent, receiver.Received())
			for _, want := range tt.wantOutput {
				req.Contains(out.String(), want)
			}
			req.Equal(len(tt.wantSent), strings.Count(out.String(), status.Uploading.Text()))
		})
	}
}
