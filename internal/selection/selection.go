package selection

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

// File is one entry of the user's selection: a filename plus a byte stream
// that is only opened when the upload is built.
type File struct {
	Name     string `validate:"required,max=255"`
	Size     int64  `validate:"gte=0"`
	MimeType string `validate:"required"`
	open     func() (io.ReadCloser, error)
}

// Open returns a fresh reader over the file content.
func (f File) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, fmt.Errorf("file %q has no content", f.Name)
	}
	return f.open()
}

// FromPath stats a file on disk and sniffs its MIME type.
func FromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to detect type of %s: %w", path, err)
	}

	f := File{
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MimeType: mt.String(),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
	if err := validate.Struct(f); err != nil {
		return File{}, err
	}
	return f, nil
}

// FromBytes wraps in-memory content as a selected file.
func FromBytes(name string, data []byte) (File, error) {
	f := File{
		Name:     name,
		Size:     int64(len(data)),
		MimeType: mimetype.Detect(data).String(),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
	if err := validate.Struct(f); err != nil {
		return File{}, err
	}
	return f, nil
}

// Input is the ordered list of files currently selected.
type Input struct {
	files []File
}

func NewInput(files ...File) Input {
	return Input{files: files}
}

// FromPaths builds an input from paths, skipping blank entries.
func FromPaths(paths []string) (Input, error) {
	paths = lo.Compact(lo.Map(paths, func(p string, _ int) string {
		return strings.TrimSpace(p)
	}))

	files := make([]File, 0, len(paths))
	for _, p := range paths {
		f, err := FromPath(p)
		if err != nil {
			return Input{}, err
		}
		files = append(files, f)
	}
	return NewInput(files...), nil
}

func (in Input) Files() []File {
	return in.files
}

func (in Input) Len() int {
	return len(in.files)
}

// Names lists the selected file names in order.
func (in Input) Names() []string {
	return lo.Map(in.files, func(f File, _ int) string {
		return f.Name
	})
}

// Field is a file input whose selection changes over time, like a form
// input the user picks files in. It is safe for concurrent use.
type Field struct {
	mu    sync.RWMutex
	input Input
}

func (f *Field) Set(in Input) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input = in
}

func (f *Field) Files() []File {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.input.Files()
}
