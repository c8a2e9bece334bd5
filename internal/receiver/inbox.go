package receiver

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"article-uploader/internal/protocol"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Inbox is the directory uploaded files land in, waiting for generation.
type Inbox struct {
	dir string
	mu  sync.Mutex
}

func NewInbox(dir string) (*Inbox, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create inbox %s: %w", dir, err)
	}
	return &Inbox{dir: dir}, nil
}

func (in *Inbox) Dir() string {
	return in.dir
}

// Save stores r under a short random id prefix. When accept is non nil and
// rejects the sniffed MIME type, nothing is kept and ok is false.
func (in *Inbox) Save(filename string, r io.Reader, accept func(mime string) bool) (entry protocol.UploadEntry, ok bool, err error) {
	id := uuid.New().String()[:8]
	name := id + "-" + sanitize(filename)

	tmp, err := os.CreateTemp(in.dir, ".incoming-*")
	if err != nil {
		return protocol.UploadEntry{}, false, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		return protocol.UploadEntry{}, false, fmt.Errorf("failed to buffer upload: %w", err)
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return protocol.UploadEntry{}, false, err
	}
	mt, err := mimetype.DetectReader(tmp)
	if err != nil {
		return protocol.UploadEntry{}, false, fmt.Errorf("failed to detect type: %w", err)
	}
	if accept != nil && !accept(mt.String()) {
		return protocol.UploadEntry{Mime: mt.String()}, false, nil
	}
	if err := tmp.Close(); err != nil {
		return protocol.UploadEntry{}, false, err
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	dst := filepath.Join(in.dir, name)
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return protocol.UploadEntry{}, false, fmt.Errorf("failed to store %s: %w", name, err)
	}

	entry, err = in.describe(name)
	if err != nil {
		return protocol.UploadEntry{}, false, err
	}
	return entry, true, nil
}

// List returns every stored upload, newest first.
func (in *Inbox) List() ([]protocol.UploadEntry, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	files, err := os.ReadDir(in.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read inbox: %w", err)
	}

	names := lo.FilterMap(files, func(f os.DirEntry, _ int) (string, bool) {
		return f.Name(), !f.IsDir() && !strings.HasPrefix(f.Name(), ".")
	})

	entries := make([]protocol.UploadEntry, 0, len(names))
	for _, name := range names {
		entry, err := in.describe(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].UploadedAt.After(entries[j].UploadedAt)
	})
	return entries, nil
}

// Newest returns the most recent upload, ok is false when the inbox is empty.
func (in *Inbox) Newest() (protocol.UploadEntry, bool, error) {
	entries, err := in.List()
	if err != nil {
		return protocol.UploadEntry{}, false, err
	}
	if len(entries) == 0 {
		return protocol.UploadEntry{}, false, nil
	}
	return entries[0], true, nil
}

func (in *Inbox) describe(name string) (protocol.UploadEntry, error) {
	path := filepath.Join(in.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return protocol.UploadEntry{}, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return protocol.UploadEntry{}, err
	}
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return protocol.UploadEntry{}, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return protocol.UploadEntry{}, err
	}
	checksum, err := protocol.ComputeChecksum(f)
	if err != nil {
		return protocol.UploadEntry{}, err
	}

	id, _, _ := strings.Cut(name, "-")
	return protocol.UploadEntry{
		ID:         id,
		File:       name,
		Mime:       mt.String(),
		Size:       info.Size(),
		Sha256:     hex.EncodeToString(checksum[:]),
		UploadedAt: info.ModTime().UTC(),
	}, nil
}

// sanitize keeps the base name only, to prevent directory traversal.
func sanitize(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	return name
}
