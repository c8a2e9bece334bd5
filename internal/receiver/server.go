package receiver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	uerrors "article-uploader/internal/errors"
	"article-uploader/internal/protocol"

	"github.com/gorilla/mux"
)

const defaultMaxUploadSize = 32 << 20

type Options struct {
	MaxUploadSize int64
	ImagesOnly    bool
}

// Server is the development endpoint behind /api/generate_article. It only
// collects uploads; generating the article happens elsewhere.
type Server struct {
	log   *slog.Logger
	inbox *Inbox
	opts  Options
}

func NewServer(log *slog.Logger, inbox *Inbox, opts Options) *Server {
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = defaultMaxUploadSize
	}
	return &Server{log: log, inbox: inbox, opts: opts}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc(protocol.GeneratePath, s.handleGenerate).Methods(http.MethodPost)
	r.HandleFunc(protocol.UploadsPath, s.handleList).Methods(http.MethodGet)
	r.HandleFunc(protocol.UploadsPath+"/latest", s.handleLatest).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodGet)
	return r
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadSize)

	file, header, err := r.FormFile(protocol.FileField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, protocol.UploadReply{Error: "file too large"})
			return
		}
		s.log.Warn("Upload without file part", "error", err)
		writeJSON(w, http.StatusBadRequest, protocol.UploadReply{Error: "missing file part"})
		return
	}
	defer file.Close()

	var accept func(string) bool
	if s.opts.ImagesOnly {
		accept = isImage
	}

	entry, ok, err := s.inbox.Save(header.Filename, file, accept)
	if err != nil {
		s.log.Error("Failed to store upload", "file", header.Filename, "error", err)
		writeJSON(w, http.StatusInternalServerError, protocol.UploadReply{Error: "failed to store upload"})
		return
	}
	if !ok {
		s.log.Warn("Rejected upload", "file", header.Filename, "mime", entry.Mime)
		writeJSON(w, http.StatusOK, protocol.UploadReply{Mime: entry.Mime, Error: uerrors.ErrUnsupportedType.Error() + " " + entry.Mime})
		return
	}

	s.log.Info("Stored upload", "file", entry.File, "size", entry.Size, "mime", entry.Mime)
	writeJSON(w, http.StatusOK, protocol.UploadReply{
		Success: true,
		ID:      entry.ID,
		File:    entry.File,
		Mime:    entry.Mime,
		Size:    entry.Size,
		Sha256:  entry.Sha256,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.inbox.List()
	if err != nil {
		s.log.Error("Failed to list inbox", "error", err)
		http.Error(w, "Inbox Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	entry, ok, err := s.inbox.Newest()
	if err != nil {
		s.log.Error("Failed to read inbox", "error", err)
		http.Error(w, "Inbox Error", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "No upload yet", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func isImage(mime string) bool {
	return strings.HasPrefix(mime, "image/")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}
