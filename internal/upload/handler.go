package upload

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	uerrors "article-uploader/internal/errors"
	"article-uploader/internal/protocol"
	"article-uploader/internal/status"
)

type Outcome int

const (
	OutcomeBusy Outcome = iota
	OutcomeNoSelection
	OutcomeSuccess
	OutcomeServerRejected
	OutcomeTransportFailure
	OutcomeDecodeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBusy:
		return "busy"
	case OutcomeNoSelection:
		return "no_selection"
	case OutcomeSuccess:
		return "success"
	case OutcomeServerRejected:
		return "server_rejected"
	case OutcomeTransportFailure:
		return "transport_failure"
	case OutcomeDecodeFailure:
		return "decode_failure"
	default:
		return "unknown"
	}
}

// Result is what a single submission ended with.
type Result struct {
	Outcome  Outcome
	File     string
	Response protocol.GenerateResponse
	Err      error
}

type Handler struct {
	log       *slog.Logger
	uploader  Uploader
	elements  Elements
	refresher Refresher
	inFlight  atomic.Bool
}

func NewHandler(log *slog.Logger, uploader Uploader, elements Elements, refresher Refresher) *Handler {
	return &Handler{
		log:       log,
		uploader:  uploader,
		elements:  elements,
		refresher: refresher,
	}
}

// InFlight reports whether an upload is currently running.
func (h *Handler) InFlight() bool {
	return h.inFlight.Load()
}

// Submit runs one submission of the upload form. At most one submission is
// in flight: a call made while another one runs returns OutcomeBusy and
// leaves the status untouched.
func (h *Handler) Submit(ctx context.Context) Result {
	if !h.TryBegin() {
		return Result{Outcome: OutcomeBusy}
	}
	return h.Run(ctx)
}

// TryBegin claims the in-flight slot and disables the submit control. Every
// successful claim must be followed by exactly one Run, which releases it.
// Callers that prepare the input after claiming know no other submission
// can read it in between.
func (h *Handler) TryBegin() bool {
	if !h.inFlight.CompareAndSwap(false, true) {
		h.log.Debug("Submission ignored, upload already in flight")
		return false
	}
	h.setDisabled(true)
	return true
}

// Run performs a submission claimed with TryBegin and releases the slot.
func (h *Handler) Run(ctx context.Context) Result {
	defer func() {
		h.setDisabled(false)
		h.inFlight.Store(false)
	}()

	files := h.elements.Input.Files()
	if len(files) == 0 {
		h.elements.Status.Show(status.SelectFile)
		return Result{Outcome: OutcomeNoSelection, Err: uerrors.ErrNoSelection}
	}

	file := files[0]
	if len(files) > 1 {
		ignored := make([]string, 0, len(files)-1)
		for _, f := range files[1:] {
			ignored = append(ignored, f.Name)
		}
		h.log.Warn("Only the first selected file is uploaded", "file", file.Name, "ignored", ignored)
	}

	h.elements.Status.Show(status.Uploading)
	h.log.Info("Uploading file", "file", file.Name, "size", file.Size, "mime", file.MimeType)

	resp, err := h.uploader.Upload(ctx, file)
	if err != nil {
		h.log.Error("Upload failed", "file", file.Name, "error", err)
		h.elements.Status.Show(status.UploadError)
		outcome := OutcomeTransportFailure
		if errors.Is(err, uerrors.ErrDecode) {
			outcome = OutcomeDecodeFailure
		}
		return Result{Outcome: outcome, File: file.Name, Err: err}
	}

	if !resp.Success {
		h.log.Warn("Server rejected the upload", "file", file.Name, "response", string(resp.Raw))
		h.elements.Status.Show(status.GenerationFailed)
		return Result{Outcome: OutcomeServerRejected, File: file.Name, Response: resp}
	}

	h.elements.Status.Show(status.Generated)
	h.log.Info("Article generated", "file", file.Name)
	if h.refresher != nil {
		if err := h.refresher.Refresh(ctx); err != nil {
			h.log.Error("Refresh after upload failed", "error", err)
		}
	}
	return Result{Outcome: OutcomeSuccess, File: file.Name, Response: resp}
}

// Reset blanks the status display. It does nothing while an upload runs.
func (h *Handler) Reset() {
	if h.inFlight.Load() {
		return
	}
	h.elements.Status.Show(status.Blank)
}

func (h *Handler) setDisabled(disabled bool) {
	if h.elements.Submit != nil {
		h.elements.Submit.SetDisabled(disabled)
	}
}
