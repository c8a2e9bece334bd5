package upload

import (
	"context"

	"article-uploader/internal/protocol"
	"article-uploader/internal/selection"
	"article-uploader/internal/status"
)

//go:generate mockgen -source=ports.go -destination=../mocks/mock_upload.go -package=mocks

// Uploader posts one file to the generate endpoint.
type Uploader interface {
	Upload(ctx context.Context, file selection.File) (protocol.GenerateResponse, error)
}

// Refresher re-renders whatever content a successful upload changed.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type FileInput interface {
	Files() []selection.File
}

type StatusDisplay interface {
	Show(s status.Status)
}

// Control is the submit trigger, disabled while an upload is in flight.
type Control interface {
	SetDisabled(disabled bool)
}

// Elements are the three UI pieces the handler works with. Submit may be nil.
type Elements struct {
	Input  FileInput
	Status StatusDisplay
	Submit Control
}
