package protocol

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"time"

	uerrors "article-uploader/internal/errors"
)

const (
	DiscoveryMsg = "DISCOVER_ARTICLE_RECEIVER"

	// Endpoints
	GeneratePath = "/api/generate_article"
	UploadsPath  = "/api/uploads"

	// FileField is the multipart field carrying the selected file.
	FileField = "file"
)

// GenerateResponse is the decoded reply of the generate endpoint.
// Only the success member is interpreted; Raw keeps the whole body.
type GenerateResponse struct {
	Success bool
	Raw     json.RawMessage
}

// UploadReply is what the receiver sends back after storing a file.
type UploadReply struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	File    string `json:"file,omitempty"`
	Mime    string `json:"mime,omitempty"`
	Size    int64  `json:"size,omitempty"`
	Sha256  string `json:"sha256,omitempty"`
	Error   string `json:"error,omitempty"`
}

// UploadEntry is one line of the receiver's inbox listing.
type UploadEntry struct {
	ID         string    `json:"id"`
	File       string    `json:"file"`
	Mime       string    `json:"mime"`
	Size       int64     `json:"size"`
	Sha256     string    `json:"sha256"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// DecodeResponse parses a generate reply. The success member is read with
// JavaScript truthiness, so {"success": 1} counts as a success and a body
// without the member counts as a rejection. A body that is not JSON, or is
// the JSON literal null, is a decode failure. A leading UTF-8 byte order
// mark is ignored.
func DecodeResponse(body []byte) (GenerateResponse, error) {
	body = bytes.TrimPrefix(body, utf8BOM)

	var doc any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return GenerateResponse{}, fmt.Errorf("%w: %v", uerrors.ErrDecode, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return GenerateResponse{}, fmt.Errorf("%w: trailing data after JSON value", uerrors.ErrDecode)
	}
	if doc == nil {
		return GenerateResponse{}, fmt.Errorf("%w: response is null", uerrors.ErrDecode)
	}

	resp := GenerateResponse{Raw: json.RawMessage(body)}
	if obj, ok := doc.(map[string]any); ok {
		resp.Success = truthy(obj["success"])
	}
	return resp, nil
}

var utf8BOM = []byte("\ufeff")

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case json.Number:
		// out of range values parse as ±Inf
		f, _ := val.Float64()
		return f != 0
	default:
		// objects and arrays
		return true
	}
}

// ComputeChecksum calculates the SHA256 hash of a stream
func ComputeChecksum(r io.Reader) ([32]byte, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, r); err != nil {
		return [32]byte{}, err
	}

	var checksum [32]byte
	copy(checksum[:], hash.Sum(nil))
	return checksum, nil
}
