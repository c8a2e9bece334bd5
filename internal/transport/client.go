package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	uerrors "article-uploader/internal/errors"
	"article-uploader/internal/protocol"
	"article-uploader/internal/selection"
	"article-uploader/internal/ui"

	"github.com/imroc/req/v3"
)

type Options struct {
	BaseURL string
	// Timeout bounds a whole request; zero means no timeout.
	Timeout     time.Duration
	InsecureTLS bool
	// Progress receives an upload progress bar when set.
	Progress io.Writer
}

// Client talks to the article generation endpoint.
type Client struct {
	log      *slog.Logger
	http     *req.Client
	progress io.Writer
}

func NewClient(log *slog.Logger, opts Options) *Client {
	c := req.C().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout)
	if opts.InsecureTLS {
		c.EnableInsecureSkipVerify()
	}
	return &Client{
		log:      log,
		http:     c,
		progress: opts.Progress,
	}
}

// Upload posts file as the single "file" part of a multipart body and decodes
// the reply. Failures to send or to read the reply wrap ErrTransport, a reply
// that is not JSON wraps ErrDecode.
func (c *Client) Upload(ctx context.Context, file selection.File) (protocol.GenerateResponse, error) {
	content, err := file.Open()
	if err != nil {
		return protocol.GenerateResponse{}, fmt.Errorf("%w: failed to open %s: %v", uerrors.ErrTransport, file.Name, err)
	}
	defer content.Close()

	var body io.Reader = content
	if c.progress != nil {
		body = ui.NewProgressReader(file.Size, content, c.progress, file.Name)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader(protocol.FileField, file.Name, body).
		Post(protocol.GeneratePath)
	if err != nil {
		return protocol.GenerateResponse{}, fmt.Errorf("%w: %v", uerrors.ErrTransport, err)
	}

	raw, err := resp.ToBytes()
	if err != nil {
		return protocol.GenerateResponse{}, fmt.Errorf("%w: failed to read response: %v", uerrors.ErrTransport, err)
	}
	if !resp.IsSuccessState() {
		c.log.Debug("Unexpected response", "status", resp.StatusCode, "body", string(raw))
		return protocol.GenerateResponse{}, fmt.Errorf("%w: %w: %s", uerrors.ErrTransport, uerrors.ErrUnexpectedStatus, resp.Status)
	}

	result, err := protocol.DecodeResponse(raw)
	if err != nil {
		return protocol.GenerateResponse{}, err
	}
	c.log.Debug("Upload answered", "file", file.Name, "success", result.Success)
	return result, nil
}

// ListUploads fetches the receiver's inbox listing, newest first.
func (c *Client) ListUploads(ctx context.Context) ([]protocol.UploadEntry, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(protocol.UploadsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", uerrors.ErrTransport, err)
	}
	raw, err := resp.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", uerrors.ErrTransport, err)
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("%w: %s", uerrors.ErrUnexpectedStatus, resp.Status)
	}

	var entries []protocol.UploadEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", uerrors.ErrDecode, err)
	}
	return entries, nil
}
