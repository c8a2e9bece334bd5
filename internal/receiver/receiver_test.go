package receiver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"article-uploader/internal/protocol"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}, bytes.Repeat([]byte{1}, 64)...)

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("comment", "no file here"))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func newTestServer(t *testing.T, opts Options) (*httptest.Server, *Inbox) {
	t.Helper()
	inbox, err := NewInbox(filepath.Join(t.TempDir(), "inbox"))
	require.NoError(t, err)
	srv := httptest.NewServer(NewServer(logs.GetLoggerFromLevel(slog.LevelDebug), inbox, opts).Router())
	t.Cleanup(srv.Close)
	return srv, inbox
}

func post(t *testing.T, url string, body io.Reader, contentType string) (int, protocol.UploadReply) {
	t.Helper()
	resp, err := http.Post(url+protocol.GeneratePath, contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	var reply protocol.UploadReply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	return resp.StatusCode, reply
}

func TestServer_Generate(t *testing.T) {
	req := require.New(t)
	srv, inbox := newTestServer(t, Options{})

	body, ct := multipartBody(t, protocol.FileField, "../../etc/sunset.png", pngBytes)
	code, reply := post(t, srv.URL, body, ct)

	req.Equal(http.StatusOK, code)
	req.True(reply.Success)
	req.Len(reply.ID, 8)
	req.Equal(reply.ID+"-sunset.png", reply.File, "the name is stripped of its directories")
	req.Equal("image/png", reply.Mime)
	req.Equal(int64(len(pngBytes)), reply.Size)
	req.Len(reply.Sha256, 64)

	stored, err := os.ReadFile(filepath.Join(inbox.Dir(), reply.File))
	req.NoError(err)
	req.Equal(pngBytes, stored)
}

func TestServer_Generate_MissingFile(t *testing.T) {
	req := require.New(t)
	srv, inbox := newTestServer(t, Options{})

	body, ct := multipartBody(t, "", "", nil)
	code, reply := post(t, srv.URL, body, ct)
	req.Equal(http.StatusBadRequest, code)
	req.False(reply.Success)
	req.NotEmpty(reply.Error)

	entries, err := inbox.List()
	req.NoError(err)
	req.Empty(entries)
}

func TestServer_Generate_ImagesOnly(t *testing.T) {
	req := require.New(t)
	srv, inbox := newTestServer(t, Options{ImagesOnly: true})

	body, ct := multipartBody(t, protocol.FileField, "notes.txt", []byte("just some text"))
	code, reply := post(t, srv.URL, body, ct)
	req.Equal(http.StatusOK, code)
	req.False(reply.Success)
	req.Contains(reply.Error, "text/plain")

	entries, err := inbox.List()
	req.NoError(err)
	req.Empty(entries, "rejected uploads are not kept")

	body, ct = multipartBody(t, protocol.FileField, "sunset.png", pngBytes)
	_, reply = post(t, srv.URL, body, ct)
	req.True(reply.Success)
}

func TestServer_Generate_TooLarge(t *testing.T) {
	req := require.New(t)
	srv, _ := newTestServer(t, Options{MaxUploadSize: 1024})

	body, ct := multipartBody(t, protocol.FileField, "big.bin", bytes.Repeat([]byte("a"), 4096))
	code, reply := post(t, srv.URL, body, ct)
	req.GreaterOrEqual(code, http.StatusBadRequest)
	req.False(reply.Success)
}

func TestServer_Generate_WrongMethod(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	resp, err := http.Get(srv.URL + protocol.GeneratePath)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_ListAndLatest(t *testing.T) {
	req := require.New(t)
	srv, inbox := newTestServer(t, Options{})

	resp, err := http.Get(srv.URL + protocol.UploadsPath + "/latest")
	req.NoError(err)
	resp.Body.Close()
	req.Equal(http.StatusNotFound, resp.StatusCode)

	body, ct := multipartBody(t, protocol.FileField, "old.png", pngBytes)
	_, first := post(t, srv.URL, body, ct)
	body, ct = multipartBody(t, protocol.FileField, "new.txt", []byte("newer"))
	_, second := post(t, srv.URL, body, ct)

	// make the ordering independent of the filesystem clock resolution
	past := time.Now().Add(-time.Hour)
	req.NoError(os.Chtimes(filepath.Join(inbox.Dir(), first.File), past, past))

	resp, err = http.Get(srv.URL + protocol.UploadsPath)
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)

	var entries []protocol.UploadEntry
	req.NoError(json.NewDecoder(resp.Body).Decode(&entries))
	req.Len(entries, 2)
	req.Equal(second.File, entries[0].File)
	req.Equal(first.File, entries[1].File)
	req.Equal(first.ID, entries[1].ID)

	latest, err := http.Get(srv.URL + protocol.UploadsPath + "/latest")
	req.NoError(err)
	defer latest.Body.Close()
	var newest protocol.UploadEntry
	req.NoError(json.NewDecoder(latest.Body).Decode(&newest))
	req.Equal(second.File, newest.File)
}

func TestServer_Healthz(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\photo.png`, "photo.png"},
		{"", "upload"},
		{"/", "upload"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, sanitize(tt.in))
		})
	}
}

func TestInbox_SkipsTemporaryFiles(t *testing.T) {
	req := require.New(t)
	inbox, err := NewInbox(t.TempDir())
	req.NoError(err)
	req.NoError(os.WriteFile(filepath.Join(inbox.Dir(), ".incoming-123"), []byte("partial"), 0o644))
	req.NoError(os.Mkdir(filepath.Join(inbox.Dir(), "nested"), 0o755))

	entry, ok, err := inbox.Save("a.txt", strings.NewReader("hello"), nil)
	req.NoError(err)
	req.True(ok)

	entries, err := inbox.List()
	req.NoError(err)
	req.Len(entries, 1)
	req.Equal(entry.File, entries[0].File)
}
