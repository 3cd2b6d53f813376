package cover

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"bannedbooks/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (f *fakeUploader) Put(_ context.Context, key, contentType string, body io.ReadSeeker, _ int64) error {
	if f.err != nil {
		return f.err
	}
	f.key = key
	f.contentType = contentType
	f.body, _ = io.ReadAll(body)
	return nil
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "9780306406157.jpg", ObjectKey("9780306406157", "cover.final.jpg"))
	assert.Equal(t, "cover.png", ObjectKey("  ", "cover.png"))
	assert.Equal(t, "0306406152", ObjectKey("0306406152", "noext"))
}

func TestService_Upload(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		svc := NewService(&fakeUploader{})

		_, err := svc.Upload(context.Background(), Upload{})
		assert.Equal(t, http.StatusBadRequest, apperr.Code(err))
	})

	t.Run("store failure", func(t *testing.T) {
		svc := NewService(&fakeUploader{err: errors.New("bucket missing")})

		_, err := svc.Upload(context.Background(), Upload{Filename: "a.png", Body: bytes.NewReader([]byte("x"))})
		e, ok := apperr.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusInternalServerError, e.Code)
		assert.Equal(t, "Upload failed", e.Message)
	})
}

func multipartRequest(t *testing.T, isbn string, withFile bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if isbn != "" {
		require.NoError(t, mw.WriteField("isbn", isbn))
	}
	if withFile {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="front.png"`)
		h.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/book-image/upload", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestHTTPHandler_Upload(t *testing.T) {
	t.Run("stored under the isbn", func(t *testing.T) {
		up := &fakeUploader{}
		handler := NewHTTPHandler(NewService(up), 1<<20)

		w := httptest.NewRecorder()
		handler.Upload(w, multipartRequest(t, "9780306406157", true))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Upload successful","fileName":"9780306406157.png"}`, w.Body.String())
		assert.Equal(t, "image/png", up.contentType)
		assert.Equal(t, []byte("png-bytes"), up.body)
	})

	t.Run("missing image part", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(&fakeUploader{}), 1<<20)

		w := httptest.NewRecorder()
		handler.Upload(w, multipartRequest(t, "9780306406157", false))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "No file uploaded")
	})

	t.Run("not multipart", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(&fakeUploader{}), 1<<20)

		w := httptest.NewRecorder()
		handler.Upload(w, httptest.NewRequest(http.MethodPost, "/book-image/upload", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestS3Store_Put(t *testing.T) {
	var gotMethod, gotPath, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotType = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := NewS3Store(context.Background(), S3Config{
		Endpoint: srv.URL, Region: "us-east-1", Bucket: "book-images",
		AccessKey: "minio", SecretKey: "minio-secret",
	})
	require.NoError(t, err)

	body := []byte("img")
	err = store.Put(context.Background(), "0306406152.jpg", "image/jpeg", bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/book-images/0306406152.jpg", gotPath)
	assert.Equal(t, "image/jpeg", gotType)
}
