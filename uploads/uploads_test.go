package uploads_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eshop/uploads"
)

func TestExtension(t *testing.T) {
	for mimeType, want := range map[string]string{
		"image/png":  "png",
		"image/jpeg": "jpeg",
		"image/jpg":  "jpg",
	} {
		ext, err := uploads.Extension(mimeType)
		assert.NoError(t, err)
		assert.Equal(t, want, ext)
	}

	for _, mimeType := range []string{"image/gif", "application/pdf", "text/html", ""} {
		_, err := uploads.Extension(mimeType)
		assert.ErrorIs(t, err, uploads.ErrInvalidImageType)
	}
}

func multipartFile(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestStoreSave(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	store := uploads.NewStore(dir)

	var savedName string
	var saveErr error
	r := gin.New()
	r.POST("/upload", func(c *gin.Context) {
		file, err := c.FormFile("image")
		require.NoError(t, err)
		savedName, saveErr = store.Save(c, "image", file)
		c.Status(http.StatusOK)
	})

	body, contentType := multipartFile(t, "image", "cat.png", "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.NoError(t, saveErr)
	assert.Regexp(t, regexp.MustCompile(`^image-\d+-\d+\.png$`), savedName)
	assert.NotContains(t, savedName, "cat") // client filename is never reused

	data, err := os.ReadFile(filepath.Join(dir, savedName))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestStoreSaveRejectsBadTypeBeforeWriting(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	store := uploads.NewStore(dir)

	var saveErr error
	r := gin.New()
	r.POST("/upload", func(c *gin.Context) {
		file, err := c.FormFile("image")
		require.NoError(t, err)
		_, saveErr = store.Save(c, "image", file)
		c.Status(http.StatusOK)
	})

	body, contentType := multipartFile(t, "image", "doc.pdf", "application/pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.ErrorIs(t, saveErr, uploads.ErrInvalidImageType)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected upload must not touch the asset directory")
}

func TestBaseURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Host = "shop.example.com:8080"

	assert.Equal(t, "http://shop.example.com:8080/public/uploads/", uploads.BaseURL(c))
}
