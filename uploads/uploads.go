package uploads

import (
	"errors"
	"fmt"
	"math/rand"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// DefaultDir is the public asset directory served statically by the router.
const DefaultDir = "public/uploads"

// RoutePrefix is the URL path under which stored files are reachable.
const RoutePrefix = "/public/uploads"

// fileTypes maps the allowed upload MIME types to stored file extensions.
var fileTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

var ErrInvalidImageType = errors.New("invalid image type")

// Extension validates a declared MIME type against the allow-list and
// returns the extension to store the file under. Validation is a separate
// stage from the filesystem write so a rejection never touches disk.
func Extension(mimeType string) (string, error) {
	ext, ok := fileTypes[mimeType]
	if !ok {
		return "", ErrInvalidImageType
	}
	return ext, nil
}

// Store writes validated uploads into a fixed directory under generated
// names. Client-supplied filenames are never used.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Save validates the file's declared MIME type, writes the payload under a
// generated filename and returns that filename. field is the multipart field
// the file arrived on.
func (s *Store) Save(c *gin.Context, field string, file *multipart.FileHeader) (string, error) {
	ext, err := Extension(file.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%d-%d.%s", field, time.Now().UnixNano(), rand.Int63n(1_000_000_000), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(s.Dir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// BaseURL builds the absolute prefix stored filenames are appended to,
// from the request's scheme and host.
func BaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s/", scheme, c.Request.Host, RoutePrefix)
}
