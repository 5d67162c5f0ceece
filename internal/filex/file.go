// Package filex reads local files that are attached to outgoing requests.
package filex

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/constructhub/internal/netx"
)

// MaxAttachmentSize caps image uploads.
const MaxAttachmentSize = 10 << 20

var ErrTooLarge = errors.New("file too large")

// ReadAttachment loads path as a form file for field. The content type is
// sniffed from the first bytes of the file.
func ReadAttachment(field, path string) (netx.File, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return netx.File{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return netx.File{}, fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > MaxAttachmentSize {
		return netx.File{}, fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return netx.File{}, fmt.Errorf("read %s: %w", path, err)
	}

	return netx.File{
		Field:       field,
		Name:        filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}
