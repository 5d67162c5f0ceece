package devapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20

type mediaFile struct {
	contentType string
	data        []byte
}

// mediaStore holds uploaded images. Files are addressed by the URL path
// returned from put.
type mediaStore struct {
	mu    sync.RWMutex
	files map[string]mediaFile
}

func newMediaStore() *mediaStore {
	return &mediaStore{files: map[string]mediaFile{}}
}

func (m *mediaStore) put(dir, name, contentType string, data []byte) string {
	key := dir + "/" + uuid.NewString() + strings.ToLower(path.Ext(name))

	m.mu.Lock()
	m.files[key] = mediaFile{contentType: contentType, data: data}
	m.mu.Unlock()

	return "/media/" + key
}

func (m *mediaStore) get(key string) (mediaFile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[key]
	return f, ok
}

// saveUpload stores the file sent in field, if any, and returns its URL.
// The form must already be parsed.
func (h *Handlers) saveUpload(r *http.Request, field, dir string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", field, err)
	}

	ct := header.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return h.media.put(dir, header.Filename, ct, data), nil
}

func (h *Handlers) Media(w http.ResponseWriter, r *http.Request) {
	f, ok := h.media.get(chi.URLParam(r, "*"))
	if !ok {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	w.Header().Set("Content-Type", f.contentType)
	_, _ = w.Write(f.data)
}
