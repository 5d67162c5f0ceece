// Package netx builds request payloads that need more than JSON encoding.
package netx

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sort"
)

// File is a single file part of a multipart form.
type File struct {
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

// Multipart is a multipart/form-data payload. It is encoded into memory once
// so that the same bytes can be replayed when a request is retried.
type Multipart struct {
	Fields map[string]string
	Files  []File
}

// NewMultipart returns an empty form.
func NewMultipart() *Multipart {
	return &Multipart{Fields: map[string]string{}}
}

// Set adds or replaces a text field.
func (m *Multipart) Set(name, value string) *Multipart {
	if m.Fields == nil {
		m.Fields = map[string]string{}
	}
	m.Fields[name] = value
	return m
}

// AddFile appends a file part.
func (m *Multipart) AddFile(f File) *Multipart {
	m.Files = append(m.Files, f)
	return m
}

// Encode renders the form and returns the body along with the Content-Type
// header value (which carries the boundary). Text fields are written in
// sorted order so the output is deterministic.
func (m *Multipart) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	names := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, k := range names {
		if err := w.WriteField(k, m.Fields[k]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}

	for _, f := range m.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Name))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", f.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
