package devapi

import (
	"encoding/json"
	"net/http"
)

// apiError is the {"detail": ..., "code": ...} body used for non-field errors.
type apiError struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// fieldErrors is the per-field validation body: {"email": ["..."]}.
type fieldErrors map[string][]string

func (f fieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (f fieldErrors) required(field, value string) {
	if value == "" {
		f.add(field, "This field is required.")
	}
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, apiError{Detail: detail})
}

// decodeStrict rejects unknown fields.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}
