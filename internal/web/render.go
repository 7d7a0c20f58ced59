package web

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ldelaney/coachmem/internal/errors"
)

// renderJSON writes v as a JSON response with the given status.
func renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// renderError maps a CoachError onto its HTTP status; anything else is a
// 500 with a generic message so internals never leak to clients.
func renderError(w http.ResponseWriter, err error) {
	if cErr, ok := err.(*errors.CoachError); ok {
		renderJSON(w, cErr.Status, map[string]any{
			"error": map[string]any{
				"code":    cErr.Code,
				"message": cErr.Message,
			},
		})
		return
	}
	renderJSON(w, http.StatusInternalServerError, map[string]any{
		"error": map[string]any{
			"code":    errors.ErrInternal,
			"message": "internal error",
		},
	})
}

// decodeBody decodes a JSON request body into v. An empty body is not an
// error; v keeps its zero values.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return nil
		}
		return errors.NewInvalidRequest("invalid JSON body")
	}
	return nil
}
