package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// WriteJSON writes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// WriteError writes the uniform error envelope.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Error{Error: message})
}

// BindLimit parses the optional ?limit= query parameter, falling back to def
// and clamping to at most 100 rows.
func BindLimit(r *http.Request, def int32) (int32, error) {
	var limit *int32
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		return 0, err
	}
	if limit == nil || *limit <= 0 {
		return def, nil
	}
	if *limit > 100 {
		return 100, nil
	}
	return *limit, nil
}
