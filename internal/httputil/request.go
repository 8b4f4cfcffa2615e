package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pageforge/internal/config"
)

// ParseJSON decodes the request body into dest. The body is capped at the
// upload limit so oversized requests fail with 413 instead of being read
// to completion. Unknown fields are tolerated; domain validators decide
// what is acceptable downstream.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
