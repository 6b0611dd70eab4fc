package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/BuzzLyutic/tenant-task-api/pkg/respond"
)

// maxBodyBytes caps every JSON payload the API accepts.
const maxBodyBytes = 1 << 20

// decodeBody reads a JSON payload into dst. On failure it writes the 400
// response itself and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return false
	}
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	switch {
	case err == nil:
		return true
	case errors.Is(err, io.EOF):
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
	default:
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
	}
	return false
}
