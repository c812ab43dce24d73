package util

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/indieinfra/reel/server/resp"
)

// RequireMultipart ensures the request declares a multipart/form-data
// content type, writing a 415 otherwise.
func RequireMultipart(w http.ResponseWriter, r *http.Request) bool {
	mediaType, ok := ExtractMediaType(w, r)
	if !ok {
		return false
	}

	if mediaType != "multipart/form-data" {
		resp.WriteUnsupportedMediaType(w, "Content-Type must be multipart/form-data")
		return false
	}

	return true
}

// ExtractMediaType parses the request's Content-Type header, writing a 415
// when it is absent or malformed.
func ExtractMediaType(w http.ResponseWriter, r *http.Request) (string, bool) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		resp.WriteUnsupportedMediaType(w, "Content-Type must be specified")
		return "", false
	}

	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		resp.WriteUnsupportedMediaType(w, fmt.Errorf("Invalid Content-Type: %w", err).Error())
		return "", false
	}

	return mediaType, true
}
