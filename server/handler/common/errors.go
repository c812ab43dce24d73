package common

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/indieinfra/reel/server/resp"
	"github.com/indieinfra/reel/server/util"
	"github.com/indieinfra/reel/storage/media"
	"github.com/indieinfra/reel/storage/vlog"
)

// LogAndWriteError logs an error with request context and maps known
// conditions to client responses. Everything unrecognized becomes a
// generic 500 without leaking the underlying error text.
func LogAndWriteError(w http.ResponseWriter, r *http.Request, op string, err error) {
	rl := util.FromContext(r.Context())
	if rl == nil {
		rl = util.WithRequest(log.Default(), r)
	}
	rl.Errorf("%s failed: %v", op, err)

	var maxErr *http.MaxBytesError

	switch {
	case errors.Is(err, vlog.ErrNotFound):
		resp.WriteNotFound(w, "Vlog not found")
	case errors.Is(err, media.ErrUnsupportedType):
		resp.WriteUnsupportedMediaType(w, "Only image and video files are allowed")
	case errors.Is(err, media.ErrTooLarge), errors.As(err, &maxErr):
		resp.WritePayloadTooLarge(w, "File exceeds the upload size limit")
	default:
		resp.WriteInternalServerError(w, fmt.Sprintf("Failed to %s", op))
	}
}
