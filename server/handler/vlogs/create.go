package vlogs

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/indieinfra/reel/server/handler/common"
	"github.com/indieinfra/reel/server/resp"
	"github.com/indieinfra/reel/server/state"
	"github.com/indieinfra/reel/server/util"
	"github.com/indieinfra/reel/storage/media"
	"github.com/indieinfra/reel/storage/vlog"
)

// Room for the non-file fields next to a maximally sized upload.
const fieldOverhead = 1 << 20

// HandleCreate serves POST /api/vlogs: a multipart upload carrying the
// media file, the shared upload password, a title, and a media type.
// Checks run in order and short-circuit; in particular, the declared media
// type is matched against the file's MIME category before anything is
// written, so a mismatch leaves no stray file behind.
func HandleCreate(st *state.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !util.RequireMultipart(w, r) {
			return
		}

		pm, err := util.ParseMultipart(w, r, st.Cfg.Upload.MaxFileSize+fieldOverhead)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				common.LogAndWriteError(w, r, "upload vlog", err)
				return
			}
			resp.WriteBadRequest(w, "Malformed multipart body")
			return
		}
		defer pm.CloseFiles()

		password := pm.Values["password"]
		if subtle.ConstantTimeCompare([]byte(password), []byte(st.Cfg.Upload.Password)) != 1 {
			resp.WriteForbidden(w, "Unauthorized access")
			return
		}

		mf := pm.FileByKey("media")
		if mf == nil {
			resp.WriteBadRequest(w, "No file uploaded")
			return
		}

		req := createRequest{
			Title:     strings.TrimSpace(pm.Values["title"]),
			MediaType: strings.TrimSpace(pm.Values["mediaType"]),
		}
		if err := validate.Struct(req); err != nil {
			resp.WriteBadRequest(w, "A title and a media type of image or video are required")
			return
		}

		category, ok := media.CategoryOf(mf.Header.Header.Get("Content-Type"))
		if !ok {
			resp.WriteUnsupportedMediaType(w, "Only image and video files are allowed")
			return
		}
		if category != req.MediaType {
			resp.WriteBadRequest(w, "File type does not match selected media type")
			return
		}

		mediaPath, err := st.Media.Save(r.Context(), mf.File, mf.Header)
		if err != nil {
			common.LogAndWriteError(w, r, "upload vlog", err)
			return
		}

		created, err := st.Vlogs.Create(r.Context(), req.Title, vlog.MediaType(req.MediaType), mediaPath)
		if err != nil {
			// The file is already on disk; best-effort cleanup keeps the
			// store and the uploads directory consistent.
			if delErr := st.Media.Delete(r.Context(), mediaPath); delErr != nil {
				if rl := util.FromContext(r.Context()); rl != nil {
					rl.Errorf("orphaned media file %s: %v", mediaPath, delErr)
				}
			}
			common.LogAndWriteError(w, r, "upload vlog", err)
			return
		}

		resp.WriteCreated(w, vlogResponse{
			Message: "Vlog uploaded successfully",
			Vlog:    created,
		})
	}
}
