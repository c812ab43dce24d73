package vlogs

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/indieinfra/reel/server/handler/common"
	"github.com/indieinfra/reel/server/resp"
	"github.com/indieinfra/reel/server/state"
)

const maxCommentBody = 64 << 10

// HandleAddComment serves POST /api/vlogs/{id}/comments: appends a comment
// to the addressed vlog and returns the updated document.
func HandleAddComment(st *state.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req commentRequest

		r.Body = http.MaxBytesReader(w, r.Body, maxCommentBody)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			resp.WriteBadRequest(w, "Request body must be JSON with name and text")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		req.Text = strings.TrimSpace(req.Text)
		if err := validate.Struct(req); err != nil {
			resp.WriteBadRequest(w, "Name and text are required")
			return
		}

		updated, err := st.Vlogs.AddComment(r.Context(), r.PathValue("id"), req.Name, req.Text)
		if err != nil {
			common.LogAndWriteError(w, r, "add comment", err)
			return
		}

		resp.WriteCreated(w, vlogResponse{
			Message: "Comment added successfully",
			Vlog:    updated,
		})
	}
}
