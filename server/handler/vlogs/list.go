package vlogs

import (
	"net/http"

	"github.com/indieinfra/reel/server/handler/common"
	"github.com/indieinfra/reel/server/resp"
	"github.com/indieinfra/reel/server/state"
)

// HandleList serves GET /api/vlogs: every vlog, newest first, as a bare
// JSON array.
func HandleList(st *state.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vlogs, err := st.Vlogs.List(r.Context())
		if err != nil {
			common.LogAndWriteError(w, r, "fetch vlogs", err)
			return
		}

		resp.WriteOK(w, vlogs)
	}
}
