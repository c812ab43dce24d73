package server

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/indieinfra/reel/server/handler/vlogs"
	"github.com/indieinfra/reel/server/middleware"
	"github.com/indieinfra/reel/server/state"
	"github.com/indieinfra/reel/storage/media"
)

// NewHandler wires the API routes and middleware around the provided state.
func NewHandler(st *state.State) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /api/vlogs", vlogs.HandleList(st))
	mux.Handle("POST /api/vlogs", vlogs.HandleCreate(st))
	mux.Handle("POST /api/vlogs/{id}/comments", vlogs.HandleAddComment(st))

	// Uploaded files are only served locally when media lives on the
	// filesystem; the s3 strategy records absolute URLs instead.
	if fs, ok := st.Media.(*media.FilesystemStore); ok {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", serveUploads(fs.BasePath())))
	}

	return middleware.RequestLog(middleware.Recover(mux))
}

// serveUploads serves single flat files read-only, with no directory
// listings and no nested paths.
func serveUploads(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path
		if name == "" || name != filepath.Base(name) {
			http.NotFound(w, r)
			return
		}

		http.ServeFile(w, r, filepath.Join(dir, name))
	})
}

func StartServer(st *state.State) {
	bindAddress := fmt.Sprintf("%v:%v", st.Cfg.Server.Address, st.Cfg.Server.Port)
	log.Printf("serving http requests on %q", bindAddress)
	log.Fatal(http.ListenAndServe(bindAddress, NewHandler(st)))
}
