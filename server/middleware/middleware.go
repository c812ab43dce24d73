package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/indieinfra/reel/server/resp"
	"github.com/indieinfra/reel/server/util"
)

// RequestLog injects a request-scoped logger into the context and logs the
// request line with its duration once the handler returns.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rl := util.WithRequest(log.Default(), r)
		r = r.WithContext(util.ContextWithLogger(r.Context(), rl))

		start := time.Now()
		next.ServeHTTP(w, r)
		rl.Infof("completed in %v", time.Since(start))
	})
}

// Recover is the catch-all guard: any panic escaping a handler is logged
// server-side and converted into a generic JSON 500 so internals never
// reach the client.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if rl := util.FromContext(r.Context()); rl != nil {
					rl.Errorf("panic: %v", err)
				} else {
					log.Printf("panic handling %s %s: %v", r.Method, r.URL.Path, err)
				}
				resp.WriteInternalServerError(w, "Something went wrong!")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
