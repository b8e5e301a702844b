package middleware

import (
	"fmt"
	"net/http"
)

// ErrorWriter renders an error as an HTTP response
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Recovery converts a panic in a handler into an error response
func Recovery(onError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					LoggerFromContext(r.Context()).WithField("panic", rec).Error("Recovered from panic")
					onError(w, r, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
