// middleware/sizelimit.go
package middleware

import (
	"fmt"
	"net/http"

	apperrors "github.com/dalemusser/amountwords/pantry/errors"
)

// LimitBodySize caps request bodies at maxBytes. A request whose declared
// Content-Length already exceeds the cap is answered with 413 before the
// handler runs; others are wrapped in http.MaxBytesReader. maxBytes <= 0
// disables the limit.
func LimitBodySize(maxBytes int64) func(next http.Handler) http.Handler {
	if maxBytes <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				apperrors.Write(w, apperrors.New("request_too_large",
					fmt.Sprintf("request body exceeds %d bytes", maxBytes),
					http.StatusRequestEntityTooLarge))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
