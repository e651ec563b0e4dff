// middleware/contenttype.go
package middleware

import (
	"mime"
	"net/http"
	"strings"

	apperrors "github.com/dalemusser/amountwords/pantry/errors"
)

// RequireJSON rejects requests that carry a body without a JSON Content-Type
// ("application/json" or any "+json" type) with 415. Bodiless requests such
// as GET and DELETE pass through.
func RequireJSON() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength == 0 && r.Method != http.MethodPost && r.Method != http.MethodPut {
				next.ServeHTTP(w, r)
				return
			}

			mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil || !isJSON(mt) {
				apperrors.Write(w, apperrors.New("unsupported_media_type",
					"Content-Type must be application/json",
					http.StatusUnsupportedMediaType))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isJSON(mt string) bool {
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
