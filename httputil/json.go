// httputil/json.go
package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/dalemusser/amountwords/pantry/errors"
	"go.uber.org/zap"
)

// WriteJSON writes v as JSON with the given status. Status codes outside
// 100-599 become 500. Encoding failures after the header is sent can only be
// logged.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	WriteJSONWithLogger(w, status, v, nil)
}

// WriteJSONWithLogger is WriteJSON with a logger for encoding failures.
func WriteJSONWithLogger(w http.ResponseWriter, status int, v any, logger *zap.Logger) {
	if status < 100 || status > 599 {
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil && logger != nil {
		logger.Error("json encoding failed after headers sent",
			zap.String("type", fmt.Sprintf("%T", v)),
			zap.Error(err))
	}
}

// BindJSON decodes the request body into v. Unknown fields, trailing values
// and empty bodies are rejected. The returned error is a *apperrors.Error
// (400, or 413 when the body limit was hit) with a client-safe message.
func BindJSON(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return apperrors.BadRequest("request body is empty")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return parseJSONError(err)
	}
	if dec.More() {
		return apperrors.BadRequest("request body contains multiple JSON values")
	}
	return nil
}

func parseJSONError(err error) error {
	if errors.Is(err, io.EOF) {
		return apperrors.BadRequest("request body is empty")
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperrors.New("request_too_large", "request body too large", http.StatusRequestEntityTooLarge)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return apperrors.BadRequest(fmt.Sprintf("malformed JSON at position %d", syntaxErr.Offset)).Wrap(err)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperrors.BadRequest(fmt.Sprintf("invalid value for field %q: expected %s", typeErr.Field, typeErr.Type)).
			WithDetail("field", typeErr.Field)
	}

	// "json: unknown field \"name\""
	if strings.HasPrefix(err.Error(), "json: unknown field") {
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), "\"")
		return apperrors.BadRequest(fmt.Sprintf("unknown field %q", field)).WithDetail("field", field)
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		return apperrors.BadRequest("malformed JSON: unexpected end of input")
	}
	return apperrors.BadRequest("invalid JSON in request body").Wrap(err)
}
