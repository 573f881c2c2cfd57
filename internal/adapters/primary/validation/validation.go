package validation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/lorrc/support-analytics/internal/core/errors"
)

// MaxBodyBytes bounds request bodies read by the decoders.
const MaxBodyBytes = 1 << 20

// DecodeLenient decodes the request body into a T. A missing or malformed
// body yields the zero value together with the decode error, so callers
// can log it and carry on with empty fields.
func DecodeLenient[T any](r *http.Request) (T, error) {
	var req T

	if r.Body == nil {
		return req, nil
	}

	if err := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes)).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, nil
		}
		var zero T
		return zero, apperrors.NewBadRequestError(err, "Invalid request body")
	}

	return req, nil
}
