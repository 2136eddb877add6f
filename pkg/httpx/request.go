package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes bounds JSON request bodies. Identity photos travel inline as
// data URLs, hence the generous limit.
const MaxBodyBytes = 8 << 20

var (
	ErrEmptyBody    = errors.New("httpx: empty request body")
	ErrBodyTooLarge = errors.New("httpx: request body too large")
	ErrInvalidBody  = errors.New("httpx: invalid request body")
)

// DecodeJSON reads a single JSON value from r.Body into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		case errors.As(err, &tooLarge):
			return ErrBodyTooLarge
		default:
			return fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", ErrInvalidBody)
	}
	return nil
}
