package request

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Decode reads a JSON body from r into v and validates it.
func Decode(r *http.Request, v any) error {
	return DecodeReader(r.Body, v)
}

// DecodeReader reads a JSON document from rd into v and validates it.
// Unknown fields are ignored.
func DecodeReader(rd io.Reader, v any) error {
	if err := json.NewDecoder(rd).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return Validate(v)
}

// Validate checks the validate struct tags of v.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}
