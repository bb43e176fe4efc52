// Package schemas defines the request payloads for every resource, in create
// and partial-update variants. Create schemas make structurally required
// fields mandatory; update schemas are all-optional, with presence of a key in
// the request body signalling intent to change. Validation runs through the
// binding tags before any store access.
package schemas

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrNullField is wrapped by Changes builders when a non-nullable field is
// explicitly set to null.
var ErrNullField = errors.New("field cannot be null")

// Presence reports which top-level keys the request body actually carried,
// which is what distinguishes an omitted field from an explicit null.
type Presence map[string]json.RawMessage

// ParsePresence decodes the raw body into a key set. A non-object body is a
// malformed request.
func ParsePresence(body []byte) (Presence, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Has reports whether the request body contained the key at all.
func (p Presence) Has(key string) bool {
	_, ok := p[key]
	return ok
}

func nullErr(field string) error {
	return fmt.Errorf("%s: %w", field, ErrNullField)
}

// ValidationDetails flattens validator errors into per-field messages for the
// error envelope. Returns nil for non-validation errors.
func ValidationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			details = append(details, fmt.Sprintf("%s: violates %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			details = append(details, fmt.Sprintf("%s: violates %s", fe.Field(), fe.Tag()))
		}
	}
	return details
}
