package platform

import "github.com/google/uuid"

// NewID returns a random UUID string, used as an invocation ID when the
// trigger does not supply one.
func NewID() string {
	return uuid.New().String()
}
