package utils

import "github.com/google/uuid"

// NewID returns a random RFC 4122 identifier for records and blob keys
func NewID() string {
	return uuid.NewString()
}
