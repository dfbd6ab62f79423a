package storage

import (
	"errors"
	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidID       = errors.New("invalid booking id")
)

// CanonicalID parses a uuid booking id in any form uuid.Parse accepts and returns
// the lowercase hyphenated form ids are stored in.
func CanonicalID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", ErrInvalidID
	}
	return u.String(), nil
}
