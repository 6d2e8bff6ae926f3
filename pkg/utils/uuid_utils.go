package utils

import "github.com/google/uuid"

// GenerateUUIDv7 returns a time-ordered UUID. Primary keys use v7 so insert
// order is preserved in index scans; v4 is the fallback when the v7
// generator errors.
func GenerateUUIDv7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
