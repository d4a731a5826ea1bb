package ledger

import (
	"github.com/google/uuid"
)

// IDGenerator produces candidate transaction ids.
type IDGenerator func() string

// NewUUIDv7 returns a time-ordered UUID string. uuid.NewV7 only fails when
// the system random source does, in which case a v4 is used.
func NewUUIDv7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// maxIDAttempts bounds regeneration when a generator keeps colliding.
const maxIDAttempts = 16

// uniqueID draws ids from gen until one is not in taken. After maxIDAttempts
// collisions a random v4 UUID is suffixed to the last candidate.
func uniqueID(gen IDGenerator, taken func(string) bool) string {
	var id string
	for range maxIDAttempts {
		id = gen()
		if id != "" && !taken(id) {
			return id
		}
	}
	for {
		candidate := id + "-" + uuid.NewString()
		if !taken(candidate) {
			return candidate
		}
	}
}
