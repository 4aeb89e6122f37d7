package repository

import (
	"strings"

	"escape_room_backend/internal/model"
)

// keySeparator joins team id and room name into the composite state key.
// Literal and case-sensitive on both sides.
const keySeparator = "::"

// ProgressRepository is the durable mapping from (team, room) to a
// ProgressRecord. Get returns the zero record for unknown pairs; Advance
// and Lock create the record implicitly and persist immediately.
type ProgressRepository interface {
	Get(teamID, room string) (model.ProgressRecord, error)

	// Advance moves the team to the next question and clears any lock.
	Advance(teamID, room string) (model.ProgressRecord, error)

	// Lock sets an absolute lock expiry (epoch seconds) and remembers the
	// full lock duration. A second Lock overwrites the first; locks never
	// stack. The question index is untouched.
	Lock(teamID, room string, until, totalSeconds float64) (model.ProgressRecord, error)

	// Reset deletes the single (team, room) entry.
	Reset(teamID, room string) error

	// ResetTeam deletes every room entry of the team.
	ResetTeam(teamID string) error
}

func progressKey(teamID, room string) string {
	return teamID + keySeparator + room
}

func keyHasTeam(key, teamID string) bool {
	return strings.HasPrefix(key, teamID+keySeparator)
}
