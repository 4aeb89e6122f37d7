package model

// ProgressRecord is the state of one team inside one room. The zero value
// is the state of a team that has never played the room: first question,
// no active lock.
type ProgressRecord struct {
	// QuestionIndex is the index of the next unanswered question. Equal to
	// the room's question count once the room is finished.
	QuestionIndex int `json:"questionIndex"`

	// LockUntil is the lock expiry as seconds since the epoch. Zero or a
	// value in the past means the team is not locked; the locked flag is
	// always derived from this, never stored.
	LockUntil float64 `json:"lockUntil"`

	// LockTotalSeconds is the full duration of the current lock, kept so
	// the countdown fraction survives reloads even if the spreadsheet's
	// per-question duration changes in the meantime. Absent in records
	// written by older versions.
	LockTotalSeconds float64 `json:"lockTotalSeconds,omitempty"`
}

// LockedAt reports whether the record is locked at the given epoch time.
func (p ProgressRecord) LockedAt(now float64) bool {
	return now < p.LockUntil
}

// TeamProgress is the relational form of a ProgressRecord, used only by
// the gorm-backed store.
type TeamProgress struct {
	ID               uint    `gorm:"primaryKey;autoIncrement" json:"-"`
	TeamID           string  `gorm:"size:191;uniqueIndex:idx_team_room" json:"teamId"`
	Room             string  `gorm:"size:191;uniqueIndex:idx_team_room" json:"room"`
	QuestionIndex    int     `json:"questionIndex"`
	LockUntil        float64 `json:"lockUntil"`
	LockTotalSeconds float64 `json:"lockTotalSeconds"`
}

func (p TeamProgress) Record() ProgressRecord {
	return ProgressRecord{
		QuestionIndex:    p.QuestionIndex,
		LockUntil:        p.LockUntil,
		LockTotalSeconds: p.LockTotalSeconds,
	}
}
