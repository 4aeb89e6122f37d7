package model

import "math"

// Question is one row of a room sheet, already cleaned by the workbook
// loader: text and answer key are trimmed and non-empty, LockMinutes >= 0.
type Question struct {
	Text        string  `json:"question"`
	AnswerKey   string  `json:"-"`
	LockMinutes float64 `json:"lockMinutes"`
	Hint        string  `json:"hint,omitempty"`
}

// LockSeconds converts the configured lock duration to whole seconds.
// Fractional minutes are allowed in the sheet (e.g. 0.5).
func (q Question) LockSeconds() int {
	return int(math.Round(q.LockMinutes * 60))
}

// Room is one sheet of the workbook: an ordered question sequence.
// Immutable once loaded; uploads replace whole rooms, never mutate them.
type Room struct {
	Name      string     `json:"name"`
	Questions []Question `json:"-"`
}

func (r Room) TotalQuestions() int {
	return len(r.Questions)
}

// RoomSummary is the public listing shape; it never carries answer keys.
type RoomSummary struct {
	Name           string `json:"name"`
	TotalQuestions int    `json:"totalQuestions"`
}
