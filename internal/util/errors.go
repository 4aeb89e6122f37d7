package util

import "errors"

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomCompleted = errors.New("room already completed")
	ErrTeamLocked    = errors.New("team is locked out")
	ErrEmptyTeamID   = errors.New("team id must not be empty")
	ErrNoValidSheets = errors.New("workbook has no sheet with question and answer columns")
)
