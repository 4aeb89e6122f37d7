package service

import (
	"math"
	"time"

	"escape_room_backend/internal/answer"
	"escape_room_backend/internal/model"
	"escape_room_backend/internal/repository"
	"escape_room_backend/internal/util"
	"escape_room_backend/pkg/logger"

	"go.uber.org/zap"
)

// DefaultLockSeconds applies when neither the stored lock total nor the
// row's configured duration is usable.
const DefaultLockSeconds = 180

// GameService is the progression and lockout state machine. It owns the
// two transitions (advance on a correct answer, lock on a wrong one) and
// derives the countdown presentation; it never stores a "locked" flag,
// only the expiry.
type GameService struct {
	progress           repository.ProgressRepository
	workbook           *WorkbookService
	defaultLockSeconds int

	// now is swapped out by tests.
	now func() time.Time
}

func NewGameService(progress repository.ProgressRepository, workbook *WorkbookService, defaultLockSeconds int) *GameService {
	if defaultLockSeconds <= 0 {
		defaultLockSeconds = DefaultLockSeconds
	}
	return &GameService{
		progress:           progress,
		workbook:           workbook,
		defaultLockSeconds: defaultLockSeconds,
		now:                time.Now,
	}
}

// RoomState is what a team sees: the current question (never its answer
// key) and the lockout countdown, all derived from the stored record at
// request time.
type RoomState struct {
	Room           string `json:"room"`
	TeamID         string `json:"teamId"`
	QuestionIndex  int    `json:"questionIndex"`
	TotalQuestions int    `json:"totalQuestions"`
	Completed      bool   `json:"completed"`

	Question string `json:"question,omitempty"`
	Hint     string `json:"hint,omitempty"`

	Locked           bool    `json:"locked"`
	RemainingSeconds int     `json:"remainingSeconds"`
	LockTotalSeconds int     `json:"lockTotalSeconds,omitempty"`
	LockFraction     float64 `json:"lockFraction"`
}

type SubmitResult struct {
	Correct bool      `json:"correct"`
	State   RoomState `json:"state"`
}

// State reads the current progress of a team in a room. Unknown pairs
// come back as a fresh record on the first question.
func (s *GameService) State(teamID, roomName string) (RoomState, error) {
	room, ok := s.workbook.Room(roomName)
	if !ok {
		return RoomState{}, util.ErrRoomNotFound
	}

	rec, err := s.progress.Get(teamID, roomName)
	if err != nil {
		return RoomState{}, err
	}
	return s.buildState(room, teamID, rec), nil
}

// Submit evaluates an answer for the team's current question. Correct
// answers advance exactly one question and clear the lock; wrong answers
// start (or restart) a lockout for the row's configured duration. Locked
// teams and completed rooms cannot submit.
func (s *GameService) Submit(teamID, roomName, submitted string) (SubmitResult, error) {
	room, ok := s.workbook.Room(roomName)
	if !ok {
		return SubmitResult{}, util.ErrRoomNotFound
	}

	rec, err := s.progress.Get(teamID, roomName)
	if err != nil {
		return SubmitResult{}, err
	}

	now := s.epochNow()
	if rec.QuestionIndex >= room.TotalQuestions() {
		return SubmitResult{}, util.ErrRoomCompleted
	}
	if rec.LockedAt(now) {
		return SubmitResult{}, util.ErrTeamLocked
	}

	question := room.Questions[rec.QuestionIndex]

	if answer.Matches(submitted, question.AnswerKey) {
		rec, err = s.progress.Advance(teamID, roomName)
		if err != nil {
			return SubmitResult{}, err
		}
		logger.Log.Info("answer accepted",
			zap.String("team", teamID),
			zap.String("room", roomName),
			zap.Int("questionIndex", rec.QuestionIndex))
		return SubmitResult{Correct: true, State: s.buildState(room, teamID, rec)}, nil
	}

	lockSeconds := question.LockSeconds()
	if lockSeconds <= 0 {
		lockSeconds = s.defaultLockSeconds
	}
	rec, err = s.progress.Lock(teamID, roomName, now+float64(lockSeconds), float64(lockSeconds))
	if err != nil {
		return SubmitResult{}, err
	}
	logger.Log.Info("answer rejected, team locked",
		zap.String("team", teamID),
		zap.String("room", roomName),
		zap.Int("lockSeconds", lockSeconds))
	return SubmitResult{Correct: false, State: s.buildState(room, teamID, rec)}, nil
}

func (s *GameService) buildState(room model.Room, teamID string, rec model.ProgressRecord) RoomState {
	now := s.epochNow()
	total := room.TotalQuestions()

	state := RoomState{
		Room:           room.Name,
		TeamID:         teamID,
		QuestionIndex:  rec.QuestionIndex,
		TotalQuestions: total,
		Completed:      rec.QuestionIndex >= total,
		Locked:         rec.LockedAt(now),
	}

	var question model.Question
	if !state.Completed {
		question = room.Questions[rec.QuestionIndex]
		state.Question = question.Text
		state.Hint = question.Hint
	}

	if state.Locked {
		remaining := int(math.Floor(rec.LockUntil - now))
		if remaining < 0 {
			remaining = 0
		}

		lockTotal := int(rec.LockTotalSeconds)
		if lockTotal <= 0 {
			// Legacy record without the stored total: fall back to the
			// row's configured duration, then to the fixed default.
			lockTotal = question.LockSeconds()
		}
		if lockTotal <= 0 {
			lockTotal = s.defaultLockSeconds
		}
		if lockTotal < 1 {
			lockTotal = 1
		}

		fraction := 1 - float64(remaining)/float64(lockTotal)
		state.RemainingSeconds = remaining
		state.LockTotalSeconds = lockTotal
		state.LockFraction = math.Min(1, math.Max(0, fraction))
	}

	return state
}

// epochNow is the wall clock as fractional seconds since the epoch, the
// unit lockUntil is stored in.
func (s *GameService) epochNow() float64 {
	return float64(s.now().UnixMilli()) / 1000
}
