package repository

import (
	"sync"

	"escape_room_backend/internal/model"
)

// MemoryProgressRepository is the map-backed store used by tests and by
// deployments that explicitly opt out of persistence.
type MemoryProgressRepository struct {
	mu    sync.Mutex
	state map[string]model.ProgressRecord
}

func NewMemoryProgressRepository() *MemoryProgressRepository {
	return &MemoryProgressRepository{state: make(map[string]model.ProgressRecord)}
}

func (r *MemoryProgressRepository) Get(teamID, room string) (model.ProgressRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state[progressKey(teamID, room)], nil
}

func (r *MemoryProgressRepository) Advance(teamID, room string) (model.ProgressRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := progressKey(teamID, room)
	rec := r.state[key]
	rec.QuestionIndex++
	rec.LockUntil = 0
	rec.LockTotalSeconds = 0
	r.state[key] = rec
	return rec, nil
}

func (r *MemoryProgressRepository) Lock(teamID, room string, until, totalSeconds float64) (model.ProgressRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := progressKey(teamID, room)
	rec := r.state[key]
	rec.LockUntil = until
	rec.LockTotalSeconds = totalSeconds
	r.state[key] = rec
	return rec, nil
}

func (r *MemoryProgressRepository) Reset(teamID, room string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.state, progressKey(teamID, room))
	return nil
}

func (r *MemoryProgressRepository) ResetTeam(teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.state {
		if keyHasTeam(key, teamID) {
			delete(r.state, key)
		}
	}
	return nil
}
