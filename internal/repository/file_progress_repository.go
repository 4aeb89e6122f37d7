package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"escape_room_backend/internal/model"
	"escape_room_backend/pkg/logger"

	"go.uber.org/zap"
)

// FileProgressRepository keeps the whole progress map in a single
// human-readable JSON file. Every mutation reloads the file, applies the
// change and rewrites the file atomically (temp file + rename). A missing
// or unreadable file counts as an empty store, never as an error: losing
// state is preferable to blocking the game.
//
// The mutex only serializes this process's read-modify-write cycles.
// Two requests racing on the same team and room still resolve to
// last-writer-wins, which is the accepted model here.
type FileProgressRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileProgressRepository(path string) *FileProgressRepository {
	return &FileProgressRepository{path: path}
}

func (r *FileProgressRepository) Get(teamID, room string) (model.ProgressRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.load()
	return state[progressKey(teamID, room)], nil
}

func (r *FileProgressRepository) Advance(teamID, room string) (model.ProgressRecord, error) {
	return r.mutate(teamID, room, func(rec model.ProgressRecord) model.ProgressRecord {
		rec.QuestionIndex++
		rec.LockUntil = 0
		rec.LockTotalSeconds = 0
		return rec
	})
}

func (r *FileProgressRepository) Lock(teamID, room string, until, totalSeconds float64) (model.ProgressRecord, error) {
	return r.mutate(teamID, room, func(rec model.ProgressRecord) model.ProgressRecord {
		rec.LockUntil = until
		rec.LockTotalSeconds = totalSeconds
		return rec
	})
}

func (r *FileProgressRepository) Reset(teamID, room string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.load()
	delete(state, progressKey(teamID, room))
	return r.save(state)
}

func (r *FileProgressRepository) ResetTeam(teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.load()
	for key := range state {
		if keyHasTeam(key, teamID) {
			delete(state, key)
		}
	}
	return r.save(state)
}

func (r *FileProgressRepository) mutate(teamID, room string, apply func(model.ProgressRecord) model.ProgressRecord) (model.ProgressRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.load()
	key := progressKey(teamID, room)
	rec := apply(state[key])
	state[key] = rec
	if err := r.save(state); err != nil {
		return rec, err
	}
	return rec, nil
}

func (r *FileProgressRepository) load() map[string]model.ProgressRecord {
	state := make(map[string]model.ProgressRecord)

	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Log.Warn("state file unreadable, starting empty", zap.String("path", r.path), zap.Error(err))
		}
		return state
	}

	if err := json.Unmarshal(data, &state); err != nil {
		logger.Log.Warn("state file malformed, starting empty", zap.String("path", r.path), zap.Error(err))
		return make(map[string]model.ProgressRecord)
	}
	return state
}

func (r *FileProgressRepository) save(state map[string]model.ProgressRecord) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".escape_state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close state: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
