package repository

import (
	"errors"

	"escape_room_backend/internal/model"

	"gorm.io/gorm"
)

// GormProgressRepository stores progress rows in SQL instead of the state
// file. Selected with state.store = "mysql"; the game logic is identical,
// only the backing store changes.
type GormProgressRepository struct {
	DB *gorm.DB
}

func NewGormProgressRepository(db *gorm.DB) *GormProgressRepository {
	return &GormProgressRepository{DB: db}
}

func (r *GormProgressRepository) Get(teamID, room string) (model.ProgressRecord, error) {
	row, err := r.find(teamID, room)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ProgressRecord{}, nil
		}
		return model.ProgressRecord{}, err
	}
	return row.Record(), nil
}

func (r *GormProgressRepository) Advance(teamID, room string) (model.ProgressRecord, error) {
	return r.mutate(teamID, room, func(row *model.TeamProgress) {
		row.QuestionIndex++
		row.LockUntil = 0
		row.LockTotalSeconds = 0
	})
}

func (r *GormProgressRepository) Lock(teamID, room string, until, totalSeconds float64) (model.ProgressRecord, error) {
	return r.mutate(teamID, room, func(row *model.TeamProgress) {
		row.LockUntil = until
		row.LockTotalSeconds = totalSeconds
	})
}

func (r *GormProgressRepository) Reset(teamID, room string) error {
	return r.DB.Where("team_id = ? AND room = ?", teamID, room).
		Delete(&model.TeamProgress{}).Error
}

func (r *GormProgressRepository) ResetTeam(teamID string) error {
	return r.DB.Where("team_id = ?", teamID).
		Delete(&model.TeamProgress{}).Error
}

func (r *GormProgressRepository) find(teamID, room string) (*model.TeamProgress, error) {
	var row model.TeamProgress
	err := r.DB.Where("team_id = ? AND room = ?", teamID, room).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormProgressRepository) mutate(teamID, room string, apply func(*model.TeamProgress)) (model.ProgressRecord, error) {
	var rec model.ProgressRecord

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var row model.TeamProgress
		err := tx.Where("team_id = ? AND room = ?", teamID, room).First(&row).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			row = model.TeamProgress{TeamID: teamID, Room: room}
		}

		apply(&row)
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		rec = row.Record()
		return nil
	})

	return rec, err
}
