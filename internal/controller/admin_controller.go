package controller

import (
	"strings"

	"escape_room_backend/internal/repository"
	"escape_room_backend/internal/util"
	"escape_room_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminController exposes the administrative resets. To the progress
// store these are plain deletes; records regenerate lazily as defaults
// on the next access.
type AdminController struct {
	progress repository.ProgressRepository
}

func NewAdminController(progress repository.ProgressRepository) *AdminController {
	return &AdminController{progress: progress}
}

// ResetTeam wipes every room entry of a team.
func (c *AdminController) ResetTeam(ctx *gin.Context) {
	teamID := strings.TrimSpace(ctx.Param("team"))
	if teamID == "" {
		util.BadRequest(ctx, util.ErrEmptyTeamID.Error())
		return
	}

	if err := c.progress.ResetTeam(teamID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	logger.Log.Info("team progress reset", zap.String("team", teamID))
	util.Success(ctx, gin.H{"team": teamID})
}

// ResetRoom wipes a single (team, room) entry.
func (c *AdminController) ResetRoom(ctx *gin.Context) {
	teamID := strings.TrimSpace(ctx.Param("team"))
	room := ctx.Param("room")
	if teamID == "" {
		util.BadRequest(ctx, util.ErrEmptyTeamID.Error())
		return
	}

	if err := c.progress.Reset(teamID, room); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	logger.Log.Info("room progress reset", zap.String("team", teamID), zap.String("room", room))
	util.Success(ctx, gin.H{"team": teamID, "room": room})
}
