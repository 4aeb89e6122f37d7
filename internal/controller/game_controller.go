package controller

import (
	"errors"
	"strings"

	"escape_room_backend/internal/service"
	"escape_room_backend/internal/util"
	"escape_room_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type GameController struct {
	game     *service.GameService
	workbook *service.WorkbookService
}

func NewGameController(game *service.GameService, workbook *service.WorkbookService) *GameController {
	return &GameController{game: game, workbook: workbook}
}

// ListRooms returns the playable rooms with their question counts.
func (c *GameController) ListRooms(ctx *gin.Context) {
	util.Success(ctx, c.workbook.Rooms())
}

// GetState returns the team's current question and lock countdown for a
// room. Polled by the countdown display, so it must never mutate state.
func (c *GameController) GetState(ctx *gin.Context) {
	teamID := strings.TrimSpace(ctx.Query("team"))
	if teamID == "" {
		util.BadRequest(ctx, util.ErrEmptyTeamID.Error())
		return
	}

	state, err := c.game.State(teamID, ctx.Param("room"))
	if err != nil {
		if errors.Is(err, util.ErrRoomNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, state)
}

type SubmitAnswerRequest struct {
	TeamID string `json:"teamId" binding:"required"`
	Answer string `json:"answer"`
}

// SubmitAnswer evaluates an answer: a correct one advances the team, a
// wrong one starts the lockout. While locked the endpoint answers 423
// with the current countdown instead of evaluating anything.
func (c *GameController) SubmitAnswer(ctx *gin.Context) {
	room := ctx.Param("room")

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	teamID := strings.TrimSpace(req.TeamID)
	if teamID == "" {
		util.BadRequest(ctx, util.ErrEmptyTeamID.Error())
		return
	}

	result, err := c.game.Submit(teamID, room, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRoomNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrRoomCompleted):
			monitoring.AnswerSubmissions.WithLabelValues(room, "completed").Inc()
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrTeamLocked):
			monitoring.AnswerSubmissions.WithLabelValues(room, "locked").Inc()
			state, stateErr := c.game.State(teamID, room)
			if stateErr != nil {
				util.LogInternalError(ctx, stateErr)
				return
			}
			util.Locked(ctx, state)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	outcome := "wrong"
	if result.Correct {
		outcome = "correct"
	}
	monitoring.AnswerSubmissions.WithLabelValues(room, outcome).Inc()

	util.Success(ctx, result)
}
