package controller

import (
	"errors"
	"io"
	"net/http"

	"escape_room_backend/internal/service"
	"escape_room_backend/internal/util"
	"escape_room_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Workbook uploads are whole spreadsheets; anything bigger than this is
// not a question set.
const maxWorkbookBytes = 10 << 20

type WorkbookController struct {
	workbook *service.WorkbookService
}

func NewWorkbookController(workbook *service.WorkbookService) *WorkbookController {
	return &WorkbookController{workbook: workbook}
}

// DownloadTemplate hands out a generated sample workbook with the
// expected columns and one example per answer-key syntax.
func (c *WorkbookController) DownloadTemplate(ctx *gin.Context) {
	data, err := c.workbook.Template()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="escape_rooms_template.xlsx"`)
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Upload replaces the playable question set with the uploaded .xlsx.
// A workbook without a single valid sheet is rejected and the previous
// set stays live.
func (c *WorkbookController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("workbook")
	if err != nil {
		util.BadRequest(ctx, "missing 'workbook' file field")
		return
	}
	if file.Size > maxWorkbookBytes {
		util.BadRequest(ctx, "workbook too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxWorkbookBytes))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.workbook.LoadBytes(data); err != nil {
		if errors.Is(err, util.ErrNoValidSheets) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.BadRequest(ctx, "could not parse workbook: "+err.Error())
		return
	}

	logger.Log.Info("workbook replaced via upload", zap.String("filename", file.Filename))
	util.Success(ctx, c.workbook.Rooms())
}
