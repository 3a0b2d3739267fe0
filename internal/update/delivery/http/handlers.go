package http

import (
	"github.com/gin-gonic/gin"

	"internship-journey-agent/internal/model"
	"internship-journey-agent/internal/update"
	"internship-journey-agent/pkg/response"
)

// Interpret godoc
// @Summary     Interpret a status update
// @Description Parses a free-form status update against the current sheet and returns a previewable changeset. Nothing is written.
// @Tags        Updates
// @Accept      json
// @Produce     json
// @Param       body body interpretReq true "Update text"
// @Success     200 {object} interpretResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "Interpretation backend unavailable"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/updates/interpret [POST]
func (h *handler) Interpret(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processInterpretReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	snap, err := h.uc.LoadSnapshot(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.LoadSnapshot: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	out, err := h.uc.Interpret(ctx, h.scope(c, req.UserID), update.InterpretInput{
		RawText:  req.Text,
		Snapshot: snap,
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.Interpret: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	h.pending.Add(out.Changeset.ID, pendingChangeset{cs: out.Changeset, snap: out.Snapshot})

	response.OK(c, h.newInterpretResp(out))
}

// Apply godoc
// @Summary     Apply a previewed changeset
// @Description Applies a previously interpreted changeset atomically. Fails with 409 if the sheet changed since the preview.
// @Tags        Updates
// @Accept      json
// @Produce     json
// @Param       id path string true "Changeset ID"
// @Success     200 {object} applyResp
// @Failure     404 {object} response.Resp "Changeset not found or expired"
// @Failure     409 {object} response.Resp "Sheet changed since preview"
// @Failure     502 {object} response.Resp "Sheet write failed"
// @Router      /api/v1/updates/{id}/apply [POST]
func (h *handler) Apply(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processApplyReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	entry, ok := h.pending.Get(id)
	if !ok {
		response.Error(c, h.mapError(errPendingNotFound), nil)
		return
	}

	out, err := h.uc.Apply(ctx, h.scope(c, ""), update.ApplyInput{
		Changeset: entry.cs,
		Snapshot:  entry.snap,
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.Apply: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	h.pending.Remove(id)

	response.OK(c, h.newApplyResp(id, out))
}

// SheetInfo godoc
// @Summary     Sheet summary
// @Description Returns the tracking sheet rows with a summary: row count, workstreams, status counts and content version.
// @Tags        Updates
// @Produce     json
// @Success     200 {object} sheetInfoResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/sheet [GET]
func (h *handler) SheetInfo(c *gin.Context) {
	ctx := c.Request.Context()

	snap, err := h.uc.LoadSnapshot(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.LoadSnapshot: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSheetInfoResp(snap))
}

func (h *handler) scope(c *gin.Context, bodyUserID string) model.Scope {
	userID := bodyUserID
	if userID == "" {
		userID = c.GetHeader("X-User-ID")
	}
	if userID == "" {
		userID = "anonymous"
	}
	return model.Scope{UserID: userID}
}
