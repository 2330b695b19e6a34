package http

import (
	"github.com/gin-gonic/gin"

	"github.com/asyncopatedsoul/health-protocol/pkg/response"
)

// Parse godoc
// @Summary     Parse a journal note
// @Description Extracts the leading date and the structured activities from note text without storing anything.
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       body body parseReq true "Note content"
// @Success     200  {object} parseResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/notes/parse [POST]
func (h *handler) Parse(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processParseReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ParseNote(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ParseNote: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newParseResp(output))
}

// Create godoc
// @Summary     Create a journal note
// @Description Stores a note and queues it for asynchronous import.
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       body body createReq true "Note"
// @Success     200  {object} noteResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/notes [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.CreateNote(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.CreateNote: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newCreateResp(output))
}

// Import godoc
// @Summary     Import one note
// @Description Parses the note, resolves each activity against the catalog and records one completed activity event per activity.
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       id   path string    true  "Note ID"
// @Param       body body importReq false "Import options"
// @Success     200  {object} importResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     404  {object} response.Resp "Not Found"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/notes/{id}/import [POST]
func (h *handler) Import(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processImportReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ImportNote(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ImportNote: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newImportResp(output))
}

// ImportBatch godoc
// @Summary     Import several notes
// @Description Imports each listed note independently and aggregates the counts.
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       body body batchReq true "Note IDs"
// @Success     200  {object} bulkResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/notes/import/batch [POST]
func (h *handler) ImportBatch(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processBatchReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ImportNotes(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ImportNotes: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newBulkResp(output))
}

// ImportForUser godoc
// @Summary     Bulk import a user's notes
// @Description Imports every note of the selected user whose creation or last-saved time lies in the optional range.
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       body body importForUserReq true "User selector, date range and options"
// @Success     200  {object} bulkResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     404  {object} response.Resp "User not found"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/notes/import [POST]
func (h *handler) ImportForUser(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processImportForUserReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ImportNotesForUser(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ImportNotesForUser: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newBulkResp(output))
}
