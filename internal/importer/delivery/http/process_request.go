package http

import (
	"github.com/gin-gonic/gin"

	"github.com/asyncopatedsoul/health-protocol/internal/importer"
)

// processParseReq binds and validates the parse request body.
func (h *handler) processParseReq(c *gin.Context) (parseReq, error) {
	var req parseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processCreateReq binds and validates the create note request body.
func (h *handler) processCreateReq(c *gin.Context) (createReq, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processImportReq binds the optional body and the note id path param.
func (h *handler) processImportReq(c *gin.Context) (importReq, error) {
	var req importReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, err
		}
	}
	req.NoteID = c.Param("id")
	if req.NoteID == "" {
		return req, importer.ErrMissingNoteID
	}
	return req, req.validate()
}

// processBatchReq binds and validates the batch import request body.
func (h *handler) processBatchReq(c *gin.Context) (batchReq, error) {
	var req batchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processImportForUserReq binds the bulk import body and resolves its date expressions.
func (h *handler) processImportForUserReq(c *gin.Context) (importForUserReq, error) {
	var req importForUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	if err := req.validate(); err != nil {
		return req, err
	}
	return req, req.resolveDates(h.dates)
}
