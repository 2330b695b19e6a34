package http

import (
	"github.com/gin-gonic/gin"

	"github.com/asyncopatedsoul/health-protocol/internal/plan"
)

// processPlanReq binds the plan body and the program id path param.
func (h *handler) processPlanReq(c *gin.Context) (planReq, error) {
	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.ProgramID = c.Param("id")
	if req.ProgramID == "" {
		return req, plan.ErrMissingProgram
	}
	if err := req.validate(); err != nil {
		return req, err
	}
	return req, req.resolveStart(h.dates)
}

// processListPlannedReq binds the planned activity query string.
func (h *handler) processListPlannedReq(c *gin.Context) (listPlannedReq, error) {
	var req listPlannedReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	if err := req.validate(); err != nil {
		return req, err
	}
	return req, req.resolveDates(h.dates)
}
