package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/stilbar/internal/application/conversion"
	"github.com/turtacn/stilbar/pkg/errors"
)

// ConvertHandler serves the code-to-SMILES endpoints.
type ConvertHandler struct {
	svc    *conversion.Service
	runner *conversion.BatchRunner
}

// NewConvertHandler constructs a ConvertHandler.  runner may be nil when
// asynchronous batch processing is disabled.
func NewConvertHandler(svc *conversion.Service, runner *conversion.BatchRunner) *ConvertHandler {
	return &ConvertHandler{svc: svc, runner: runner}
}

type convertRequest struct {
	Code string `json:"code"`
}

// Convert resolves a single StilBAR code.
// POST /api/v1/convert
func (h *ConvertHandler) Convert(c *gin.Context) {
	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidParam("request body must be JSON with a \"code\" field"))
		return
	}

	result, err := h.svc.Convert(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}

type batchRequest struct {
	Codes []string `json:"codes"`
}

// ConvertBatch resolves a list of codes synchronously.
// POST /api/v1/convert/batch
func (h *ConvertHandler) ConvertBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidParam("request body must be JSON with a \"codes\" array"))
		return
	}

	result, err := h.svc.ConvertBatch(c.Request.Context(), req.Codes)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}

// SubmitBatchJob queues a batch conversion for background processing.
// POST /api/v1/batch/jobs
func (h *ConvertHandler) SubmitBatchJob(c *gin.Context) {
	if h.runner == nil {
		respondError(c, errors.New(errors.ErrCodeNotImplemented, "asynchronous batch processing is disabled"))
		return
	}

	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidParam("request body must be JSON with a \"codes\" array"))
		return
	}

	job, err := h.runner.Submit(c.Request.Context(), req.Codes)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusAccepted, job)
}

// GetBatchJob reports the state of a queued or finished batch job.
// GET /api/v1/batch/jobs/:id
func (h *ConvertHandler) GetBatchJob(c *gin.Context) {
	if h.runner == nil {
		respondError(c, errors.New(errors.ErrCodeNotImplemented, "asynchronous batch processing is disabled"))
		return
	}

	job, err := h.runner.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, job)
}
