package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/stilbar/internal/application/library"
	"github.com/turtacn/stilbar/pkg/errors"
)

// LibraryHandler serves the compound library endpoints.
type LibraryHandler struct {
	svc *library.Service
}

// NewLibraryHandler constructs a LibraryHandler.
func NewLibraryHandler(svc *library.Service) *LibraryHandler {
	return &LibraryHandler{svc: svc}
}

// List returns one page of compounds.
// GET /api/v1/compounds
func (h *LibraryHandler) List(c *gin.Context) {
	p := parsePagination(c)
	compounds, total, err := h.svc.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	p.Total = int64(total)
	respondPage(c, compounds, p)
}

// Get returns one compound by hash ID.
// GET /api/v1/compounds/:hash
func (h *LibraryHandler) Get(c *gin.Context) {
	compound, err := h.svc.Get(c.Request.Context(), c.Param("hash"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, compound)
}

type createCompoundRequest struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	SMILES string `json:"smiles"`
}

// Create adds a compound to the library.
// POST /api/v1/compounds
func (h *LibraryHandler) Create(c *gin.Context) {
	var req createCompoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidParam("request body must be JSON with name, code, smiles"))
		return
	}

	compound, err := h.svc.Add(c.Request.Context(), req.Name, req.Code, req.SMILES)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, compound)
}

type deleteCompoundsRequest struct {
	Hashes []string `json:"hashes"`
}

type deleteCompoundsResponse struct {
	Deleted []string `json:"deleted"`
	Missing []string `json:"missing"`
}

// Delete removes compounds by hash.
// DELETE /api/v1/compounds
func (h *LibraryHandler) Delete(c *gin.Context) {
	var req deleteCompoundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidParam("request body must be JSON with a \"hashes\" array"))
		return
	}

	deleted, missing, err := h.svc.Delete(c.Request.Context(), req.Hashes)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, deleteCompoundsResponse{Deleted: deleted, Missing: missing})
}

// Stats returns library counts.
// GET /api/v1/compounds/stats
func (h *LibraryHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, stats)
}

type analyzeResponse struct {
	Properties interface{} `json:"properties"`
	Lipinski   interface{} `json:"lipinski"`
}

// Analyze returns property estimates for one compound.
// GET /api/v1/compounds/:hash/properties
func (h *LibraryHandler) Analyze(c *gin.Context) {
	props, lipinski, err := h.svc.Analyze(c.Request.Context(), c.Param("hash"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, analyzeResponse{Properties: props, Lipinski: lipinski})
}

type similarRequest struct {
	SMILES    string  `json:"smiles"`
	Threshold float64 `json:"threshold"`
	Limit     int     `json:"limit"`
}

// Similar ranks library compounds by similarity to a query structure.
// POST /api/v1/compounds/similar
func (h *LibraryHandler) Similar(c *gin.Context) {
	req := similarRequest{Threshold: 0.5, Limit: 10}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidParam("request body must be JSON with a \"smiles\" field"))
		return
	}

	matches, err := h.svc.FindSimilar(c.Request.Context(), req.SMILES, req.Threshold, req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, matches)
}

type importResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Import loads compounds from an uploaded CSV body.
// POST /api/v1/compounds/import
func (h *LibraryHandler) Import(c *gin.Context) {
	imported, skipped, err := h.svc.ImportCSV(c.Request.Context(), c.Request.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, importResponse{Imported: imported, Skipped: skipped})
}

// Export streams the whole library as CSV.
// GET /api/v1/compounds/export
func (h *LibraryHandler) Export(c *gin.Context) {
	data, err := h.svc.ExportCSV(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="stilbar_library.csv"`)
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, "text/csv", data)
}
