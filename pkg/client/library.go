package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/turtacn/stilbar/pkg/types/common"
	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

// LibraryClient exposes the compound library endpoints.
type LibraryClient struct {
	client *Client
}

// ListPage is one page of library compounds with pagination metadata.
type ListPage struct {
	Compounds  []ctypes.CompoundDTO
	Pagination common.Pagination
}

// DeleteResult reports which hashes were removed and which were unknown.
type DeleteResult struct {
	Deleted []string `json:"deleted"`
	Missing []string `json:"missing"`
}

// ImportResult reports the outcome of a CSV import.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Analysis bundles the property estimates for one compound.
type Analysis struct {
	Properties ctypes.Properties         `json:"properties"`
	Lipinski   ctypes.LipinskiAssessment `json:"lipinski"`
}

// List returns one page of compounds.
func (lc *LibraryClient) List(ctx context.Context, page, pageSize int) (*ListPage, error) {
	path := fmt.Sprintf("/api/v1/compounds?page=%d&page_size=%d", page, pageSize)
	result := &ListPage{}
	err := lc.client.get(ctx, path, &result.Compounds, &result.Pagination)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns one compound by hash ID.
func (lc *LibraryClient) Get(ctx context.Context, hash string) (*ctypes.CompoundDTO, error) {
	var dto ctypes.CompoundDTO
	err := lc.client.get(ctx, "/api/v1/compounds/"+url.PathEscape(hash), &dto, nil)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// Create adds a compound to the library.
func (lc *LibraryClient) Create(ctx context.Context, name, code, smiles string) (*ctypes.CompoundDTO, error) {
	body := map[string]string{"name": name, "code": code, "smiles": smiles}
	var dto ctypes.CompoundDTO
	err := lc.client.post(ctx, "/api/v1/compounds", body, &dto)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// Delete removes compounds by hash ID.
func (lc *LibraryClient) Delete(ctx context.Context, hashes []string) (*DeleteResult, error) {
	var result DeleteResult
	err := lc.client.do(ctx, http.MethodDelete, "/api/v1/compounds",
		map[string][]string{"hashes": hashes}, &result, nil)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Stats returns library composition counts.
func (lc *LibraryClient) Stats(ctx context.Context) (*ctypes.LibraryStats, error) {
	var stats ctypes.LibraryStats
	err := lc.client.get(ctx, "/api/v1/compounds/stats", &stats, nil)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Analyze returns property estimates and a Lipinski assessment for one
// compound.
func (lc *LibraryClient) Analyze(ctx context.Context, hash string) (*Analysis, error) {
	var analysis Analysis
	err := lc.client.get(ctx, "/api/v1/compounds/"+url.PathEscape(hash)+"/properties", &analysis, nil)
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

// FindSimilar searches the library for compounds similar to a SMILES string.
func (lc *LibraryClient) FindSimilar(ctx context.Context, smiles string, threshold float64, limit int) ([]ctypes.SimilarityMatch, error) {
	body := map[string]interface{}{
		"smiles":    smiles,
		"threshold": threshold,
		"limit":     limit,
	}
	var matches []ctypes.SimilarityMatch
	err := lc.client.post(ctx, "/api/v1/compounds/similar", body, &matches)
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// Import uploads a library CSV and returns the per-row outcome counts.
func (lc *LibraryClient) Import(ctx context.Context, csvData []byte) (*ImportResult, error) {
	var result ImportResult
	respBody, err := lc.client.doRaw(ctx, http.MethodPost, "/api/v1/compounds/import",
		"text/csv", bytes.NewReader(csvData))
	if err != nil {
		return nil, err
	}
	if err := decodeEnvelopeData(respBody, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Export downloads the full library as CSV.
func (lc *LibraryClient) Export(ctx context.Context) ([]byte, error) {
	return lc.client.doRaw(ctx, http.MethodGet, "/api/v1/compounds/export", "", nil)
}
