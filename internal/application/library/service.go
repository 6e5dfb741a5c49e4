// Package library implements compound library management: browsing, curation
// (add/delete), statistics, CSV import/export, and structure similarity
// search.  The service keeps the persistent repository and the in-memory
// conversion index in step: every mutation goes to both.
package library

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/turtacn/stilbar/internal/domain/compound"
	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/stilbar/pkg/errors"
	"github.com/turtacn/stilbar/pkg/types/common"
	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

// csvHeader is the canonical library CSV column layout, unchanged from the
// curated file format.
var csvHeader = []string{"num", "compound_name", "barcode", "smiles"}

// Service manages the compound library.
type Service struct {
	repo   compound.Repository
	index  *compound.Index
	logger logging.Logger
}

// NewService constructs a library Service.
func NewService(repo compound.Repository, index *compound.Index, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		repo:   repo,
		index:  index,
		logger: logger.Named("library"),
	}
}

// List returns one page of compounds with the total count.
func (s *Service) List(ctx context.Context, p common.Pagination) ([]ctypes.CompoundDTO, int, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, errors.InvalidParam(err.Error())
	}
	compounds, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]ctypes.CompoundDTO, 0, len(compounds))
	for _, c := range compounds {
		dtos = append(dtos, c.ToDTO())
	}
	return dtos, total, nil
}

// Get returns the compound with the given hash ID.
func (s *Service) Get(ctx context.Context, hash string) (*ctypes.CompoundDTO, error) {
	c, err := s.repo.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	dto := c.ToDTO()
	return &dto, nil
}

// Add creates a new compound and registers it with the lookup index.
// Returns a Conflict error when the hash already exists.
func (s *Service) Add(ctx context.Context, name, code, smiles string) (*ctypes.CompoundDTO, error) {
	c, err := compound.New(0, name, code, smiles)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.index.Put(c)

	s.logger.Info("compound added",
		logging.String("hash", c.Hash), logging.String("name", c.Name))
	dto := c.ToDTO()
	return &dto, nil
}

// Delete removes compounds by hash.  Per-hash outcomes are collected rather
// than failing the whole request: unknown hashes are reported alongside the
// deletions that succeeded.
func (s *Service) Delete(ctx context.Context, hashes []string) (deleted []string, missing []string, err error) {
	if len(hashes) == 0 {
		return nil, nil, errors.InvalidParam("no hashes given")
	}
	for _, hash := range hashes {
		if err := s.repo.Delete(ctx, hash); err != nil {
			if errors.IsNotFound(err) {
				missing = append(missing, hash)
				continue
			}
			return deleted, missing, err
		}
		s.index.Remove(hash)
		deleted = append(deleted, hash)
	}
	s.logger.Info("compounds deleted",
		logging.Int("deleted", len(deleted)), logging.Int("missing", len(missing)))
	return deleted, missing, nil
}

// Stats returns library counts.
func (s *Service) Stats(ctx context.Context) (ctypes.LibraryStats, error) {
	return s.repo.Stats(ctx)
}

// FindSimilar ranks library compounds by structural similarity to a query
// SMILES string.
func (s *Service) FindSimilar(ctx context.Context, smiles string, threshold float64, limit int) ([]ctypes.SimilarityMatch, error) {
	candidates, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := compound.FindSimilar(smiles, candidates, threshold, limit)
	if err != nil {
		return nil, err
	}
	out := make([]ctypes.SimilarityMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, ctypes.SimilarityMatch{
			Compound:   m.Compound.ToDTO(),
			Similarity: m.Similarity,
		})
	}
	return out, nil
}

// Analyze returns heuristic property estimates and a Lipinski assessment for
// the compound with the given hash.
func (s *Service) Analyze(ctx context.Context, hash string) (*ctypes.Properties, *ctypes.LipinskiAssessment, error) {
	c, err := s.repo.GetByHash(ctx, hash)
	if err != nil {
		return nil, nil, err
	}
	props, err := compound.EstimateProperties(c.SMILES)
	if err != nil {
		return nil, nil, err
	}
	lipinski := compound.AssessLipinski(props)
	return &props, &lipinski, nil
}

// ImportCSV reads compounds in the library CSV layout and adds the new ones.
// Rows whose hash already exists are skipped, so re-importing a library file
// is idempotent.  A malformed row aborts the import.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (imported, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)

	header, err := reader.Read()
	if err != nil {
		return 0, 0, errors.Wrap(err, errors.CodeLibraryImportFailed, "failed to read CSV header")
	}
	if !equalHeader(header, csvHeader) {
		return 0, 0, errors.New(errors.CodeLibraryImportFailed, "unexpected CSV header").
			WithDetail(fmt.Sprintf("got %v, want %v", header, csvHeader))
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return imported, skipped, errors.Wrap(err, errors.CodeLibraryImportFailed,
				"failed to read CSV row").WithDetail(fmt.Sprintf("line %d", line))
		}

		seq, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return imported, skipped, errors.New(errors.CodeLibraryImportFailed,
				"sequence column is not a number").WithDetail(fmt.Sprintf("line %d: %q", line, record[0]))
		}
		c, err := compound.New(seq, record[1], record[2], record[3])
		if err != nil {
			return imported, skipped, errors.Wrap(err, errors.CodeLibraryImportFailed,
				"invalid compound row").WithDetail(fmt.Sprintf("line %d", line))
		}

		if err := s.repo.Save(ctx, c); err != nil {
			if errors.IsCode(err, errors.CodeConflict) || errors.IsCode(err, errors.CodeCompoundAlreadyExists) {
				skipped++
				continue
			}
			return imported, skipped, err
		}
		s.index.Put(c)
		imported++
	}

	s.logger.Info("library import finished",
		logging.Int("imported", imported), logging.Int("skipped", skipped))
	return imported, skipped, nil
}

// ExportCSV renders the whole library in the canonical CSV layout, ordered
// by sequence number.
func (s *Service) ExportCSV(ctx context.Context) ([]byte, error) {
	compounds, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, errors.Wrap(err, errors.CodeLibraryExportFailed, "failed to write CSV header")
	}
	for _, c := range compounds {
		row := []string{strconv.Itoa(c.Seq), c.Name, c.Code, c.SMILES}
		if err := w.Write(row); err != nil {
			return nil, errors.Wrap(err, errors.CodeLibraryExportFailed, "failed to write CSV row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, errors.CodeLibraryExportFailed, "failed to flush CSV")
	}
	return buf.Bytes(), nil
}

func equalHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if strings.TrimSpace(got[i]) != want[i] {
			return false
		}
	}
	return true
}
