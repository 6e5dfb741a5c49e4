package conversion

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/stilbar/pkg/errors"
	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

// ConvertBatch converts a list of codes synchronously.  Every code gets a
// per-item outcome; a failing code marks its item failed without aborting the
// batch.  The summary mirrors the success-rate metric the original batch page
// reported.
func (s *Service) ConvertBatch(ctx context.Context, codes []string) (*ctypes.BatchResult, error) {
	if len(codes) == 0 {
		return nil, errors.InvalidParam("batch must contain at least one code")
	}

	items := make([]ctypes.BatchItem, 0, len(codes))
	succeeded := 0
	for _, code := range codes {
		result, err := s.Convert(ctx, code)
		if err != nil {
			items = append(items, ctypes.BatchItem{
				Code:   code,
				Status: ctypes.BatchItemFailed,
				Error:  err.Error(),
			})
			continue
		}
		succeeded++
		items = append(items, ctypes.BatchItem{
			Code:       code,
			SMILES:     result.SMILES,
			Method:     result.Method,
			Confidence: result.Confidence,
			Status:     ctypes.BatchItemSuccess,
		})
	}

	total := len(items)
	return &ctypes.BatchResult{
		Items: items,
		Summary: ctypes.BatchSummary{
			Total:       total,
			Succeeded:   succeeded,
			Failed:      total - succeeded,
			SuccessRate: float64(succeeded) / float64(total),
		},
	}, nil
}

// ExportBatchCSV renders a batch result as CSV, one row per code, in the
// column layout the original batch download used.
func ExportBatchCSV(result *ctypes.BatchResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"code", "smiles", "method", "confidence", "status", "error"}); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to write CSV header")
	}
	for _, item := range result.Items {
		row := []string{
			item.Code,
			item.SMILES,
			item.Method.String(),
			strconv.FormatFloat(item.Confidence, 'f', 2, 64),
			string(item.Status),
			item.Error,
		}
		if err := w.Write(row); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to write CSV row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to flush CSV")
	}
	return buf.Bytes(), nil
}

// BatchJob is an asynchronous batch conversion request and its lifecycle.
type BatchJob struct {
	ID          string               `json:"id"`
	Codes       []string             `json:"codes"`
	State       ctypes.BatchJobState `json:"state"`
	SubmittedAt time.Time            `json:"submitted_at"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
	Result      *ctypes.BatchResult  `json:"result,omitempty"`
	Error       string               `json:"error,omitempty"`
}

// JobQueue enqueues batch jobs for background workers.  Implementation:
// Kafka producer on the batch jobs topic.
type JobQueue interface {
	EnqueueBatchJob(ctx context.Context, job *BatchJob) error
}

// JobStore persists batch job state so clients can poll it.  Implementation:
// Redis with the job TTL.
type JobStore interface {
	SaveJob(ctx context.Context, job *BatchJob) error
	GetJob(ctx context.Context, id string) (*BatchJob, error)
}

// ArtifactStore persists exported result files.  Implementation: MinIO.
type ArtifactStore interface {
	PutCSV(ctx context.Context, name string, data []byte) (string, error)
}

// BatchRunner coordinates asynchronous batch conversions: the HTTP layer
// submits jobs, workers process them, and clients poll job state.
type BatchRunner struct {
	svc       *Service
	queue     JobQueue
	store     JobStore
	artifacts ArtifactStore
	maxItems  int
	logger    logging.Logger
}

// NewBatchRunner constructs a BatchRunner.  artifacts may be nil, in which
// case completed jobs carry no export URL.
func NewBatchRunner(svc *Service, queue JobQueue, store JobStore, artifacts ArtifactStore, maxItems int, logger logging.Logger) *BatchRunner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &BatchRunner{
		svc:       svc,
		queue:     queue,
		store:     store,
		artifacts: artifacts,
		maxItems:  maxItems,
		logger:    logger.Named("batch"),
	}
}

// Submit validates and enqueues an asynchronous batch job, returning it in
// the queued state.
func (r *BatchRunner) Submit(ctx context.Context, codes []string) (*BatchJob, error) {
	if len(codes) == 0 {
		return nil, errors.InvalidParam("batch must contain at least one code")
	}
	if len(codes) > r.maxItems {
		return nil, errors.InvalidParam("batch exceeds the maximum item count").
			WithDetail(fmt.Sprintf("%d codes, limit %d", len(codes), r.maxItems))
	}

	job := &BatchJob{
		ID:          uuid.NewString(),
		Codes:       codes,
		State:       ctypes.BatchJobQueued,
		SubmittedAt: time.Now().UTC(),
	}
	if err := r.store.SaveJob(ctx, job); err != nil {
		return nil, errors.Wrap(err, errors.CodeCacheError, "failed to persist batch job")
	}
	if err := r.queue.EnqueueBatchJob(ctx, job); err != nil {
		return nil, errors.Wrap(err, errors.CodeMessagingError, "failed to enqueue batch job")
	}

	r.logger.Info("batch job submitted",
		logging.String("job_id", job.ID), logging.Int("codes", len(codes)))
	return job, nil
}

// Status returns the current state of a batch job.
func (r *BatchRunner) Status(ctx context.Context, id string) (*BatchJob, error) {
	job, err := r.store.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Process runs a dequeued batch job to completion.  Called by workers; state
// transitions are persisted so pollers see running → completed/failed.
func (r *BatchRunner) Process(ctx context.Context, job *BatchJob) error {
	job.State = ctypes.BatchJobRunning
	if err := r.store.SaveJob(ctx, job); err != nil {
		r.logger.Warn("failed to persist running state",
			logging.String("job_id", job.ID), logging.Err(err))
	}

	result, err := r.svc.ConvertBatch(ctx, job.Codes)
	now := time.Now().UTC()
	job.CompletedAt = &now
	if err != nil {
		job.State = ctypes.BatchJobFailed
		job.Error = err.Error()
		if saveErr := r.store.SaveJob(ctx, job); saveErr != nil {
			r.logger.Error("failed to persist failed job",
				logging.String("job_id", job.ID), logging.Err(saveErr))
		}
		return err
	}

	result.JobID = job.ID
	if r.artifacts != nil {
		data, csvErr := ExportBatchCSV(result)
		if csvErr == nil {
			name := fmt.Sprintf("batches/%s.csv", job.ID)
			url, putErr := r.artifacts.PutCSV(ctx, name, data)
			if putErr != nil {
				r.logger.Warn("failed to store batch artifact",
					logging.String("job_id", job.ID), logging.Err(putErr))
			} else {
				result.ExportURL = url
			}
		}
	}

	job.State = ctypes.BatchJobCompleted
	job.Result = result
	if err := r.store.SaveJob(ctx, job); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to persist completed job")
	}

	r.logger.Info("batch job completed",
		logging.String("job_id", job.ID),
		logging.Int("succeeded", result.Summary.Succeeded),
		logging.Int("failed", result.Summary.Failed))
	return nil
}
