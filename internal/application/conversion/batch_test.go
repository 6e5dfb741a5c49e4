package conversion

import (
	"context"
	"encoding/csv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/stilbar/pkg/errors"
	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

func TestConvertBatch(t *testing.T) {
	svc := newTestService()

	result, err := svc.ConvertBatch(context.Background(), []string{
		"H–77–H",       // lookup
		"12",           // number
		"X|–04r.15r–|X", // template
		"not a code",   // failure
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 4)

	assert.Equal(t, ctypes.BatchItemSuccess, result.Items[0].Status)
	assert.Equal(t, ctypes.MethodLookup, result.Items[0].Method)
	assert.Equal(t, ctypes.MethodNumber, result.Items[1].Method)
	assert.Equal(t, ctypes.MethodTemplate, result.Items[2].Method)
	assert.Equal(t, ctypes.BatchItemFailed, result.Items[3].Status)
	assert.NotEmpty(t, result.Items[3].Error)

	assert.Equal(t, 4, result.Summary.Total)
	assert.Equal(t, 3, result.Summary.Succeeded)
	assert.Equal(t, 1, result.Summary.Failed)
	assert.InDelta(t, 0.75, result.Summary.SuccessRate, 1e-9)
}

func TestConvertBatch_Empty(t *testing.T) {
	svc := newTestService()
	_, err := svc.ConvertBatch(context.Background(), nil)
	assert.Equal(t, errors.CodeInvalidParam, errors.GetCode(err))
}

func TestExportBatchCSV(t *testing.T) {
	svc := newTestService()
	result, err := svc.ConvertBatch(context.Background(), []string{"H–77–H", "bogus("})
	require.NoError(t, err)

	data, err := ExportBatchCSV(result)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per code")
	assert.Equal(t, []string{"code", "smiles", "method", "confidence", "status", "error"}, rows[0])
	assert.Equal(t, "H–77–H", rows[1][0])
	assert.Equal(t, "lookup", rows[1][2])
	assert.Equal(t, "failed", rows[2][4])
}

type memoryJobStore struct {
	mu   sync.Mutex
	jobs map[string]*BatchJob
}

func newMemoryJobStore() *memoryJobStore {
	return &memoryJobStore{jobs: make(map[string]*BatchJob)}
}

func (m *memoryJobStore) SaveJob(_ context.Context, job *BatchJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *job
	m.jobs[job.ID] = &copied
	return nil
}

func (m *memoryJobStore) GetJob(_ context.Context, id string) (*BatchJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, errors.NotFound("batch job not found").WithDetail(id)
	}
	return job, nil
}

type memoryQueue struct {
	mu   sync.Mutex
	jobs []*BatchJob
}

func (m *memoryQueue) EnqueueBatchJob(_ context.Context, job *BatchJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
	return nil
}

type memoryArtifacts struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (m *memoryArtifacts) PutCSV(_ context.Context, name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[name] = data
	return "https://storage.local/" + name, nil
}

func TestBatchRunner_SubmitAndProcess(t *testing.T) {
	svc := newTestService()
	store := newMemoryJobStore()
	queue := &memoryQueue{}
	artifacts := &memoryArtifacts{}
	runner := NewBatchRunner(svc, queue, store, artifacts, 100, logging.NewNopLogger())

	job, err := runner.Submit(context.Background(), []string{"H–77–H", "12"})
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, ctypes.BatchJobQueued, job.State)
	require.Len(t, queue.jobs, 1)

	require.NoError(t, runner.Process(context.Background(), job))

	stored, err := runner.Status(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, ctypes.BatchJobCompleted, stored.State)
	require.NotNil(t, stored.Result)
	assert.Equal(t, 2, stored.Result.Summary.Succeeded)
	assert.Contains(t, stored.Result.ExportURL, job.ID)
	assert.NotNil(t, stored.CompletedAt)
	assert.Len(t, artifacts.files, 1)
}

func TestBatchRunner_SubmitValidation(t *testing.T) {
	runner := NewBatchRunner(newTestService(), &memoryQueue{}, newMemoryJobStore(), nil, 2, logging.NewNopLogger())

	_, err := runner.Submit(context.Background(), nil)
	assert.Equal(t, errors.CodeInvalidParam, errors.GetCode(err))

	_, err = runner.Submit(context.Background(), []string{"a", "b", "c"})
	assert.Equal(t, errors.CodeInvalidParam, errors.GetCode(err))
}

func TestBatchRunner_StatusUnknownJob(t *testing.T) {
	runner := NewBatchRunner(newTestService(), &memoryQueue{}, newMemoryJobStore(), nil, 10, logging.NewNopLogger())
	_, err := runner.Status(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}
