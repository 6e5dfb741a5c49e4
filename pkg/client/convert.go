package client

import (
	"context"
	"net/url"

	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

// ConvertClient exposes the code-to-SMILES endpoints.
type ConvertClient struct {
	client *Client
}

// BatchJob is the wire form of an asynchronous batch conversion job.
type BatchJob struct {
	ID          string               `json:"id"`
	Codes       []string             `json:"codes"`
	State       ctypes.BatchJobState `json:"state"`
	SubmittedAt string               `json:"submitted_at"`
	CompletedAt string               `json:"completed_at,omitempty"`
	Result      *ctypes.BatchResult  `json:"result,omitempty"`
	Error       string               `json:"error,omitempty"`
}

// Convert resolves a single StilBAR code to SMILES.
func (cc *ConvertClient) Convert(ctx context.Context, code string) (*ctypes.ConversionResult, error) {
	var result ctypes.ConversionResult
	err := cc.client.post(ctx, "/api/v1/convert", map[string]string{"code": code}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ConvertBatch resolves a list of codes synchronously.
func (cc *ConvertClient) ConvertBatch(ctx context.Context, codes []string) (*ctypes.BatchResult, error) {
	var result ctypes.BatchResult
	err := cc.client.post(ctx, "/api/v1/convert/batch", map[string][]string{"codes": codes}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitBatchJob queues a batch conversion for background processing.
func (cc *ConvertClient) SubmitBatchJob(ctx context.Context, codes []string) (*BatchJob, error) {
	var job BatchJob
	err := cc.client.post(ctx, "/api/v1/batch/jobs", map[string][]string{"codes": codes}, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetBatchJob returns the current state of a batch job.
func (cc *ConvertClient) GetBatchJob(ctx context.Context, id string) (*BatchJob, error) {
	var job BatchJob
	err := cc.client.get(ctx, "/api/v1/batch/jobs/"+url.PathEscape(id), &job, nil)
	if err != nil {
		return nil, err
	}
	return &job, nil
}
