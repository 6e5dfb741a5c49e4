package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/stilbar/pkg/types/common"
	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

func writeEnvelope(w http.ResponseWriter, status int, data interface{}, p *common.Pagination) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(common.APIResponse[interface{}]{
		Success:    status < 400,
		Data:       data,
		Pagination: p,
		RequestID:  "srv-req-1",
		Timestamp:  common.Now(),
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(common.APIResponse[interface{}]{
		Success:   false,
		Error:     &common.ErrorDetail{Code: code, Message: message},
		RequestID: "srv-req-1",
		Timestamp: common.Now(),
	})
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)

	_, err = NewClient("ftp://example.com")
	assert.Error(t, err)

	c, err := NewClient("http://localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.baseURL)
}

func TestConvert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/api/v1/convert", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "H", req["code"])

		writeEnvelope(w, http.StatusOK, ctypes.ConversionResult{
			Code:       "H",
			Normalized: "H",
			SMILES:     "OC1=CC(O)=CC(CCC2=CC=C(O)C=C2)=C1",
			Method:     ctypes.MethodLookup,
			Confidence: 1.0,
		}, nil)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	result, err := c.Convert().Convert(context.Background(), "H")
	require.NoError(t, err)
	assert.Equal(t, ctypes.MethodLookup, result.Method)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)
}

func TestConvert_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "CMP_004", "no compound with this sequence number")
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.Convert().Convert(context.Background(), "999")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, "CMP_004", apiErr.Code)
	assert.Equal(t, "srv-req-1", apiErr.RequestID)
	assert.Contains(t, apiErr.Error(), "CMP_004")
}

func TestDo_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			writeError(w, http.StatusInternalServerError, "COMMON_001", "transient")
			return
		}
		writeEnvelope(w, http.StatusOK, ctypes.LibraryStats{Total: 62}, nil)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, WithRetryWait(time.Millisecond, 2*time.Millisecond))
	require.NoError(t, err)

	stats, err := c.Library().Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 62, stats.Total)
	assert.EqualValues(t, 3, calls.Load())
}

func TestDo_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeError(w, http.StatusBadRequest, "COMMON_002", "bad request")
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, WithRetryWait(time.Millisecond, 2*time.Millisecond))
	require.NoError(t, err)

	_, err = c.Library().Stats(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestLibraryList_Pagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/compounds", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))

		writeEnvelope(w, http.StatusOK, []ctypes.CompoundDTO{
			{Hash: "aaaa1111", Seq: 11, Name: "Eleven"},
		}, &common.Pagination{Page: 2, PageSize: 10, Total: 62})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	page, err := c.Library().List(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Len(t, page.Compounds, 1)
	assert.EqualValues(t, 62, page.Pagination.Total)
}

func TestLibraryExportImport(t *testing.T) {
	const csvBody = "num,compound_name,barcode,smiles\n1,Test,H,OC1=CC=CC=C1\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/compounds/export":
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte(csvBody))
		case "/api/v1/compounds/import":
			assert.Equal(t, "text/csv", r.Header.Get("Content-Type"))
			writeEnvelope(w, http.StatusOK, ImportResult{Imported: 1, Skipped: 0}, nil)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	exported, err := c.Library().Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, csvBody, string(exported))

	result, err := c.Library().Import(context.Background(), exported)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
}

func TestBatchJobLifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "POST" && r.URL.Path == "/api/v1/batch/jobs":
			writeEnvelope(w, http.StatusAccepted, BatchJob{
				ID: "job-1", State: ctypes.BatchJobQueued, Codes: []string{"H"},
			}, nil)
		case r.Method == "GET" && r.URL.Path == "/api/v1/batch/jobs/job-1":
			writeEnvelope(w, http.StatusOK, BatchJob{
				ID: "job-1", State: ctypes.BatchJobCompleted,
			}, nil)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	job, err := c.Convert().SubmitBatchJob(context.Background(), []string{"H"})
	require.NoError(t, err)
	assert.Equal(t, ctypes.BatchJobQueued, job.State)

	job, err = c.Convert().GetBatchJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, ctypes.BatchJobCompleted, job.State)
}

func TestContextCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.Library().Stats(ctx)
	require.Error(t, err)
}
