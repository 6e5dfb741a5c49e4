package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/stilbar/internal/application/conversion"
	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/stilbar/pkg/errors"
)

const defaultJobTTL = 7 * 24 * time.Hour

// JobStore persists batch job state in Redis so clients can poll it after
// submission.  It implements conversion.JobStore.
type JobStore struct {
	client *Client
	ttl    time.Duration
	logger logging.Logger
}

// NewJobStore constructs a JobStore.  ttl <= 0 falls back to 7 days.
func NewJobStore(client *Client, ttl time.Duration, log logging.Logger) *JobStore {
	if ttl <= 0 {
		ttl = defaultJobTTL
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &JobStore{client: client, ttl: ttl, logger: log.Named("job_store")}
}

func (s *JobStore) key(id string) string {
	return s.client.Key("job", id)
}

// SaveJob writes the job state, refreshing its TTL.
func (s *JobStore) SaveJob(ctx context.Context, job *conversion.BatchJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode batch job")
	}
	if err := s.client.RDB().Set(ctx, s.key(job.ID), data, s.ttl).Err(); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to store batch job")
	}
	return nil
}

// GetJob loads a job by ID.  Unknown or expired jobs yield NotFound.
func (s *JobStore) GetJob(ctx context.Context, id string) (*conversion.BatchJob, error) {
	data, err := s.client.RDB().Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return nil, errors.NotFound("batch job not found").WithDetail("id=" + id)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeCacheError, "failed to load batch job")
	}

	var job conversion.BatchJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode batch job")
	}
	return &job, nil
}
