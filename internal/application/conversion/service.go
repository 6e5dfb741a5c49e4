// Package conversion implements the StilBAR → SMILES conversion pipeline.
// Resolution is lookup-table-first: exact match on the normalized code, then
// on the raw input, then numeric sequence lookup, and only then the narrow
// component-based construction fallback.  The curated library is the source
// of truth; construction never overrides a table hit.
package conversion

import (
	"context"
	"strconv"
	"time"

	"github.com/turtacn/stilbar/internal/domain/compound"
	"github.com/turtacn/stilbar/internal/domain/notation"
	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/stilbar/pkg/errors"
	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

// templateConfidence is the confidence reported for constructed (non-lookup)
// results.  Lookup hits always report 1.0.
const templateConfidence = 0.6

// ResultCache stores conversion results keyed by normalized code.
// Implementations: Redis (production), nil (cache disabled).
type ResultCache interface {
	Get(ctx context.Context, normalizedCode string) (*ctypes.ConversionResult, bool, error)
	Set(ctx context.Context, normalizedCode string, result *ctypes.ConversionResult) error
	Invalidate(ctx context.Context, normalizedCode string) error
}

// Event is the audit record published after a successful conversion.
type Event struct {
	Code       string                  `json:"code"`
	Normalized string                  `json:"normalized"`
	SMILES     string                  `json:"smiles"`
	Method     ctypes.ConversionMethod `json:"method"`
	Confidence float64                 `json:"confidence"`
	DurationMS int64                   `json:"duration_ms"`
	OccurredAt time.Time               `json:"occurred_at"`
}

// EventPublisher emits conversion audit events.  Implementations: Kafka
// producer (production), nil (events disabled).
type EventPublisher interface {
	PublishConversionCompleted(ctx context.Context, event Event) error
}

// MetricsRecorder observes conversion outcomes for monitoring.
type MetricsRecorder interface {
	ObserveConversion(method string, success bool, duration time.Duration)
}

// Service resolves StilBAR codes to SMILES strings.
type Service struct {
	index   *compound.Index
	cache   ResultCache
	events  EventPublisher
	metrics MetricsRecorder
	logger  logging.Logger
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithCache enables result caching.
func WithCache(cache ResultCache) Option {
	return func(s *Service) { s.cache = cache }
}

// WithEvents enables conversion audit events.
func WithEvents(pub EventPublisher) Option {
	return func(s *Service) { s.events = pub }
}

// WithMetrics enables conversion metrics.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService constructs a conversion Service over the given library index.
func NewService(index *compound.Index, logger logging.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &Service{
		index:  index,
		logger: logger.Named("conversion"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Convert resolves a single StilBAR code.  The strategies run in a fixed
// order and the first hit wins:
//
//  1. lookup      — normalized code against the library index
//  2. lookup_raw  — cleaned input with its original dash style
//  3. number      — all-digit input as a 1-based sequence number
//  4. template    — component-based construction (confidence 0.6)
func (s *Service) Convert(ctx context.Context, raw string) (*ctypes.ConversionResult, error) {
	start := time.Now()

	cleaned := notation.Clean(raw)
	if cleaned == "" {
		return nil, errors.New(errors.CodeNotationEmpty, "empty StilBAR code")
	}
	normalized := notation.Normalize(raw)

	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, normalized); err != nil {
			s.logger.Warn("result cache read failed",
				logging.String("code", normalized), logging.Err(err))
		} else if ok {
			return cached, nil
		}
	}

	result, err := s.resolve(raw, cleaned, normalized)
	duration := time.Since(start)
	if s.metrics != nil {
		method := ""
		if result != nil {
			method = result.Method.String()
		}
		s.metrics.ObserveConversion(method, err == nil, duration)
	}
	if err != nil {
		s.logger.Info("conversion failed",
			logging.String("code", normalized), logging.Err(err))
		return nil, err
	}

	s.logger.Debug("conversion succeeded",
		logging.String("code", normalized),
		logging.String("method", result.Method.String()),
		logging.Duration("duration", duration))

	if s.cache != nil {
		if err := s.cache.Set(ctx, normalized, result); err != nil {
			s.logger.Warn("result cache write failed",
				logging.String("code", normalized), logging.Err(err))
		}
	}
	if s.events != nil {
		event := Event{
			Code:       raw,
			Normalized: normalized,
			SMILES:     result.SMILES,
			Method:     result.Method,
			Confidence: result.Confidence,
			DurationMS: duration.Milliseconds(),
			OccurredAt: time.Now().UTC(),
		}
		if err := s.events.PublishConversionCompleted(ctx, event); err != nil {
			s.logger.Warn("conversion event publish failed",
				logging.String("code", normalized), logging.Err(err))
		}
	}

	return result, nil
}

func (s *Service) resolve(raw, cleaned, normalized string) (*ctypes.ConversionResult, error) {
	if c, ok := s.index.ByCode(normalized); ok {
		return hitResult(raw, normalized, c, ctypes.MethodLookup), nil
	}

	if c, ok := s.index.ByRawCode(cleaned); ok {
		return hitResult(raw, normalized, c, ctypes.MethodLookupRaw), nil
	}

	if seq, err := strconv.Atoi(cleaned); err == nil {
		c, ok := s.index.BySeq(seq)
		if !ok {
			return nil, errors.New(errors.CodeCodeNotInLibrary,
				"no compound with this sequence number").
				WithDetail(cleaned)
		}
		return hitResult(raw, normalized, c, ctypes.MethodNumber), nil
	}

	parsed, err := notation.Parse(normalized)
	if err != nil {
		return nil, err
	}
	smiles, err := buildFromTemplate(parsed)
	if err != nil {
		return nil, err
	}
	return &ctypes.ConversionResult{
		Code:       raw,
		Normalized: normalized,
		SMILES:     smiles,
		Method:     ctypes.MethodTemplate,
		Confidence: templateConfidence,
	}, nil
}

func hitResult(raw, normalized string, c *compound.Compound, method ctypes.ConversionMethod) *ctypes.ConversionResult {
	dto := c.ToDTO()
	return &ctypes.ConversionResult{
		Code:       raw,
		Normalized: normalized,
		SMILES:     c.SMILES,
		Method:     method,
		Confidence: 1.0,
		Compound:   &dto,
	}
}
