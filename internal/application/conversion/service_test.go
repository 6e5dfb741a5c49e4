package conversion

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/stilbar/internal/domain/compound"
	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/stilbar/pkg/errors"
	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

func newTestService(opts ...Option) *Service {
	ix := compound.NewIndex()
	ix.Reload(compound.Seed())
	return NewService(ix, logging.NewNopLogger(), opts...)
}

// Every curated code must convert back to its exact stored SMILES with a
// full-confidence lookup.  Duplicated codes resolve to the later row.
func TestConvert_CuratedLibraryFixedPoint(t *testing.T) {
	svc := newTestService()
	seen := make(map[string]*compound.Compound)
	for _, c := range compound.Seed() {
		if c.HasCode() {
			seen[c.NormalizedCode] = c
		}
	}
	require.NotEmpty(t, seen)

	for code, want := range seen {
		result, err := svc.Convert(context.Background(), code)
		require.NoError(t, err, "code %q", code)
		assert.Equal(t, want.SMILES, result.SMILES, "code %q", code)
		assert.Equal(t, ctypes.MethodLookup, result.Method, "code %q", code)
		assert.Equal(t, 1.0, result.Confidence, "code %q", code)
		require.NotNil(t, result.Compound, "code %q", code)
		assert.Equal(t, want.Hash, result.Compound.Hash, "code %q", code)
	}
}

func TestConvert_NormalizesDashesAndSpaces(t *testing.T) {
	svc := newTestService()

	result, err := svc.Convert(context.Background(), " T|-04r.15r-|H ")
	require.NoError(t, err)
	assert.Equal(t, ctypes.MethodLookup, result.Method)
	assert.Equal(t, "trans-δ-Viniferin", result.Compound.Name)
	assert.Equal(t, "T|–04r.15r–|H", result.Normalized)
}

func TestConvert_NumberLookup(t *testing.T) {
	svc := newTestService()

	result, err := svc.Convert(context.Background(), "12")
	require.NoError(t, err)
	assert.Equal(t, ctypes.MethodNumber, result.Method)
	assert.Equal(t, "Pallidol", result.Compound.Name)
	assert.Equal(t, 1.0, result.Confidence)

	_, err = svc.Convert(context.Background(), "0")
	assert.Equal(t, errors.CodeCodeNotInLibrary, errors.GetCode(err))
	_, err = svc.Convert(context.Background(), "63")
	assert.Equal(t, errors.CodeCodeNotInLibrary, errors.GetCode(err))
}

func TestConvert_TemplateFallback(t *testing.T) {
	svc := newTestService()

	// X|–04r.15r–|X is not in the library; construction must produce the
	// dihydrofuran scaffold at reduced confidence.
	result, err := svc.Convert(context.Background(), "X|–04r.15r–|X")
	require.NoError(t, err)
	assert.Equal(t, ctypes.MethodTemplate, result.Method)
	assert.Equal(t, templateConfidence, result.Confidence)
	assert.Nil(t, result.Compound)
	assert.Equal(t,
		"OC(C=C1)=CC=C1[C@H](O2)[C@H](C3=CC(O)=CC(O)=C3)C4=C2C=CC(/C=C/C5=CC(OC)=CC(O)=C5)=C4",
		result.SMILES)
}

func TestConvert_TemplateNeverOverridesLibrary(t *testing.T) {
	svc := newTestService()

	// T|–04s.15s–|P is curated with an irregular structure (cpd9); the
	// table answer must win over what the template would build.
	result, err := svc.Convert(context.Background(), "T|–04s.15s–|P")
	require.NoError(t, err)
	assert.Equal(t, ctypes.MethodLookup, result.Method)
	assert.Equal(t,
		"OC(C=C1)=CC=C1[C@@H](O2)[C@@H](C3=CC(OC)=CC(O)=C3)C4=C2C=CC(/C=C/C5=CC(O)=CC(O)=C5)=C4",
		result.SMILES)
}

func TestConvert_BareMonomer(t *testing.T) {
	svc := newTestService()

	// "H" is a curated row, so it resolves by lookup.
	result, err := svc.Convert(context.Background(), "H")
	require.NoError(t, err)
	assert.Equal(t, ctypes.MethodLookup, result.Method)

	// "T" is not curated; the monomer template takes over.
	result, err = svc.Convert(context.Background(), "T")
	require.NoError(t, err)
	assert.Equal(t, ctypes.MethodTemplate, result.Method)
	assert.Equal(t, "OC1=CC(O)=CC(/C=C/C2=CC=C(O)C=C2)=C1", result.SMILES)
}

func TestConvert_Errors(t *testing.T) {
	svc := newTestService()
	tests := []struct {
		name     string
		code     string
		wantCode errors.ErrorCode
	}{
		{"empty", "  ", errors.CodeNotationEmpty},
		{"unknown monomer", "Z", errors.CodeNotationUnknownUnit},
		{"unsupported shape", "T≡37.48≡T", errors.CodeNotationUnsupported},
		{"substituted monomer", "2hT", errors.CodeNotationUnsupported},
		{"unsupported furanoid pairs", "T|–12r.34r–|H", errors.CodeNotationUnsupported},
		{"undefined stereo in template", "X|–04*.15*–|X", errors.CodeNotationBadStereo},
		{"mismatched stereo", "X|–04r.15s–|X", errors.CodeNotationUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Convert(context.Background(), tt.code)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetCode(err), "got %v", err)
		})
	}
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]*ctypes.ConversionResult
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]*ctypes.ConversionResult)}
}

func (m *memoryCache) Get(_ context.Context, key string) (*ctypes.ConversionResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.entries[key]
	return r, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, r *ctypes.ConversionResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = r
	m.sets++
	return nil
}

func (m *memoryCache) Invalidate(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

type capturedEvents struct {
	mu     sync.Mutex
	events []Event
}

func (c *capturedEvents) PublishConversionCompleted(_ context.Context, e Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

type capturedMetrics struct {
	mu           sync.Mutex
	observations []string
}

func (c *capturedMetrics) ObserveConversion(method string, success bool, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observations = append(c.observations, method)
}

func TestConvert_CacheHitSkipsResolution(t *testing.T) {
	cache := newMemoryCache()
	svc := newTestService(WithCache(cache))

	first, err := svc.Convert(context.Background(), "H–77–H")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.Convert(context.Background(), "H-77-H")
	require.NoError(t, err)
	assert.Equal(t, first.SMILES, second.SMILES)
	assert.Equal(t, 1, cache.sets, "dash variants share one cache entry")
}

func TestConvert_PublishesEventAndMetrics(t *testing.T) {
	events := &capturedEvents{}
	metrics := &capturedMetrics{}
	svc := newTestService(WithEvents(events), WithMetrics(metrics))

	_, err := svc.Convert(context.Background(), "Pallidol-code-missing")
	require.Error(t, err)

	_, err = svc.Convert(context.Background(), "H–77–H")
	require.NoError(t, err)

	require.Len(t, events.events, 1)
	assert.Equal(t, "H–77–H", events.events[0].Normalized)
	assert.Equal(t, ctypes.MethodLookup, events.events[0].Method)
	assert.Len(t, metrics.observations, 2, "failures are observed too")
}
