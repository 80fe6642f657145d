package lookup

import (
	"context"
	"testing"
	"time"

	"github.com/quotewise/quotewise/internal/cache"
	ierr "github.com/quotewise/quotewise/internal/errors"
	"github.com/quotewise/quotewise/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingDemandSource struct {
	calls  int
	signal DemandSignal
	err    error
}

func (s *countingDemandSource) CurrentDemand(_ context.Context, _ string, _ time.Time) (*DemandSignal, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	signal := s.signal
	return &signal, nil
}

func TestCachedDemandSource_MemoizesPerZip(t *testing.T) {
	upstream := &countingDemandSource{
		signal: DemandSignal{Level: types.DemandLevelHigh, CapacityUtilization: 0.95},
	}
	source := NewCachedDemandSource(upstream, cache.NewInMemoryCache(), time.Minute)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		signal, err := source.CurrentDemand(ctx, "11455", now)
		require.NoError(t, err)
		assert.Equal(t, types.DemandLevelHigh, signal.Level)
	}
	assert.Equal(t, 1, upstream.calls, "repeated lookups for one zip should hit upstream once")

	_, err := source.CurrentDemand(ctx, "22901", now)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls, "a new zip misses the cache")
}

func TestCachedDemandSource_ErrorsNotCached(t *testing.T) {
	upstream := &countingDemandSource{
		err: ierr.NewError("capacity service unavailable").Mark(ierr.ErrLookupFailed),
	}
	source := NewCachedDemandSource(upstream, cache.NewInMemoryCache(), time.Minute)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := source.CurrentDemand(ctx, "11455", now)
	require.Error(t, err)

	upstream.err = nil
	upstream.signal = DemandSignal{Level: types.DemandLevelLow}

	signal, err := source.CurrentDemand(ctx, "11455", now)
	require.NoError(t, err)
	assert.Equal(t, types.DemandLevelLow, signal.Level)
	assert.Equal(t, 2, upstream.calls)
}

func TestCachedDemandSource_ReturnsCopy(t *testing.T) {
	upstream := &countingDemandSource{
		signal: DemandSignal{Level: types.DemandLevelNormal, CapacityUtilization: 0.5},
	}
	source := NewCachedDemandSource(upstream, cache.NewInMemoryCache(), time.Minute)
	ctx := context.Background()
	now := time.Now().UTC()

	first, err := source.CurrentDemand(ctx, "11455", now)
	require.NoError(t, err)
	first.CapacityUtilization = 0.99

	second, err := source.CurrentDemand(ctx, "11455", now)
	require.NoError(t, err)
	assert.Equal(t, 0.5, second.CapacityUtilization)
}
