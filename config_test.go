package parallel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuildConfig_Defaults(t *testing.T) {
	cfg, err := buildConfig(nil)
	require.NoError(t, err)

	require.Equal(t, uint(0), cfg.PoolSize)
	require.Equal(t, DynamicQueue, cfg.Strategy)
	require.Equal(t, None, cfg.Balancer)
	require.Equal(t, CollectAll, cfg.FailurePolicy)
	require.Zero(t, cfg.DispatchOverhead, "batching is off until an overhead estimate is supplied")
	require.Equal(t, 4.0, cfg.OverheadThreshold)
	require.Equal(t, 4.0, cfg.BatchingFactor)
	require.Equal(t, uint(0), cfg.QueueCapacity)
	require.Equal(t, time.Duration(0), cfg.SubmitTimeout)
	require.False(t, cfg.PinSlots)
	require.NotNil(t, cfg.Metrics)
}

func TestBuildConfig_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{name: "pool size zero", opt: WithPoolSize(0)},
		{name: "unknown strategy", opt: WithStrategy(Strategy(42))},
		{name: "unknown failure policy", opt: WithFailurePolicy(FailurePolicy(42))},
		{name: "dispatch overhead zero", opt: WithDispatchOverhead(0)},
		{name: "dispatch overhead negative", opt: WithDispatchOverhead(-1)},
		{name: "overhead threshold zero", opt: WithOverheadThreshold(0)},
		{name: "batching factor zero", opt: WithBatchingFactor(0)},
		{name: "negative submit timeout", opt: WithSubmitTimeout(-time.Second)},
		{name: "nil metrics provider", opt: WithMetrics(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildConfig([]Option{tt.opt})
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestBuildConfig_NilOptionsSkipped(t *testing.T) {
	cfg, err := buildConfig([]Option{nil, WithPoolSize(2), nil})
	require.NoError(t, err)
	require.Equal(t, uint(2), cfg.PoolSize)
}
