package retry

import (
	"context"
	stdErrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, BackoffExponential, p.Mode)
	assert.Equal(t, 250*time.Millisecond, p.Initial)
	assert.Equal(t, 2*time.Second, p.Max)
	assert.Equal(t, 2, p.MaxRetries)
	require.NoError(t, p.Validate())
}

func TestNewPolicyOverrides(t *testing.T) {
	p := NewPolicy(BackoffFixed, 5*time.Second, 2*time.Second, 5)
	assert.Equal(t, 2*time.Second, p.Initial, "initial is clamped to max")
	assert.Equal(t, 2*time.Second, p.Max)
	assert.Equal(t, BackoffFixed, p.Mode)
	assert.Equal(t, 5, p.MaxRetries)

	unknown := NewPolicy("bogus", 0, 0, -1)
	assert.Equal(t, DefaultPolicy(), unknown)
}

func TestDelayModes(t *testing.T) {
	ms := time.Millisecond
	tests := []struct {
		name   string
		policy Policy
		want   []time.Duration
	}{
		{"fixed", NewPolicy(BackoffFixed, 100*ms, 500*ms, 3), []time.Duration{100 * ms, 100 * ms, 100 * ms}},
		{"linear", NewPolicy(BackoffLinear, 100*ms, 250*ms, 5), []time.Duration{100 * ms, 200 * ms, 250 * ms, 250 * ms}},
		{"exponential", NewPolicy(BackoffExponential, 50*ms, 160*ms, 5), []time.Duration{50 * ms, 100 * ms, 160 * ms, 160 * ms}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, want := range tt.want {
				assert.Equal(t, want, tt.policy.Delay(i+1), "retry %d", i+1)
			}
		})
	}

	p := NewPolicy(BackoffLinear, 10*ms, 20*ms, 1)
	assert.Zero(t, p.Delay(0))
	assert.Zero(t, p.Delay(-1))
}

func TestValidate(t *testing.T) {
	for _, p := range []Policy{
		{Mode: BackoffLinear, Initial: 0, Max: time.Second},
		{Mode: BackoffLinear, Initial: time.Second, Max: 0},
		{Mode: BackoffLinear, Initial: time.Second, Max: time.Second, MaxRetries: -1},
	} {
		err := p.Validate()
		require.Error(t, err)
		assert.Equal(t, errors.CategoryValidation, errors.GetCategory(err))
	}
}

func TestDo(t *testing.T) {
	p := NewPolicy(BackoffFixed, time.Millisecond, time.Millisecond, 2)
	boom := stdErrors.New("boom")

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := p.Do(context.Background(), func(int) (bool, error) {
			calls++
			if calls < 3 {
				return true, boom
			}
			return false, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var attempts []int
		err := p.Do(context.Background(), func(a int) (bool, error) {
			attempts = append(attempts, a)
			return true, boom
		})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, []int{0, 1, 2}, attempts)
	})

	t.Run("permanent failure stops immediately", func(t *testing.T) {
		calls := 0
		err := p.Do(context.Background(), func(int) (bool, error) {
			calls++
			return false, boom
		})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled context stops waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		slow := NewPolicy(BackoffFixed, time.Hour, time.Hour, 3)
		calls := 0
		err := slow.Do(ctx, func(int) (bool, error) {
			calls++
			return true, boom
		})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})
}
