package util_test

import (
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gasession/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponentialBackoffTimer(t *testing.T) {
	// Equation: math.Pow(2.0, float64(x.retryCount))/64 + 0.5, max 2 seconds
	timer := util.NewExpRetryTimer(10)

	t0 := util.CalcWaitTime(timer)
	assert.Greater(t, int64(time.Second), int64(t0))
	assert.Less(t, int64(500*time.Millisecond), int64(t0))

	prev := t0
	for i := 0; i < 6; i++ {
		w := util.CalcWaitTime(timer)
		assert.GreaterOrEqual(t, int64(w), int64(prev))
		prev = w
	}

	// 2^7/64 + 0.5 = 2.5 is limited to 2
	assert.Equal(t, 2*time.Second, util.CalcWaitTime(timer))
}

func TestRetryTimerRun(t *testing.T) {
	t.Run("Exit at first call", func(tt *testing.T) {
		calls := 0
		err := util.NewExpRetryTimer(3).Run(func(seq int) (bool, error) {
			calls++
			return true, nil
		})
		require.NoError(tt, err)
		assert.Equal(tt, 1, calls)
	})

	t.Run("Error stops retry", func(tt *testing.T) {
		errStop := errors.New("stop")
		err := util.NewExpRetryTimer(3).Run(func(seq int) (bool, error) {
			return false, errStop
		})
		assert.Equal(tt, errStop, err)
	})

	t.Run("Limit exceeded", func(tt *testing.T) {
		var seqs []int
		err := util.NewExpRetryTimer(2).Run(func(seq int) (bool, error) {
			seqs = append(seqs, seq)
			return false, nil
		})
		assert.Equal(tt, util.ErrRetryLimitExceeded, err)
		assert.Equal(tt, []int{0, 1}, seqs)
	})
}
