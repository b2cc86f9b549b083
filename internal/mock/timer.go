package mock

import "github.com/m-mizutani/gasession/internal/util"

// RetryTimer runs callback up to limit times without waiting
type RetryTimer struct {
	limit int
}

// NewRetryTimer is util.RetryTimerFactory of RetryTimer
func NewRetryTimer(limit int) util.RetryTimer {
	return &RetryTimer{limit: limit}
}

// Run of RetryTimer
func (x *RetryTimer) Run(callback util.RetryTimerCallback) error {
	for i := 0; i < x.limit; i++ {
		exit, err := callback(i)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
	}
	return util.ErrRetryLimitExceeded
}
