package util

import "time"

// CalcWaitTime exposes wait time calculation of exponential backoff timer
func CalcWaitTime(timer RetryTimer) time.Duration {
	return timer.(*expRetryTimer).calcWaitTime()
}
