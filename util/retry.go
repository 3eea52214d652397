package util

import (
	"math/rand"
	"time"
)

// Retry 失败后按指数退避重试，attempts 为总尝试次数
func Retry(attempts int, sleep time.Duration, f func() error) error {
	if err := f(); err != nil {
		if s, ok := err.(retryStop); ok {
			return s.error
		}

		if attempts--; attempts > 0 {
			// 加一点随机，避免同时重试
			if sleep > 0 {
				jitter := time.Duration(rand.Int63n(int64(sleep)))
				sleep = sleep + jitter/2
			}
			time.Sleep(sleep)
			return Retry(attempts, 2*sleep, f)
		}
		return err
	}

	return nil
}

type retryStop struct {
	error
}

func RetryStopErr(err error) retryStop {
	return retryStop{err}
}
