package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	t.Run(t.Name(), func(t *testing.T) {
		calls := 0
		err := Retry(3, 0, func() error {
			if calls++; calls < 3 {
				return errors.New("busy")
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 3, calls)
	})
	t.Run("exhausted", func(t *testing.T) {
		calls := 0
		err := Retry(2, 0, func() error {
			calls++
			return errors.New("busy")
		})
		require.EqualError(t, err, "busy")
		require.Equal(t, 2, calls)
	})
	t.Run("stop", func(t *testing.T) {
		calls := 0
		stop := errors.New("fatal")
		err := Retry(5, 0, func() error {
			calls++
			return RetryStopErr(stop)
		})
		require.ErrorIs(t, err, stop)
		require.Equal(t, 1, calls)
	})
}

func TestIsLANIp(t *testing.T) {
	for ip, want := range map[string]bool{
		"127.0.0.1":   true,
		"10.1.2.3":    true,
		"172.20.0.1":  true,
		"192.168.1.1": true,
		"8.8.8.8":     false,
		"bad":         false,
	} {
		got, _ := IsLANAddr(ip)
		require.Equal(t, want, got, ip)
	}
}
