package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestAddWriter(t *testing.T) {
	var buf bytes.Buffer
	AddWriter(&buf)
	defer DeleteWriter(&buf)
	With(zap.String("component", "test")).Info("hello tap")
	require.Contains(t, buf.String(), "hello tap")
	require.Contains(t, buf.String(), "test")
}

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")
	var buf bytes.Buffer
	AddWriter(&buf)
	defer DeleteWriter(&buf)
	require.NoError(t, SetLevel("warn"))
	Info("hidden")
	Warnf("%s", "shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
	require.Error(t, SetLevel("loud"))
}

func TestMultipleWriterDropsBroken(t *testing.T) {
	var buf bytes.Buffer
	m := &MultipleWriter{}
	m.Add(failWriter{})
	m.Add(&buf)
	n, err := m.Write([]byte("x"))
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Len(t, m.writers, 1)
	require.Equal(t, "x", buf.String())
}
