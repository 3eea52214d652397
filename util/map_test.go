package util

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type counter struct {
	n int
}

func TestMapUpsert(t *testing.T) {
	var m Map[uint32, *counter]
	m.Init()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Upsert(7, func() *counter { return &counter{n: 1} }, func(c *counter) { c.n++ })
		}()
	}
	wg.Wait()
	c, ok := m.Get(7)
	require.True(t, ok)
	require.Equal(t, 50, c.n)
	require.Equal(t, 1, m.Len())
}

func TestMapDeleteFunc(t *testing.T) {
	var m Map[int, int]
	m.Init()
	for i := 0; i < 10; i++ {
		m.Set(i, i)
	}
	require.Equal(t, 5, m.DeleteFunc(func(k, v int) bool { return v%2 == 0 }))
	keys := MapList(&m, func(k, v int) int { return k })
	sort.Ints(keys)
	require.Equal(t, []int{1, 3, 5, 7, 9}, keys)
	m.Clear()
	require.Equal(t, 0, m.Len())
	_, ok := m.Get(1)
	require.False(t, ok)
}
