package tap

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"m7s.live/tap/v4/codec"
)

func TestRegistryRecord(t *testing.T) {
	t.Run(t.Name(), func(t *testing.T) {
		r := NewRegistry()
		t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)
		assert.True(t, r.Record(frame(t, 7, 1, []byte{1, 2}, sender), t0))
		assert.False(t, r.Record(frame(t, 7, 2, []byte{3}, sender), t0.Add(time.Second)))
		other := &net.UDPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 5000}
		assert.False(t, r.Record(frame(t, 7, 3, nil, other), t0.Add(2*time.Second)))

		s, ok := r.Get(7)
		require.True(t, ok)
		assert.Equal(t, uint64(3), s.PacketCount)
		assert.Equal(t, t0, s.FirstSeen)
		assert.Equal(t, t0.Add(2*time.Second), s.LastSeen)
		assert.Equal(t, "192.168.1.20", s.IP, "sender of a known session is kept")
		assert.Equal(t, 40000, s.Port)
		assert.Equal(t, uint16(3), s.LastSequence)
		assert.Equal(t, uint64(3), s.Bytes)
		assert.Equal(t, codec.PayloadTypePCMU, s.PayloadType)

		info := s.Info(true)
		assert.Equal(t, "2024-05-01 10:00:00", info.FirstSeen)
		assert.Equal(t, "2024-05-01 10:00:02", info.LastSeen)
		assert.Equal(t, "pcmu", info.Codec)
		assert.True(t, info.LAN)
		assert.True(t, info.Selected)
	})
	t.Run("snapshot is a sorted copy", func(t *testing.T) {
		r := NewRegistry()
		now := time.Now()
		for _, ssrc := range []uint32{30, 10, 20} {
			r.Record(frame(t, ssrc, 1, nil, sender), now)
		}
		list := r.Snapshot()
		require.Len(t, list, 3)
		assert.Equal(t, []uint32{10, 20, 30}, []uint32{list[0].SSRC, list[1].SSRC, list[2].SSRC})
		list[0].PacketCount = 100
		s, _ := r.Get(10)
		assert.Equal(t, uint64(1), s.PacketCount)
	})
	t.Run("reset", func(t *testing.T) {
		r := NewRegistry()
		r.Record(frame(t, 1, 1, nil, sender), time.Now())
		r.Reset()
		assert.Zero(t, r.Len())
		assert.Empty(t, r.Snapshot())
		assert.True(t, r.Record(frame(t, 1, 2, nil, sender), time.Now()))
	})
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for _, ssrc := range []uint32{1, 2} {
		f := frame(t, ssrc, 1, nil, sender)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				r.Record(f, time.Now())
			}
		}()
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			r.Snapshot()
		}
	}()
	wg.Wait()
	<-done
	for _, ssrc := range []uint32{1, 2} {
		s, ok := r.Get(ssrc)
		require.True(t, ok)
		assert.Equal(t, uint64(1000), s.PacketCount)
	}
}
