package tap

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"m7s.live/tap/v4/codec"
)

// listener 一个正在播放的 http 连接
type listener struct {
	ID     string
	Remote string
	Since  time.Time
	bytes  atomic.Uint64
}

type ListenerInfo struct {
	ID     string `json:"id"`
	Remote string `json:"remote"`
	Since  string `json:"since"`
	Bytes  uint64 `json:"bytes"`
}

func (l *listener) Info() ListenerInfo {
	return ListenerInfo{l.ID, l.Remote, l.Since.Format(TimeLayout), l.bytes.Load()}
}

// ServeStream 输出无限长的 WAV 流，先写头，之后把转发队列里的 PCM 原样写出。
// 多个连接同时播放时共享同一个队列，每块数据只会被其中一个取走。
func (t *Tap) ServeStream(w http.ResponseWriter, r *http.Request) {
	header := w.Header()
	header.Set("Content-Type", "audio/wav")
	header.Set("Cache-Control", "no-cache, no-store")
	header.Set("X-Accel-Buffering", "no")
	flusher, _ := w.(http.Flusher)
	flush := func() {
		if flusher != nil {
			flusher.Flush()
		}
	}

	l := &listener{ID: uuid.NewString(), Remote: r.RemoteAddr, Since: time.Now()}
	t.listeners.Set(l.ID, l)
	defer t.listeners.Delete(l.ID)
	logger := t.With(zap.String("listener", l.ID), zap.String("remote", l.Remote))
	logger.Info("stream open")
	defer func() {
		logger.Info("stream close", zap.Uint64("bytes", l.bytes.Load()))
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	// 服务关闭时也要结束
	defer context.AfterFunc(t.ctx, cancel)()

	if err := codec.WriteWAVHeader(w); err != nil {
		return
	}
	flush()

	idle := t.Config.Relay.IdleTimeout
	if idle <= 0 {
		idle = time.Second
	}
	var silence []byte
	if t.Config.Relay.KeepaliveSilence {
		silence = make([]byte, int(idle/time.Millisecond)*codec.BytesPerMs)
	}
	for {
		gen := t.relay.Generation()
		chunk, ok := t.relay.Pop(ctx, idle)
		if ctx.Err() != nil {
			// 连接已经断开，取到的数据留给其他播放端
			if ok {
				t.relay.Requeue(chunk, gen)
			}
			return
		}
		if !ok {
			if silence == nil {
				continue
			}
			chunk = silence
		}
		if _, err := w.Write(chunk); err != nil {
			logger.Debug("stream write", zap.Error(err))
			return
		}
		l.bytes.Add(uint64(len(chunk)))
		flush()
	}
}
