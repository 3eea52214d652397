package tap

import (
	"errors"
	"net"
	"os"
	"time"

	"go.uber.org/zap"
	"m7s.live/tap/v4/codec"
	"m7s.live/tap/v4/common"
	"m7s.live/tap/v4/util"
)

var aLongTimeAgo = time.Unix(1, 0)

// Start 开始接收，已经在接收时什么也不做。绑定失败返回错误，状态保持停止。
func (t *Tap) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running() {
		return nil
	}
	var conn *net.UDPConn
	err := util.Retry(t.Config.Capture.BindRetry+1, 100*time.Millisecond, func() (err error) {
		conn, err = util.ListenUDP(t.Config.Capture.ListenAddr, t.Config.Capture.NetworkBuffer)
		// 地址本身写错了，重试也没用
		var addrErr *net.AddrError
		var dnsErr *net.DNSError
		if errors.As(err, &addrErr) || errors.As(err, &dnsErr) {
			return util.RetryStopErr(err)
		}
		return
	})
	if err != nil {
		t.Error("capture bind failed", zap.String("addr", t.Config.Capture.ListenAddr), zap.Error(err))
		return err
	}
	t.conn = conn
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go t.capture(conn, t.stop, t.done)
	addr := conn.LocalAddr().String()
	t.Info("capture started", zap.String("addr", addr))
	t.Bus.Publish(Event_CAPTURE_START, addr)
	return nil
}

// Stop 停止接收并等待接收协程退出，已经停止时什么也不做。
func (t *Tap) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done == nil {
		return
	}
	close(t.stop)
	// 让阻塞中的读立即返回，socket 由接收协程自己关闭
	t.conn.SetReadDeadline(aLongTimeAgo)
	<-t.done
	t.conn, t.stop, t.done = nil, nil, nil
	t.relay.Clear()
	t.Info("capture stopped")
	t.Bus.Publish(Event_CAPTURE_STOP)
}

func (t *Tap) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running()
}

// 接收协程自己异常退出也算停止
func (t *Tap) running() bool {
	if t.done == nil {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

// Addr 正在接收时返回实际绑定的地址
func (t *Tap) Addr() net.Addr {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running() {
		return nil
	}
	return t.conn.LocalAddr()
}

func (t *Tap) capture(conn *net.UDPConn, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer conn.Close()
	buf := make([]byte, t.Config.Capture.ReadBufferSize)
	var tempDelay time.Duration
	lastEvict := time.Now()
	for {
		// 先设置超时再检查停止信号，保证 Stop 设置的超时不会被覆盖
		conn.SetReadDeadline(time.Now().Add(t.Config.Capture.ReadTimeout))
		select {
		case <-stop:
			return
		default:
		}
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			switch {
			case errors.Is(err, os.ErrDeadlineExceeded):
				tempDelay = 0
				lastEvict = t.evict(lastEvict, time.Now())
				continue
			case errors.Is(err, net.ErrClosed):
				t.Warn("capture socket closed", zap.Error(err))
				return
			}
			if tempDelay == 0 {
				tempDelay = 5 * time.Millisecond
			} else {
				tempDelay *= 2
			}
			if max := 1 * time.Second; tempDelay > max {
				tempDelay = max
			}
			t.Warn("capture read error", zap.Error(err), zap.Duration("retry", tempDelay))
			select {
			case <-stop:
				return
			case <-time.After(tempDelay):
			}
			continue
		}
		tempDelay = 0
		now := time.Now()
		t.handle(buf[:n], addr, now)
		lastEvict = t.evict(lastEvict, now)
	}
}

// handle 处理一个数据报，buf 在返回后会被复用
func (t *Tap) handle(b []byte, addr *net.UDPAddr, now time.Time) {
	t.received.Add(1)
	frame, err := common.ParseRTPFrame(b, addr)
	if err != nil {
		t.malformed.Add(1)
		t.Debug("drop datagram", zap.Stringer("from", addr), zap.Error(err))
		return
	}
	if t.Registry.Record(frame, now) {
		t.Info("new session", frame.Field())
		if s, ok := t.Registry.Get(frame.SSRC); ok {
			t.Bus.Publish(Event_SESSION_NEW, s)
		}
	}
	// 持有读锁直到入队，切换监听时不会有旧的数据混进来
	t.selMu.RLock()
	if t.has && t.selected == frame.SSRC {
		t.relay.Push(codec.DecodeMuLaw(frame.Payload))
		t.relayed.Add(1)
	}
	t.selMu.RUnlock()
}

// evict 最多每个 ReadTimeout 清理一次空闲会话，返回本次检查的时间
func (t *Tap) evict(last, now time.Time) time.Time {
	ttl := t.Config.Capture.SessionTTL
	if ttl <= 0 || now.Sub(last) < t.Config.Capture.ReadTimeout {
		return last
	}
	if n := t.Registry.Evict(now.Add(-ttl)); n > 0 {
		t.Debug("evict idle sessions", zap.Int("count", n))
	}
	return now
}
