package tap

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
	"m7s.live/tap/v4/config"
	"m7s.live/tap/v4/log"
	"m7s.live/tap/v4/util"
)

var ErrInvalidSSRC = errors.New("invalid ssrc")

// Tap 接收 RTP，按 SSRC 统计，并把选中的 SSRC 解码后转发给播放端
type Tap struct {
	*zap.Logger
	Config   *config.Engine
	Registry *Registry
	Bus      EventBus.Bus

	ctx context.Context

	selMu    sync.RWMutex
	selected uint32
	has      bool
	relay    util.Queue[[]byte]

	mu   sync.Mutex // 串行化 Start/Stop
	conn *net.UDPConn
	stop chan struct{}
	done chan struct{}

	received  atomic.Uint64
	malformed atomic.Uint64
	relayed   atomic.Uint64

	listeners util.Map[string, *listener]
	summary   summary
}

// New 创建实例并注册 http 接口，ctx 结束时所有播放连接都会断开
func New(ctx context.Context, cfg *config.Engine) *Tap {
	if cfg == nil {
		cfg = config.New()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	t := &Tap{
		Logger:   log.With(zap.String("component", "tap")),
		Config:   cfg,
		Registry: NewRegistry(),
		Bus:      newBus(),
		ctx:      ctx,
	}
	t.relay.MaxLen = cfg.Relay.MaxChunks
	t.listeners.Init()
	t.registerHandler()
	return t
}

// Select 切换监听对象：未选中则选中，再次选择同一个则取消，选择另一个则直接切换。
// 每次变化都会清空转发队列。
func (t *Tap) Select(ssrc uint32) (selected uint32, ok bool) {
	t.selMu.Lock()
	if t.has && t.selected == ssrc {
		t.selected, t.has = 0, false
	} else {
		t.selected, t.has = ssrc, true
	}
	selected, ok = t.selected, t.has
	t.relay.Clear()
	t.selMu.Unlock()
	if ok {
		t.Info("listening", zap.Uint32("ssrc", selected))
	} else {
		t.Info("stop listening", zap.Uint32("ssrc", ssrc))
	}
	t.Bus.Publish(Event_SELECTION_CHANGE, selected, ok)
	return
}

func (t *Tap) Selected() (uint32, bool) {
	t.selMu.RLock()
	defer t.selMu.RUnlock()
	return t.selected, t.has
}

func (t *Tap) Deselect() {
	t.selMu.Lock()
	had := t.has
	t.selected, t.has = 0, false
	t.relay.Clear()
	t.selMu.Unlock()
	if had {
		t.Bus.Publish(Event_SELECTION_CHANGE, uint32(0), false)
	}
}

// Sessions 当前所有会话，带上是否正在监听
func (t *Tap) Sessions() []SessionInfo {
	selected, ok := t.Selected()
	list := t.Registry.Snapshot()
	infos := make([]SessionInfo, len(list))
	for i := range list {
		infos[i] = list[i].Info(ok && list[i].SSRC == selected)
	}
	return infos
}

type Status struct {
	Running       bool           `json:"running"`
	ListenAddr    string         `json:"listen_addr"`
	ListeningSSRC *uint32        `json:"listening_ssrc"`
	Sessions      int            `json:"sessions"`
	QueuedChunks  int            `json:"queued_chunks"`
	DroppedChunks uint64         `json:"dropped_chunks"`
	Received      uint64         `json:"received"`
	Malformed     uint64         `json:"malformed"`
	Relayed       uint64         `json:"relayed"`
	Listeners     []ListenerInfo `json:"listeners"`
}

func (t *Tap) Status() (s Status) {
	s.Running = t.Running()
	s.ListenAddr = t.Config.Capture.ListenAddr
	if addr := t.Addr(); addr != nil {
		s.ListenAddr = addr.String()
	}
	if ssrc, ok := t.Selected(); ok {
		s.ListeningSSRC = &ssrc
	}
	s.Sessions = t.Registry.Len()
	s.QueuedChunks = t.relay.Len()
	s.DroppedChunks = t.relay.Dropped()
	s.Received = t.received.Load()
	s.Malformed = t.malformed.Load()
	s.Relayed = t.relayed.Load()
	s.Listeners = util.MapList(&t.listeners, func(_ string, l *listener) ListenerInfo {
		return l.Info()
	})
	return
}
