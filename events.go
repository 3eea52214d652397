package tap

import (
	"github.com/asaskevich/EventBus"
)

const (
	Event_SESSION_NEW      = "session:new"      // 首次收到某个 SSRC，参数 Session
	Event_SELECTION_CHANGE = "selection:change" // 监听对象变化，参数 (ssrc uint32, selected bool)
	Event_CAPTURE_START    = "capture:start"    // 开始接收，参数为实际监听地址
	Event_CAPTURE_STOP     = "capture:stop"
)

func newBus() EventBus.Bus {
	return EventBus.New()
}
