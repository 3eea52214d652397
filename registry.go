package tap

import (
	"sort"
	"time"

	"m7s.live/tap/v4/codec"
	"m7s.live/tap/v4/common"
	"m7s.live/tap/v4/util"
)

const TimeLayout = "2006-01-02 15:04:05"

// Session 一个 SSRC 的收包统计
type Session struct {
	SSRC          uint32
	PacketCount   uint64
	FirstSeen     time.Time
	LastSeen      time.Time
	IP            string
	Port          int
	PayloadType   codec.PayloadType
	LastSequence  uint16
	LastTimestamp uint32
	Bytes         uint64
}

type SessionInfo struct {
	SSRC         uint32 `json:"ssrc"`
	PacketCount  uint64 `json:"packet_count"`
	FirstSeen    string `json:"first_seen"`
	LastSeen     string `json:"last_seen"`
	SourceIP     string `json:"source_ip"`
	SourcePort   int    `json:"source_port"`
	LAN          bool   `json:"lan"`
	PayloadType  uint8  `json:"payload_type"`
	Codec        string `json:"codec"`
	LastSequence uint16 `json:"last_sequence"`
	Bytes        uint64 `json:"bytes"`
	Selected     bool   `json:"selected"`
}

func (s *Session) Info(selected bool) SessionInfo {
	lan, _ := util.IsLANAddr(s.IP)
	return SessionInfo{
		SSRC:         s.SSRC,
		PacketCount:  s.PacketCount,
		FirstSeen:    s.FirstSeen.Local().Format(TimeLayout),
		LastSeen:     s.LastSeen.Local().Format(TimeLayout),
		SourceIP:     s.IP,
		SourcePort:   s.Port,
		LAN:          lan,
		PayloadType:  uint8(s.PayloadType),
		Codec:        s.PayloadType.String(),
		LastSequence: s.LastSequence,
		Bytes:        s.Bytes,
		Selected:     selected,
	}
}

// Registry 按 SSRC 记录所有见过的发送端，停止接收后依然保留，只有 Reset 会清空
type Registry struct {
	util.Map[uint32, *Session]
}

func NewRegistry() *Registry {
	r := &Registry{}
	r.Init()
	return r
}

// Record 记录一帧，返回是否是新的 SSRC
func (r *Registry) Record(frame *common.RTPFrame, now time.Time) bool {
	return r.Upsert(frame.SSRC, func() *Session {
		return &Session{
			SSRC:          frame.SSRC,
			PacketCount:   1,
			FirstSeen:     now,
			LastSeen:      now,
			IP:            frame.IP(),
			Port:          frame.Port(),
			PayloadType:   frame.Codec(),
			LastSequence:  frame.SequenceNumber,
			LastTimestamp: frame.Timestamp,
			Bytes:         uint64(len(frame.Payload)),
		}
	}, func(s *Session) {
		s.PacketCount++
		s.LastSeen = now
		s.PayloadType = frame.Codec()
		s.LastSequence = frame.SequenceNumber
		s.LastTimestamp = frame.Timestamp
		s.Bytes += uint64(len(frame.Payload))
	})
}

// Get 返回会话的副本
func (r *Registry) Get(ssrc uint32) (s Session, ok bool) {
	r.RLock()
	defer r.RUnlock()
	var p *Session
	if p, ok = r.Map.Map[ssrc]; ok {
		s = *p
	}
	return
}

// Snapshot 按 SSRC 排序的副本
func (r *Registry) Snapshot() []Session {
	list := util.MapList(&r.Map, func(_ uint32, s *Session) Session {
		return *s
	})
	sort.Slice(list, func(i, j int) bool {
		return list[i].SSRC < list[j].SSRC
	})
	return list
}

func (r *Registry) Reset() {
	r.Clear()
}

// Evict 删除 olderThan 之前就没有再收到包的会话
func (r *Registry) Evict(olderThan time.Time) int {
	return r.DeleteFunc(func(_ uint32, s *Session) bool {
		return s.LastSeen.Before(olderThan)
	})
}
