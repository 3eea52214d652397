package tap

import (
	"sync"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// Summary 系统摘要
type Summary struct {
	Memory struct {
		Total uint64
		Free  uint64
		Used  uint64
		Usage float64
	}
	CPUUsage float64
	HardDisk struct {
		Total uint64
		Free  uint64
		Used  uint64
		Usage float64
	}
	NetWork   []NetWorkInfo
	Sessions  int
	Listeners int
	Running   bool
}

// NetWorkInfo 网速信息
type NetWorkInfo struct {
	Name         string
	Receive      uint64
	Sent         uint64
	ReceiveSpeed uint64
	SentSpeed    uint64
}

type summary struct {
	sync.Mutex
	lastNetWork []net.IOCountersStat
}

// collect 采集一次，网速为与上次采集之间的差值
func (t *Tap) collect() (s Summary) {
	v, _ := mem.VirtualMemory()
	d, _ := disk.Usage("/")
	nv, _ := net.IOCounters(true)

	if v != nil {
		s.Memory.Total = v.Total >> 20
		s.Memory.Free = v.Available >> 20
		s.Memory.Used = v.Used >> 20
		s.Memory.Usage = v.UsedPercent
	}
	// 间隔为 0 时与上次调用比较，不阻塞
	if cc, _ := cpu.Percent(0, false); len(cc) > 0 {
		s.CPUUsage = cc[0]
	}
	if d != nil {
		s.HardDisk.Free = d.Free >> 30
		s.HardDisk.Total = d.Total >> 30
		s.HardDisk.Used = d.Used >> 30
		s.HardDisk.Usage = d.UsedPercent
	}
	t.summary.Lock()
	last := t.summary.lastNetWork
	t.summary.lastNetWork = nv
	t.summary.Unlock()
	s.NetWork = []NetWorkInfo{}
	for i, n := range nv {
		info := NetWorkInfo{
			Name:    n.Name,
			Receive: n.BytesRecv,
			Sent:    n.BytesSent,
		}
		if len(last) > i && last[i].Name == n.Name {
			info.ReceiveSpeed = n.BytesRecv - last[i].BytesRecv
			info.SentSpeed = n.BytesSent - last[i].BytesSent
		}
		s.NetWork = append(s.NetWork, info)
	}
	s.Sessions = t.Registry.Len()
	s.Listeners = t.listeners.Len()
	s.Running = t.Running()
	return
}
