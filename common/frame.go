package common

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"

	"github.com/pion/rtp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"m7s.live/tap/v4/codec"
)

// RTP 固定头长度
const RTP_HEADER_SIZE = 12

var ErrFrameTooShort = errors.New("rtp frame too short")

// RTPFrame 一个 UDP 包解析出的 RTP 帧，处理完即丢弃。
// Payload 引用接收缓冲区，不可跨包持有。
type RTPFrame struct {
	rtp.Packet
	Addr *net.UDPAddr
}

// ParseRTPFrame 解析一个数据报，不足 12 字节直接拒绝。
// 只认固定头：SSRC 取 8~11 字节，12 字节之后全部作为负载，CSRC、扩展头和填充都不剥离。
func ParseRTPFrame(b []byte, addr *net.UDPAddr) (*RTPFrame, error) {
	if len(b) < RTP_HEADER_SIZE {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooShort, len(b))
	}
	frame := &RTPFrame{Addr: addr}
	// 头部和声明的长度不符时 pion 会报错，这里忽略，以固定头为准
	frame.Header.Unmarshal(b)
	frame.Version = b[0] >> 6
	frame.Padding = b[0]&0x20 != 0
	frame.Extension = b[0]&0x10 != 0
	frame.Marker = b[1]&0x80 != 0
	frame.PayloadType = b[1] & 0x7F
	frame.SequenceNumber = binary.BigEndian.Uint16(b[2:4])
	frame.Timestamp = binary.BigEndian.Uint32(b[4:8])
	frame.SSRC = binary.BigEndian.Uint32(b[8:12])
	frame.Payload = b[RTP_HEADER_SIZE:]
	return frame, nil
}

func (frame *RTPFrame) Codec() codec.PayloadType {
	return codec.PayloadType(frame.PayloadType)
}

func (frame *RTPFrame) IP() string {
	if frame.Addr == nil {
		return ""
	}
	return frame.Addr.IP.String()
}

func (frame *RTPFrame) Port() int {
	if frame.Addr == nil {
		return 0
	}
	return frame.Addr.Port
}

// MarshalLogObject 日志输出用
func (frame *RTPFrame) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint32("ssrc", frame.SSRC)
	enc.AddUint16("seq", frame.SequenceNumber)
	enc.AddUint32("ts", frame.Timestamp)
	enc.AddUint8("pt", frame.PayloadType)
	enc.AddInt("payload", len(frame.Payload))
	if frame.Addr != nil {
		enc.AddString("from", frame.Addr.String())
	}
	return nil
}

func (frame *RTPFrame) Field() zap.Field {
	return zap.Object("frame", frame)
}
