package codec

import "strconv"

type PayloadType byte

// RFC 3551 静态负载类型
const (
	PayloadTypePCMU PayloadType = 0
	PayloadTypeGSM  PayloadType = 3
	PayloadTypeG723 PayloadType = 4
	PayloadTypePCMA PayloadType = 8
	PayloadTypeG722 PayloadType = 9
	PayloadTypeL16S PayloadType = 10
	PayloadTypeL16  PayloadType = 11
	PayloadTypeG729 PayloadType = 18
)

const (
	// 电话音频参数，解码后固定为 8kHz 单声道 16bit
	SampleRate    = 8000
	Channels      = 1
	BitsPerSample = 16
	BytesPerMs    = SampleRate * Channels * BitsPerSample / 8 / 1000
)

func (pt PayloadType) String() string {
	switch pt {
	case PayloadTypePCMU:
		return "pcmu"
	case PayloadTypeGSM:
		return "gsm"
	case PayloadTypeG723:
		return "g723"
	case PayloadTypePCMA:
		return "pcma"
	case PayloadTypeG722:
		return "g722"
	case PayloadTypeL16S, PayloadTypeL16:
		return "l16"
	case PayloadTypeG729:
		return "g729"
	}
	if pt >= 96 && pt <= 127 {
		return "dynamic(" + strconv.Itoa(int(pt)) + ")"
	}
	return "unknow"
}
