package codec

import (
	"encoding/binary"
	"io"
)

const (
	WAV_HEADER_SIZE = 44
	// 直播流无法预知长度，RIFF 与 data 块大小都填最大值
	WAV_SIZE_UNKNOWN = 0xFFFFFFFF
	WAV_FORMAT_PCM   = 1
)

// WAVHeader 生成流式 WAV 头
func WAVHeader(sampleRate, channels, bitsPerSample int) []byte {
	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign
	b := make([]byte, 0, WAV_HEADER_SIZE)
	b = append(b, "RIFF"...)
	b = binary.LittleEndian.AppendUint32(b, WAV_SIZE_UNKNOWN)
	b = append(b, "WAVE"...)
	b = append(b, "fmt "...)
	b = binary.LittleEndian.AppendUint32(b, 16)
	b = binary.LittleEndian.AppendUint16(b, WAV_FORMAT_PCM)
	b = binary.LittleEndian.AppendUint16(b, uint16(channels))
	b = binary.LittleEndian.AppendUint32(b, uint32(sampleRate))
	b = binary.LittleEndian.AppendUint32(b, uint32(byteRate))
	b = binary.LittleEndian.AppendUint16(b, uint16(blockAlign))
	b = binary.LittleEndian.AppendUint16(b, uint16(bitsPerSample))
	b = append(b, "data"...)
	b = binary.LittleEndian.AppendUint32(b, WAV_SIZE_UNKNOWN)
	return b
}

// StreamingWAVHeader 8kHz 单声道 16bit
var StreamingWAVHeader = WAVHeader(SampleRate, Channels, BitsPerSample)

func WriteWAVHeader(w io.Writer) (err error) {
	_, err = w.Write(StreamingWAVHeader)
	return
}
