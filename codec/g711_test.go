package codec

import (
	"encoding/binary"
	"testing"

	"github.com/bluenviron/mediacommon/v2/pkg/codecs/g711"
	"github.com/stretchr/testify/require"
)

func TestMuLawZero(t *testing.T) {
	require.Equal(t, int16(0), MuLawToLinear(0xFF))
	require.Equal(t, int16(0), MuLawToLinear(0x7F))
	require.Equal(t, int16(-32124), MuLawToLinear(0x00))
	require.Equal(t, int16(32124), MuLawToLinear(0x80))
}

func TestMuLawSymmetry(t *testing.T) {
	for i := 0; i < 0x80; i++ {
		neg, pos := MuLawTable[i], MuLawTable[i|0x80]
		require.Equalf(t, -pos, neg, "entry %#02x is not the mirror of %#02x", i, i|0x80)
		require.LessOrEqualf(t, neg, int16(0), "entry %#02x must not be positive", i)
	}
}

func TestMuLawMonotonic(t *testing.T) {
	// 每个半轴内幅度随码字增大而减小
	for i := 1; i < 0x80; i++ {
		require.Greater(t, MuLawTable[i], MuLawTable[i-1])
		require.Less(t, MuLawTable[i|0x80], MuLawTable[(i-1)|0x80])
	}
}

func TestMuLawDeterministic(t *testing.T) {
	for i := 0; i < 256; i++ {
		require.Equal(t, MuLawToLinear(byte(i)), MuLawToLinear(byte(i)))
	}
}

func TestMuLawMatchesReference(t *testing.T) {
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	var ref g711.Mulaw
	ref.Unmarshal(all)
	samples := []byte(ref)
	require.Len(t, samples, 512)
	for i := 0; i < 256; i++ {
		// 参考实现输出为大端序
		want := int16(binary.BigEndian.Uint16(samples[i*2:]))
		require.Equalf(t, want, MuLawTable[i], "entry %#02x", i)
	}
}

func TestDecodeMuLaw(t *testing.T) {
	t.Run(t.Name(), func(t *testing.T) {
		payload := []byte{0x00, 0x7F, 0x80, 0xFF, 0x10}
		pcm := DecodeMuLaw(payload)
		require.Len(t, pcm, len(payload)*2)
		for i, b := range payload {
			require.Equal(t, MuLawTable[b], int16(binary.LittleEndian.Uint16(pcm[i*2:])))
		}
	})
	t.Run("empty", func(t *testing.T) {
		require.Empty(t, DecodeMuLaw(nil))
	})
	t.Run("append", func(t *testing.T) {
		dst := []byte{1, 2}
		out := DecodeMuLawTo(dst, []byte{0x80})
		require.Equal(t, []byte{1, 2, 0x7C, 0x7D}, out)
	})
}

func TestWAVHeader(t *testing.T) {
	h := StreamingWAVHeader
	require.Len(t, h, WAV_HEADER_SIZE)
	require.Equal(t, "RIFF", string(h[0:4]))
	require.Equal(t, uint32(WAV_SIZE_UNKNOWN), binary.LittleEndian.Uint32(h[4:8]))
	require.Equal(t, "WAVEfmt ", string(h[8:16]))
	require.Equal(t, uint32(16), binary.LittleEndian.Uint32(h[16:20]))
	require.Equal(t, uint16(1), binary.LittleEndian.Uint16(h[20:22]))
	require.Equal(t, uint16(1), binary.LittleEndian.Uint16(h[22:24]))
	require.Equal(t, uint32(8000), binary.LittleEndian.Uint32(h[24:28]))
	require.Equal(t, uint32(16000), binary.LittleEndian.Uint32(h[28:32]))
	require.Equal(t, uint16(2), binary.LittleEndian.Uint16(h[32:34]))
	require.Equal(t, uint16(16), binary.LittleEndian.Uint16(h[34:36]))
	require.Equal(t, "data", string(h[36:40]))
	require.Equal(t, uint32(WAV_SIZE_UNKNOWN), binary.LittleEndian.Uint32(h[40:44]))
}

func TestPayloadTypeString(t *testing.T) {
	require.Equal(t, "pcmu", PayloadTypePCMU.String())
	require.Equal(t, "pcma", PayloadTypePCMA.String())
	require.Equal(t, "dynamic(101)", PayloadType(101).String())
	require.Equal(t, "unknow", PayloadType(50).String())
}
