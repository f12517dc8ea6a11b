package mp4muxer

import (
	"encoding/binary"

	"github.com/Eyevinn/mp4ff/avc"
)

// ToAVCC converts an Annex B access unit to 4-byte length prefixed NAL units.
// Parameter sets and access unit delimiters are dropped; they live in avcC.
func ToAVCC(data []byte) []byte {
	nalus := avc.ExtractNalusFromByteStream(data)

	size := 0
	for _, nalu := range nalus {
		size += 4 + len(nalu)
	}

	out := make([]byte, 0, size)
	for _, nalu := range nalus {
		if len(nalu) == 0 {
			continue
		}
		switch avc.GetNaluType(nalu[0]) {
		case avc.NALU_SPS, avc.NALU_PPS, avc.NALU_AUD:
			continue
		}
		out = binary.BigEndian.AppendUint32(out, uint32(len(nalu)))
		out = append(out, nalu...)
	}
	return out
}
