package h264encoder

import (
	"bytes"

	"github.com/Eyevinn/mp4ff/avc"
)

var startCode = []byte{0, 0, 1}

// accessUnit is one encoded picture in Annex B form.
type accessUnit struct {
	data     []byte
	keyframe bool
}

// auSplitter assembles an Annex B byte stream into access units.
// Bytes may arrive in arbitrary chunks.
type auSplitter struct {
	buf []byte

	cur    [][]byte
	curVCL bool
	curKey bool

	sps [][]byte
	pps [][]byte
}

// Write consumes a chunk of the stream and returns the access units it completed.
func (s *auSplitter) Write(p []byte) []accessUnit {
	s.buf = append(s.buf, p...)

	start := bytes.Index(s.buf, startCode)
	if start < 0 {
		return nil
	}

	var out []accessUnit
	for {
		next := bytes.Index(s.buf[start+3:], startCode)
		if next < 0 {
			break
		}
		next += start + 3
		out = s.push(s.buf[start+3:next], out)
		start = next
	}

	rest := make([]byte, len(s.buf)-start)
	copy(rest, s.buf[start:])
	s.buf = rest
	return out
}

// Flush returns the trailing access unit at end of stream.
func (s *auSplitter) Flush() []accessUnit {
	var out []accessUnit
	if start := bytes.Index(s.buf, startCode); start >= 0 {
		out = s.push(s.buf[start+3:], out)
	}
	s.buf = nil
	if len(s.cur) > 0 {
		out = append(out, s.emit())
	}
	return out
}

// ParameterSets returns the first SPS and PPS seen, if any.
func (s *auSplitter) ParameterSets() (sps, pps [][]byte, ok bool) {
	return s.sps, s.pps, len(s.sps) > 0 && len(s.pps) > 0
}

func (s *auSplitter) push(raw []byte, out []accessUnit) []accessUnit {
	// The zero of a 4-byte start code belongs to the next NAL unit.
	raw = bytes.TrimRight(raw, "\x00")
	if len(raw) == 0 {
		return out
	}
	nal := append([]byte(nil), raw...)

	typ := avc.GetNaluType(nal[0])
	vcl := typ == avc.NALU_NON_IDR || typ == avc.NALU_IDR

	var boundary bool
	switch {
	case vcl:
		// first_mb_in_slice == 0 starts a new picture
		boundary = s.curVCL && len(nal) > 1 && nal[1]&0x80 != 0
	case typ == avc.NALU_AUD, typ == avc.NALU_SPS, typ == avc.NALU_PPS, typ == avc.NALU_SEI:
		boundary = s.curVCL
	}
	if boundary {
		out = append(out, s.emit())
	}

	switch typ {
	case avc.NALU_SPS:
		if len(s.sps) == 0 {
			s.sps = [][]byte{nal}
		}
	case avc.NALU_PPS:
		if len(s.pps) == 0 {
			s.pps = [][]byte{nal}
		}
	case avc.NALU_IDR:
		s.curKey = true
	}
	if vcl {
		s.curVCL = true
	}
	s.cur = append(s.cur, nal)
	return out
}

func (s *auSplitter) emit() accessUnit {
	size := 0
	for _, n := range s.cur {
		size += 4 + len(n)
	}
	data := make([]byte, 0, size)
	for _, n := range s.cur {
		data = append(data, 0, 0, 0, 1)
		data = append(data, n...)
	}
	au := accessUnit{data: data, keyframe: s.curKey}
	s.cur = nil
	s.curVCL = false
	s.curKey = false
	return au
}
