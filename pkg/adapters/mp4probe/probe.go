// Package mp4probe reads the video track metadata of an MP4 file.
package mp4probe

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
)

// Codec represents a video codec type.
type Codec string

const (
	CodecH264    Codec = "h264"
	CodecHEVC    Codec = "hevc"
	CodecAV1     Codec = "av1"
	CodecUnknown Codec = "unknown"
)

// ErrNoVideoTrack is returned when the file has no video track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track found")

// Sample describes one video sample.
type Sample struct {
	PtsUs    int64
	DurUs    int64
	Size     int
	Keyframe bool
}

// Info describes the video track of an MP4 file.
type Info struct {
	Codec      Codec
	Width      int
	Height     int
	Timescale  uint32
	Fragmented bool
	Fragments  int
	Profile    int
	Level      int
	Samples    []Sample
}

// Keyframes returns the number of sync samples.
func (i *Info) Keyframes() int {
	n := 0
	for _, s := range i.Samples {
		if s.Keyframe {
			n++
		}
	}
	return n
}

// DurationMs returns the presentation duration of the track.
func (i *Info) DurationMs() int64 {
	if len(i.Samples) == 0 {
		return 0
	}
	last := i.Samples[len(i.Samples)-1]
	return (last.PtsUs + last.DurUs) / 1000
}

// FrameRate estimates the frame rate from the sample count and duration.
func (i *Info) FrameRate() float64 {
	d := i.DurationMs()
	if d == 0 {
		return 0
	}
	return float64(len(i.Samples)) * 1000 / float64(d)
}

// ProbeFile reads the video track of the MP4 file at path.
func ProbeFile(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Probe(f)
}

// Probe reads the video track from an io.ReadSeeker.
func Probe(reader io.ReadSeeker) (*Info, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return nil, fmt.Errorf("decode mp4: %w", err)
	}

	if mp4File.IsFragmented() {
		return probeFragmented(mp4File)
	}
	return probeProgressive(mp4File)
}

func probeFragmented(mp4File *mp4.File) (*Info, error) {
	if mp4File.Init == nil || mp4File.Init.Moov == nil {
		return nil, ErrNoVideoTrack
	}
	trak := videoTrack(mp4File.Init.Moov.Traks)
	if trak == nil {
		return nil, ErrNoVideoTrack
	}

	info := trackInfo(trak)
	info.Fragmented = true
	trackID := trak.Tkhd.TrackID

	var trex *mp4.TrexBox
	if mp4File.Init.Moov.Mvex != nil {
		for _, t := range mp4File.Init.Moov.Mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			found := false
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd.TrackID == trackID {
					found = true
					break
				}
			}
			if !found {
				continue
			}

			samples, err := frag.GetFullSamples(trex)
			if err != nil {
				return nil, fmt.Errorf("get samples: %w", err)
			}
			info.Fragments++
			for _, s := range samples {
				info.Samples = append(info.Samples, Sample{
					PtsUs:    toMicros(s.DecodeTime, info.Timescale),
					DurUs:    toMicros(uint64(s.Dur), info.Timescale),
					Size:     int(s.Size),
					Keyframe: s.Flags == mp4.SyncSampleFlags,
				})
			}
		}
	}

	return info, nil
}

func probeProgressive(mp4File *mp4.File) (*Info, error) {
	if mp4File.Moov == nil {
		return nil, fmt.Errorf("no moov box found")
	}
	trak := videoTrack(mp4File.Moov.Traks)
	if trak == nil {
		return nil, ErrNoVideoTrack
	}
	info := trackInfo(trak)

	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return nil, fmt.Errorf("no sample table found")
	}
	stbl := trak.Mdia.Minf.Stbl
	if stbl.Stsz == nil {
		return nil, fmt.Errorf("no stsz box found")
	}

	syncSamples := make(map[uint32]bool)
	if stbl.Stss != nil {
		for _, sampleNr := range stbl.Stss.SampleNumber {
			syncSamples[sampleNr] = true
		}
	}

	for sampleNr := uint32(1); sampleNr <= stbl.Stsz.SampleNumber; sampleNr++ {
		var decodeTime uint64
		var dur uint32
		if stbl.Stts != nil {
			decodeTime, dur = stbl.Stts.GetDecodeTime(sampleNr)
		}
		info.Samples = append(info.Samples, Sample{
			PtsUs:    toMicros(decodeTime, info.Timescale),
			DurUs:    toMicros(uint64(dur), info.Timescale),
			Size:     int(stbl.Stsz.GetSampleSize(int(sampleNr))),
			Keyframe: syncSamples[sampleNr] || len(syncSamples) == 0,
		})
	}

	return info, nil
}

func videoTrack(traks []*mp4.TrakBox) *mp4.TrakBox {
	for _, trak := range traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

func trackInfo(trak *mp4.TrakBox) *Info {
	info := &Info{Codec: CodecUnknown, Timescale: 1000}
	if trak.Mdia.Mdhd != nil {
		info.Timescale = trak.Mdia.Mdhd.Timescale
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return info
	}

	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			info.Codec = CodecH264
		case "hvc1", "hev1":
			info.Codec = CodecHEVC
		case "av01":
			info.Codec = CodecAV1
		default:
			continue
		}
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
			if vse.AvcC != nil {
				info.Profile = int(vse.AvcC.AVCProfileIndication)
				info.Level = int(vse.AvcC.AVCLevelIndication)
			}
		}
		break
	}
	return info
}

func toMicros(ticks uint64, timescale uint32) int64 {
	if timescale == 0 {
		return 0
	}
	return int64((ticks*1_000_000 + uint64(timescale)/2) / uint64(timescale))
}
