// Package mp4muxer writes an H.264 elementary stream into a fragmented MP4 file.
package mp4muxer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/timerreel/pkg/adapters/logger"
	"github.com/user/timerreel/pkg/ports"
)

// Ensure Muxer implements ports.Muxer.
var _ ports.Muxer = (*Muxer)(nil)

const trackID = 1

type muxState int

const (
	muxCreated muxState = iota
	muxTrackAdded
	muxStarted
	muxStopped
	muxReleased
)

type pendingSample struct {
	data     []byte
	ticks    uint64
	keyframe bool
}

// Muxer implements ports.Muxer on top of mp4ff.
//
// The header (ftyp + moov) is written at Start. Samples are buffered per
// GOP and flushed as one moof+mdat fragment when the next keyframe arrives
// and at Stop.
type Muxer struct {
	w         *bufio.Writer
	fps       int
	timescale uint32
	logger    ports.Logger

	state  muxState
	format ports.TrackFormat

	pending   []pendingSample
	seq       uint32
	lastPTS   int64
	hasSample bool

	samples   int
	fragments int
}

// New creates a muxer writing to w. fps sets the track timescale.
func New(w io.Writer, fps int, log ports.Logger) *Muxer {
	if log == nil {
		log = logger.NewNoop()
	}
	if fps <= 0 {
		fps = 30
	}
	return &Muxer{
		w:         bufio.NewWriter(w),
		fps:       fps,
		timescale: uint32(fps * 1000),
		logger:    log.WithComponent("mp4muxer"),
	}
}

// Samples returns the number of samples written so far.
func (m *Muxer) Samples() int { return m.samples }

// Fragments returns the number of fragments flushed so far.
func (m *Muxer) Fragments() int { return m.fragments }

// AddTrack registers the single video track.
func (m *Muxer) AddTrack(format ports.TrackFormat) (int, error) {
	switch m.state {
	case muxCreated:
	case muxTrackAdded:
		return -1, ErrTrackAlreadyAdded
	case muxStarted:
		return -1, ErrAlreadyStarted
	default:
		return -1, ErrAlreadyFinalized
	}
	if len(format.SPS) == 0 || len(format.PPS) == 0 {
		return -1, ErrMissingParameterSets
	}
	m.format = format
	m.state = muxTrackAdded
	m.logger.Debug("Track added: %s %dx%d", format.Codec, format.Width, format.Height)
	return 0, nil
}

// Start writes ftyp and moov.
func (m *Muxer) Start() error {
	switch m.state {
	case muxTrackAdded:
	case muxCreated:
		return ErrNoTrack
	case muxStarted:
		return ErrAlreadyStarted
	default:
		return ErrAlreadyFinalized
	}

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(m.timescale, "video", "en")
	trak := init.Moov.Trak

	avcC, err := mp4.CreateAvcC(m.format.SPS, m.format.PPS, true)
	if err != nil {
		return fmt.Errorf("create avcC: %w", err)
	}
	avc1 := mp4.CreateVisualSampleEntryBox("avc1", uint16(m.format.Width), uint16(m.format.Height), avcC)
	trak.Mdia.Minf.Stbl.Stsd.AddChild(avc1)
	trak.Tkhd.Width = mp4.Fixed32(m.format.Width << 16)
	trak.Tkhd.Height = mp4.Fixed32(m.format.Height << 16)

	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "avc1", "mp41"})
	if err := ftyp.Encode(m.w); err != nil {
		return fmt.Errorf("encode ftyp: %w", err)
	}
	if err := init.Moov.Encode(m.w); err != nil {
		return fmt.Errorf("encode moov: %w", err)
	}

	m.state = muxStarted
	return nil
}

// WriteSample appends one Annex B access unit.
func (m *Muxer) WriteSample(track int, data []byte, ptsUs int64, flags ports.SampleFlags) error {
	switch m.state {
	case muxStarted:
	case muxCreated, muxTrackAdded:
		return ErrNotStarted
	default:
		return ErrAlreadyFinalized
	}
	if track != 0 {
		return fmt.Errorf("%w: %d", ErrUnknownTrack, track)
	}
	if m.hasSample && ptsUs < m.lastPTS {
		return fmt.Errorf("%w: %d < %d", ErrNonMonotonicPTS, ptsUs, m.lastPTS)
	}

	avcc := ToAVCC(data)
	if len(avcc) == 0 {
		return nil
	}

	keyframe := flags&ports.SampleKeyframe != 0
	ticks := m.ticks(ptsUs)
	if keyframe && len(m.pending) > 0 {
		if err := m.flush(ticks); err != nil {
			return err
		}
	}

	m.pending = append(m.pending, pendingSample{data: avcc, ticks: ticks, keyframe: keyframe})
	m.lastPTS = ptsUs
	m.hasSample = true
	m.samples++
	return nil
}

// Stop flushes the last fragment and the buffered writer.
func (m *Muxer) Stop() error {
	switch m.state {
	case muxStarted:
	case muxCreated, muxTrackAdded:
		return ErrNotStarted
	default:
		return ErrAlreadyFinalized
	}
	m.state = muxStopped

	if len(m.pending) > 0 {
		last := m.pending[len(m.pending)-1].ticks + uint64(m.frameTicks())
		if err := m.flush(last); err != nil {
			return err
		}
	}
	if err := m.w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	m.logger.Debug("Muxer finalized: %d samples in %d fragments", m.samples, m.fragments)
	return nil
}

// Release drops buffered samples.
func (m *Muxer) Release() {
	m.pending = nil
	m.state = muxReleased
}

// flush writes the pending samples as one fragment. next is the decode
// time that follows the last pending sample.
func (m *Muxer) flush(next uint64) error {
	m.seq++
	frag, err := mp4.CreateFragment(m.seq, trackID)
	if err != nil {
		return fmt.Errorf("create fragment: %w", err)
	}

	for i, s := range m.pending {
		end := next
		if i+1 < len(m.pending) {
			end = m.pending[i+1].ticks
		}
		dur := uint32(end - s.ticks)
		if dur == 0 {
			dur = m.frameTicks()
		}

		sampleFlags := mp4.NonSyncSampleFlags
		if s.keyframe {
			sampleFlags = mp4.SyncSampleFlags
		}
		frag.AddFullSample(mp4.FullSample{
			Sample: mp4.Sample{
				Flags: sampleFlags,
				Size:  uint32(len(s.data)),
				Dur:   dur,
			},
			DecodeTime: s.ticks,
			Data:       s.data,
		})
	}

	if err := frag.Encode(m.w); err != nil {
		return fmt.Errorf("encode fragment: %w", err)
	}
	m.pending = m.pending[:0]
	m.fragments++
	return nil
}

func (m *Muxer) ticks(ptsUs int64) uint64 {
	return uint64((ptsUs*int64(m.timescale) + 500_000) / 1_000_000)
}

func (m *Muxer) frameTicks() uint32 {
	return m.timescale / uint32(m.fps)
}
