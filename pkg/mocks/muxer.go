package mocks

import (
	"github.com/user/timerreel/pkg/ports"
)

// Muxer is a mock implementation of ports.Muxer.
type Muxer struct {
	AddTrackFunc    func(format ports.TrackFormat) (int, error)
	StartFunc       func() error
	WriteSampleFunc func(track int, data []byte, ptsUs int64, flags ports.SampleFlags) error
	StopFunc        func() error

	// Recorded calls for verification
	Tracks   []ports.TrackFormat
	Started  bool
	Samples  []SampleCall
	Stopped  bool
	Released bool
}

// SampleCall records a call to WriteSample.
type SampleCall struct {
	Track int
	Size  int
	PtsUs int64
	Flags ports.SampleFlags
}

func (m *Muxer) AddTrack(format ports.TrackFormat) (int, error) {
	m.Tracks = append(m.Tracks, format)
	if m.AddTrackFunc != nil {
		return m.AddTrackFunc(format)
	}
	return len(m.Tracks) - 1, nil
}

func (m *Muxer) Start() error {
	m.Started = true
	if m.StartFunc != nil {
		return m.StartFunc()
	}
	return nil
}

func (m *Muxer) WriteSample(track int, data []byte, ptsUs int64, flags ports.SampleFlags) error {
	m.Samples = append(m.Samples, SampleCall{Track: track, Size: len(data), PtsUs: ptsUs, Flags: flags})
	if m.WriteSampleFunc != nil {
		return m.WriteSampleFunc(track, data, ptsUs, flags)
	}
	return nil
}

func (m *Muxer) Stop() error {
	m.Stopped = true
	if m.StopFunc != nil {
		return m.StopFunc()
	}
	return nil
}

func (m *Muxer) Release() {
	m.Released = true
}

var _ ports.Muxer = (*Muxer)(nil)

// Progress is a mock implementation of ports.Progress.
type Progress struct {
	Total    int
	Advanced int
	Finished bool
}

func (m *Progress) Start(total int) { m.Total = total }
func (m *Progress) Advance()        { m.Advanced++ }
func (m *Progress) Finish()         { m.Finished = true }

var _ ports.Progress = (*Progress)(nil)
