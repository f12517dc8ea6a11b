package mocks

import (
	"errors"
	"image"
	"sync"
	"time"

	"github.com/user/timerreel/pkg/ports"
)

// VideoCodec is a mock implementation of ports.VideoCodec.
//
// Each posted frame produces one access unit, held back by Latency frames.
// The format event is queued before the first unit. After
// SignalEndOfInputStream every held unit is released, followed by an empty
// end-of-stream unit.
type VideoCodec struct {
	mu sync.Mutex

	Latency          int  // frames held back before output
	KeyframeInterval int  // frames between keyframes, default 1
	FormatTwice      bool // emit a second format event mid-stream
	SkipFormat       bool // never emit the format event

	ConfigureFunc func(format ports.EncoderFormat) error
	StartFunc     func() error
	LockFunc      func() (*image.RGBA, error)
	PostFunc      func(canvas *image.RGBA) error
	DequeueFunc   func(timeout time.Duration) (ports.OutputEvent, error)
	StopFunc      func() error

	// Recorded calls for verification
	Calls        []string
	Format       ports.EncoderFormat
	Posted       int
	Dequeues     []time.Duration
	EOSSignalled bool
	Released     bool

	queue         []ports.OutputEvent
	emitted       int
	formatEmitted bool
	surface       *Surface
}

// Surface is a mock implementation of ports.Surface.
type Surface struct {
	codec  *VideoCodec
	locked bool
}

var errSurfaceNotLocked = errors.New("mocks: surface not locked")

func (m *VideoCodec) record(call string) {
	m.Calls = append(m.Calls, call)
}

func (m *VideoCodec) Configure(format ports.EncoderFormat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("configure")
	m.Format = format
	if m.ConfigureFunc != nil {
		return m.ConfigureFunc(format)
	}
	return nil
}

func (m *VideoCodec) CreateInputSurface() (ports.Surface, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("surface")
	m.surface = &Surface{codec: m}
	return m.surface, nil
}

func (m *VideoCodec) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("start")
	if m.StartFunc != nil {
		return m.StartFunc()
	}
	return nil
}

func (m *VideoCodec) DequeueOutput(timeout time.Duration) (ports.OutputEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Dequeues = append(m.Dequeues, timeout)
	if m.DequeueFunc != nil {
		return m.DequeueFunc(timeout)
	}
	if len(m.queue) == 0 {
		return ports.OutputEvent{Kind: ports.OutputTryAgain}, nil
	}
	ev := m.queue[0]
	m.queue = m.queue[1:]
	return ev, nil
}

func (m *VideoCodec) SignalEndOfInputStream() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("eos")
	m.EOSSignalled = true
	m.release(m.Posted)
	m.queue = append(m.queue, ports.OutputEvent{
		Kind: ports.OutputBuffer,
		Unit: &ports.AccessUnit{EndOfStream: true},
	})
	return nil
}

func (m *VideoCodec) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("stop")
	if m.StopFunc != nil {
		return m.StopFunc()
	}
	return nil
}

func (m *VideoCodec) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("release")
	m.Released = true
}

// release queues output units until upTo units have been emitted.
func (m *VideoCodec) release(upTo int) {
	for m.emitted < upTo {
		if !m.formatEmitted && !m.SkipFormat {
			m.queue = append(m.queue, formatEvent(m.Format))
			m.formatEmitted = true
		}
		if m.FormatTwice && m.emitted == 1 {
			m.queue = append(m.queue, formatEvent(m.Format))
		}
		interval := m.KeyframeInterval
		if interval <= 0 {
			interval = 1
		}
		m.queue = append(m.queue, ports.OutputEvent{
			Kind: ports.OutputBuffer,
			Unit: &ports.AccessUnit{
				Data:     []byte{0, 0, 0, 1, 0x65, byte(m.emitted)},
				Keyframe: m.emitted%interval == 0,
			},
		})
		m.emitted++
	}
}

func formatEvent(f ports.EncoderFormat) ports.OutputEvent {
	return ports.OutputEvent{
		Kind: ports.OutputFormatChanged,
		Format: &ports.TrackFormat{
			Codec:  "avc1",
			Width:  f.Width,
			Height: f.Height,
			SPS:    [][]byte{{0x67, 0x64, 0x00, 0x28}},
			PPS:    [][]byte{{0x68, 0xEE, 0x3C, 0x80}},
		},
	}
}

// LockCanvas returns a buffer sized to the configured format.
func (s *Surface) LockCanvas() (*image.RGBA, error) {
	m := s.codec
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LockFunc != nil {
		return m.LockFunc()
	}
	s.locked = true
	return image.NewRGBA(image.Rect(0, 0, m.Format.Width, m.Format.Height)), nil
}

// UnlockCanvasAndPost submits the frame.
func (s *Surface) UnlockCanvasAndPost(canvas *image.RGBA) error {
	m := s.codec
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PostFunc != nil {
		if err := m.PostFunc(canvas); err != nil {
			return err
		}
	} else if !s.locked {
		return errSurfaceNotLocked
	}
	s.locked = false
	m.Posted++
	m.release(m.Posted - m.Latency)
	return nil
}

var (
	_ ports.VideoCodec = (*VideoCodec)(nil)
	_ ports.Surface    = (*Surface)(nil)
)
