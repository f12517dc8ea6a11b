package encode

import (
	"fmt"

	"github.com/user/timerreel/pkg/ports"
)

// sessionState is the lifecycle state of the codec.
type sessionState int

const (
	stateUnconfigured sessionState = iota
	stateConfigured
	stateStarted
	stateFeeding
	stateDraining
	stateEndSignaled
	stateFinalDraining
	stateStopped
	stateReleased
)

func (s sessionState) String() string {
	switch s {
	case stateUnconfigured:
		return "unconfigured"
	case stateConfigured:
		return "configured"
	case stateStarted:
		return "started"
	case stateFeeding:
		return "feeding"
	case stateDraining:
		return "draining"
	case stateEndSignaled:
		return "end-signaled"
	case stateFinalDraining:
		return "final-draining"
	case stateStopped:
		return "stopped"
	case stateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// session drives a ports.VideoCodec through its lifecycle and rejects
// calls made in the wrong state.
type session struct {
	codec   ports.VideoCodec
	state   sessionState
	surface ports.Surface
}

func newSession(codec ports.VideoCodec) *session {
	return &session{codec: codec}
}

func (s *session) expect(op string, allowed ...sessionState) error {
	for _, a := range allowed {
		if s.state == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s in state %s", ErrInvalidState, op, s.state)
}

func (s *session) configure(format ports.EncoderFormat) error {
	if err := s.expect("configure", stateUnconfigured); err != nil {
		return err
	}
	if err := s.codec.Configure(format); err != nil {
		return fmt.Errorf("configure codec: %w", err)
	}
	surface, err := s.codec.CreateInputSurface()
	if err != nil {
		return fmt.Errorf("create input surface: %w", err)
	}
	s.surface = surface
	s.state = stateConfigured
	return nil
}

func (s *session) start() error {
	if err := s.expect("start", stateConfigured); err != nil {
		return err
	}
	if err := s.codec.Start(); err != nil {
		return fmt.Errorf("start codec: %w", err)
	}
	s.state = stateStarted
	return nil
}

func (s *session) feeding() {
	s.state = stateFeeding
}

func (s *session) draining() {
	s.state = stateDraining
}

func (s *session) signalEnd() error {
	if err := s.expect("signal end of stream", stateStarted, stateFeeding, stateDraining); err != nil {
		return err
	}
	if err := s.codec.SignalEndOfInputStream(); err != nil {
		return fmt.Errorf("signal end of stream: %w", err)
	}
	s.state = stateEndSignaled
	return nil
}

func (s *session) finalDraining() {
	s.state = stateFinalDraining
}

// started reports whether the codec is running and must be stopped.
func (s *session) started() bool {
	return s.state >= stateStarted && s.state < stateStopped
}

func (s *session) stop() error {
	if !s.started() {
		return nil
	}
	s.state = stateStopped
	if err := s.codec.Stop(); err != nil {
		return fmt.Errorf("stop codec: %w", err)
	}
	return nil
}

func (s *session) release() {
	if s.state == stateReleased {
		return
	}
	s.codec.Release()
	s.state = stateReleased
}
