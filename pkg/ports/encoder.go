package ports

import (
	"image"
	"time"
)

// VideoCodec abstracts a stateful video encoder that is fed through a drawing
// surface and drained by polling.
//
// The lifecycle is Configure -> CreateInputSurface -> Start -> (draw frames,
// DequeueOutput) -> SignalEndOfInputStream -> DequeueOutput until end of
// stream -> Stop -> Release. Release must be safe to call in any state.
type VideoCodec interface {
	// Configure validates and stores the encoding parameters.
	Configure(format EncoderFormat) error

	// CreateInputSurface returns the surface frames are drawn into.
	// Only valid after Configure and before Start.
	CreateInputSurface() (Surface, error)

	// Start begins accepting frames via the surface.
	Start() error

	// DequeueOutput polls for the next output event, waiting at most timeout.
	// A zero timeout never blocks.
	DequeueOutput(timeout time.Duration) (OutputEvent, error)

	// SignalEndOfInputStream tells the codec no further frames will arrive.
	SignalEndOfInputStream() error

	// Stop halts the codec.
	Stop() error

	// Release frees all resources held by the codec.
	Release()
}

// Surface is a producer/consumer buffer through which rendered frames reach the codec.
type Surface interface {
	// LockCanvas returns the pixel buffer for the next frame.
	// It may block until the codec can accept another frame.
	LockCanvas() (*image.RGBA, error)

	// UnlockCanvasAndPost submits the locked buffer to the codec.
	UnlockCanvasAndPost(canvas *image.RGBA) error
}

// EncoderFormat configures a VideoCodec.
type EncoderFormat struct {
	Width            int
	Height           int
	FrameRate        int
	BitRate          int // bits per second
	KeyFrameInterval int // seconds
}

// OutputKind tags the result of a DequeueOutput poll.
type OutputKind int

const (
	// OutputTryAgain means no output is available yet.
	OutputTryAgain OutputKind = iota
	// OutputFormatChanged carries the concrete output format in Format.
	OutputFormatChanged
	// OutputBuffer carries one encoded access unit in Unit.
	OutputBuffer
)

// String returns the string representation of the output kind.
func (k OutputKind) String() string {
	switch k {
	case OutputTryAgain:
		return "try-again"
	case OutputFormatChanged:
		return "format-changed"
	case OutputBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

// OutputEvent is the tagged result of one DequeueOutput poll.
// Format is set only for OutputFormatChanged, Unit only for OutputBuffer.
type OutputEvent struct {
	Kind   OutputKind
	Format *TrackFormat
	Unit   *AccessUnit
}

// TrackFormat describes the encoded elementary stream.
type TrackFormat struct {
	Codec  string // e.g. "avc1"
	Width  int
	Height int
	SPS    [][]byte
	PPS    [][]byte
}

// AccessUnit is one encoded picture in Annex B byte stream format.
type AccessUnit struct {
	Data        []byte
	Keyframe    bool
	EndOfStream bool // the last unit; Data may be empty
}
