package ports

// SampleFlags describes an encoded sample written to a Muxer.
type SampleFlags int

const (
	// SampleKeyframe marks a sync sample.
	SampleKeyframe SampleFlags = 1 << iota
	// SampleEndOfStream marks the final sample of the stream.
	SampleEndOfStream
)

// Muxer wraps an encoded elementary stream into a container.
//
// AddTrack is called once, when the codec publishes its output format.
// Samples may only be written between Start and Stop.
type Muxer interface {
	// AddTrack creates the video track and returns its index.
	AddTrack(format TrackFormat) (int, error)

	// Start writes the container header.
	Start() error

	// WriteSample appends one access unit. Timestamps must not decrease.
	WriteSample(track int, data []byte, ptsUs int64, flags SampleFlags) error

	// Stop finalizes the container. It must be called exactly once.
	Stop() error

	// Release frees resources. Safe to call in any state.
	Release()
}
