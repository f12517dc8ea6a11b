package mp4muxer

import "errors"

var (
	// ErrTrackAlreadyAdded is returned when AddTrack is called twice.
	ErrTrackAlreadyAdded = errors.New("mp4muxer: track already added")

	// ErrNoTrack is returned when Start is called before AddTrack.
	ErrNoTrack = errors.New("mp4muxer: no track added")

	// ErrUnknownTrack is returned when a sample names a track that does not exist.
	ErrUnknownTrack = errors.New("mp4muxer: unknown track")

	// ErrNotStarted is returned when samples are written before Start.
	ErrNotStarted = errors.New("mp4muxer: muxer not started")

	// ErrAlreadyStarted is returned when Start or AddTrack is called after Start.
	ErrAlreadyStarted = errors.New("mp4muxer: muxer already started")

	// ErrAlreadyFinalized is returned when the muxer is used after Stop.
	ErrAlreadyFinalized = errors.New("mp4muxer: muxer already finalized")

	// ErrNonMonotonicPTS is returned when a sample timestamp decreases.
	ErrNonMonotonicPTS = errors.New("mp4muxer: presentation time decreased")

	// ErrMissingParameterSets is returned when the track format lacks SPS or PPS.
	ErrMissingParameterSets = errors.New("mp4muxer: missing SPS or PPS")
)
