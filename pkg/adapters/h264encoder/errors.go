package h264encoder

import "errors"

var (
	// ErrNotConfigured is returned when the codec is used before Configure.
	ErrNotConfigured = errors.New("h264encoder: codec not configured")

	// ErrNotStarted is returned when frames are posted before Start.
	ErrNotStarted = errors.New("h264encoder: codec not started")

	// ErrAlreadyStarted is returned when Configure or Start is called on a running codec.
	ErrAlreadyStarted = errors.New("h264encoder: codec already started")

	// ErrInvalidFormat is returned for unusable frame geometry or rates.
	ErrInvalidFormat = errors.New("h264encoder: invalid encoder format")

	// ErrSurfaceLocked is returned when the surface is locked twice.
	ErrSurfaceLocked = errors.New("h264encoder: surface already locked")

	// ErrSurfaceNotLocked is returned when a frame is posted without a lock.
	ErrSurfaceNotLocked = errors.New("h264encoder: surface not locked")

	// ErrInputClosed is returned when frames are posted after end of stream.
	ErrInputClosed = errors.New("h264encoder: input stream closed")

	// ErrEncodingFailed is returned when the ffmpeg process fails.
	ErrEncodingFailed = errors.New("h264encoder: encoding failed")

	// ErrFFmpegNotFound is returned when ffmpeg is not found.
	ErrFFmpegNotFound = errors.New("h264encoder: ffmpeg not found in PATH")
)
