package h264encoder

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/user/timerreel/pkg/ports"
)

// IsFFmpegAvailable checks if ffmpeg is available on the system.
func IsFFmpegAvailable(custom string) bool {
	_, err := FindFFmpeg(custom)
	return err == nil
}

// FindFFmpeg searches for ffmpeg.
// Priority: 1) custom path, 2) FFMPEG_PATH env, 3) PATH, 4) common locations
func FindFFmpeg(custom string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, custom)
	}

	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: FFMPEG_PATH %s not found", ErrFFmpegNotFound, envPath)
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}

	path, err := exec.LookPath(execName)
	if err == nil {
		return path, nil
	}

	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffmpeg.exe`,
		}
	} else if runtime.GOOS == "darwin" {
		commonPaths = []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/usr/bin/ffmpeg",
		}
	} else {
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/opt/homebrew/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// SoftwareEncoder is the ffmpeg encoder used when no hardware encoder is chosen.
const SoftwareEncoder = "libx264"

// EncoderSpec names an ffmpeg H.264 encoder and the extra arguments it needs.
type EncoderSpec struct {
	Name string
	// InputArgs go before the input, e.g. a hardware device.
	InputArgs []string
	// OutputArgs go after the input, e.g. an upload filter.
	OutputArgs []string
	Hardware   bool
}

// Software returns the libx264 encoder spec.
func Software() EncoderSpec {
	return EncoderSpec{Name: SoftwareEncoder}
}

// Args builds the ffmpeg command line that reads raw RGBA frames on stdin
// and writes an Annex B H.264 stream on stdout.
func Args(format ports.EncoderFormat, spec EncoderSpec) []string {
	encoder := spec.Name
	if encoder == "" {
		encoder = SoftwareEncoder
	}
	gop := format.FrameRate * format.KeyFrameInterval
	if gop <= 0 {
		gop = format.FrameRate
	}
	bitRate := strconv.Itoa(format.BitRate)

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
	}
	args = append(args, spec.InputArgs...)
	args = append(args,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", format.Width, format.Height),
		"-r", strconv.Itoa(format.FrameRate),
		"-i", "pipe:0",
	)
	args = append(args, spec.OutputArgs...)

	args = append(args,
		"-c:v", encoder,
		"-b:v", bitRate,
		"-maxrate", bitRate,
		"-bufsize", strconv.Itoa(2*format.BitRate),
		"-g", strconv.Itoa(gop),
		"-bf", "0",
	)

	switch encoder {
	case SoftwareEncoder:
		args = append(args,
			"-preset", "fast",
			"-profile:v", "high",
			"-keyint_min", strconv.Itoa(gop),
			"-sc_threshold", "0",
			"-pix_fmt", "yuv420p",
		)
	case "h264_vaapi":
		// pixel format is set by the upload filter
	default:
		args = append(args, "-pix_fmt", "yuv420p")
	}

	return append(args, "-f", "h264", "pipe:1")
}
