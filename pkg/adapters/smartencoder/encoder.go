// Package smartencoder picks the best available ffmpeg H.264 encoder, with
// fallback to the software encoder.
package smartencoder

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/user/timerreel/pkg/adapters/h264encoder"
	"github.com/user/timerreel/pkg/ports"
)

// Backend represents the encoding backend used.
type Backend string

const (
	// BackendHardware represents a GPU or media engine encoder driven through ffmpeg.
	BackendHardware Backend = "hardware"
	// BackendSoftware represents libx264.
	BackendSoftware Backend = "software"
)

// Info contains information about the selected encoder.
type Info struct {
	// Encoder is the ffmpeg encoder name.
	Encoder string
	// Backend is the encoding backend being used.
	Backend Backend
	// FFmpegPath is the resolved ffmpeg binary.
	FFmpegPath string
	// RequestedEncoder is the encoder that was explicitly requested, if any.
	RequestedEncoder string
	// FallbackUsed indicates that no hardware encoder passed the probe.
	FallbackUsed bool
}

// Options configures the smart encoder behavior.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
	// Encoder forces an ffmpeg encoder name.
	Encoder string
	// Software forces libx264.
	Software bool
	// Logger is used to log fallback warnings.
	Logger ports.Logger
	// Run executes ffmpeg for probing. Nil runs the real binary.
	Run Runner
}

// Runner runs a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

var (
	// ErrNoEncoderAvailable is returned when ffmpeg has no usable H.264 encoder.
	ErrNoEncoderAvailable = errors.New("smartencoder: no encoder available")
)

const probeTimeout = 10 * time.Second

// Candidates lists the hardware encoders in order of preference.
var Candidates = []h264encoder.EncoderSpec{
	{Name: "h264_nvenc", Hardware: true},
	{Name: "h264_qsv", Hardware: true},
	{Name: "h264_videotoolbox", Hardware: true},
	{Name: "h264_amf", Hardware: true},
	{
		Name:       "h264_vaapi",
		InputArgs:  []string{"-vaapi_device", "/dev/dri/renderD128"},
		OutputArgs: []string{"-vf", "format=nv12,hwupload"},
		Hardware:   true,
	},
}

// Spec returns the encoder spec for a name, including any extra arguments it needs.
func Spec(name string) h264encoder.EncoderSpec {
	for _, c := range Candidates {
		if c.Name == name {
			return c
		}
	}
	if name == "" || name == h264encoder.SoftwareEncoder {
		return h264encoder.Software()
	}
	return h264encoder.EncoderSpec{Name: name, Hardware: true}
}

// New creates an H.264 codec with automatic encoder selection.
//
// The selection flow:
//  1. --software forces libx264
//  2. --encoder forces the named encoder
//  3. the first hardware encoder that ffmpeg lists and that encodes a test frame
//  4. libx264
func New(ctx context.Context, opts Options) (*h264encoder.Codec, Info, error) {
	info, err := Select(ctx, opts)
	if err != nil {
		return nil, info, err
	}
	codec := h264encoder.New(h264encoder.Options{
		FFmpegPath: info.FFmpegPath,
		Encoder:    Spec(info.Encoder),
		Logger:     opts.Logger,
	})
	return codec, info, nil
}

// Select decides which ffmpeg encoder to use without creating a codec.
func Select(ctx context.Context, opts Options) (Info, error) {
	ffmpegPath, err := h264encoder.FindFFmpeg(opts.FFmpegPath)
	if err != nil {
		return Info{}, err
	}
	run := opts.Run
	if run == nil {
		run = execRunner
	}

	info := Info{FFmpegPath: ffmpegPath, RequestedEncoder: opts.Encoder}

	if opts.Software {
		info.Encoder = h264encoder.SoftwareEncoder
		info.Backend = BackendSoftware
		return info, nil
	}
	if opts.Encoder != "" {
		info.Encoder = opts.Encoder
		info.Backend = BackendSoftware
		if Spec(opts.Encoder).Hardware {
			info.Backend = BackendHardware
		}
		return info, nil
	}

	listed, err := ListEncoders(ctx, run, ffmpegPath)
	if err != nil {
		return Info{}, err
	}

	for _, c := range Candidates {
		if !listed[c.Name] {
			continue
		}
		if err := probeEncoder(ctx, run, ffmpegPath, c); err != nil {
			if opts.Logger != nil {
				opts.Logger.Debug("Encoder %s is listed but unusable: %v", c.Name, err)
			}
			continue
		}
		info.Encoder = c.Name
		info.Backend = BackendHardware
		return info, nil
	}

	if !listed[h264encoder.SoftwareEncoder] {
		return Info{}, ErrNoEncoderAvailable
	}
	if opts.Logger != nil {
		opts.Logger.Warn("Hardware H.264 encoder not available, falling back to %s", h264encoder.SoftwareEncoder)
	}
	info.Encoder = h264encoder.SoftwareEncoder
	info.Backend = BackendSoftware
	info.FallbackUsed = true
	return info, nil
}

// ListEncoders returns the set of video encoder names ffmpeg reports.
func ListEncoders(ctx context.Context, run Runner, ffmpegPath string) (map[string]bool, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := run(ctx, ffmpegPath, "-hide_banner", "-encoders")
	if err != nil {
		return nil, fmt.Errorf("list ffmpeg encoders: %w", err)
	}
	return ParseEncoders(out), nil
}

// ParseEncoders parses the output of `ffmpeg -encoders`.
// Lines look like " V....D libx264  libx264 H.264 / AVC ...".
func ParseEncoders(out []byte) map[string]bool {
	encoders := make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	header := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if header {
			if strings.HasPrefix(line, "------") {
				header = false
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.HasPrefix(fields[0], "V") {
			continue
		}
		encoders[fields[1]] = true
	}
	return encoders
}

// probeEncoder encodes one synthetic frame to check that the hardware is present.
func probeEncoder(ctx context.Context, run Runner, ffmpegPath string, spec h264encoder.EncoderSpec) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	args := []string{"-hide_banner", "-loglevel", "error"}
	args = append(args, spec.InputArgs...)
	args = append(args, "-f", "lavfi", "-i", "color=c=black:s=256x256:r=30", "-frames:v", "1")
	args = append(args, spec.OutputArgs...)
	args = append(args, "-c:v", spec.Name, "-f", "null", "-")

	if out, err := run(ctx, ffmpegPath, args...); err != nil {
		return fmt.Errorf("%w: %s", err, bytes.TrimSpace(out))
	}
	return nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
