package smartencoder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/timerreel/pkg/adapters/h264encoder"
	"github.com/user/timerreel/pkg/mocks"
)

const encodersOutput = `Encoders:
 V..... = Video
 A..... = Audio
 ------
 V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10 (codec h264)
 V....D h264_nvenc           NVIDIA NVENC H.264 encoder (codec h264)
 V....D h264_vaapi           H.264/AVC (VAAPI) (codec h264)
 A....D aac                  AAC (Advanced Audio Coding)
`

// fakeFFmpeg creates a file that FindFFmpeg accepts.
func fakeFFmpeg(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, nil, 0o755); err != nil {
		t.Fatalf("write fake ffmpeg: %v", err)
	}
	return path
}

// fakeRunner answers -encoders with out and fails the probe of every encoder in broken.
func fakeRunner(out string, broken ...string) (Runner, *[]string) {
	var probed []string
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		joined := strings.Join(args, " ")
		if strings.Contains(joined, "-encoders") {
			return []byte(out), nil
		}
		for i, a := range args {
			if a == "-c:v" && i+1 < len(args) {
				probed = append(probed, args[i+1])
				for _, b := range broken {
					if args[i+1] == b {
						return []byte("No capable devices found"), errors.New("exit status 1")
					}
				}
			}
		}
		return nil, nil
	}, &probed
}

func TestParseEncoders(t *testing.T) {
	got := ParseEncoders([]byte(encodersOutput))

	for _, name := range []string{"libx264", "h264_nvenc", "h264_vaapi"} {
		if !got[name] {
			t.Errorf("expected %s to be listed", name)
		}
	}
	if got["aac"] {
		t.Error("audio encoders should not be listed")
	}
	if got["="] || got["Video"] {
		t.Error("header lines should be skipped")
	}
}

func TestSelect_FirstWorkingHardware(t *testing.T) {
	run, probed := fakeRunner(encodersOutput)
	info, err := Select(context.Background(), Options{FFmpegPath: fakeFFmpeg(t), Run: run})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if info.Encoder != "h264_nvenc" {
		t.Errorf("expected h264_nvenc, got %s", info.Encoder)
	}
	if info.Backend != BackendHardware {
		t.Errorf("expected hardware backend, got %s", info.Backend)
	}
	if len(*probed) != 1 {
		t.Errorf("expected a single probe, got %v", *probed)
	}
}

func TestSelect_SkipsBrokenHardware(t *testing.T) {
	run, probed := fakeRunner(encodersOutput, "h264_nvenc")
	info, err := Select(context.Background(), Options{FFmpegPath: fakeFFmpeg(t), Run: run})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if info.Encoder != "h264_vaapi" {
		t.Errorf("expected h264_vaapi, got %s", info.Encoder)
	}
	if strings.Join(*probed, ",") != "h264_nvenc,h264_vaapi" {
		t.Errorf("unexpected probe order: %v", *probed)
	}
}

func TestSelect_FallbackToSoftware(t *testing.T) {
	log := mocks.NewLogger()
	run, _ := fakeRunner(encodersOutput, "h264_nvenc", "h264_vaapi")
	info, err := Select(context.Background(), Options{FFmpegPath: fakeFFmpeg(t), Run: run, Logger: log})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if info.Encoder != h264encoder.SoftwareEncoder || info.Backend != BackendSoftware {
		t.Errorf("expected libx264 software, got %s %s", info.Encoder, info.Backend)
	}
	if !info.FallbackUsed {
		t.Error("expected fallback flag")
	}
	if !log.HasMessage("warn", "falling back") {
		t.Error("expected fallback warning")
	}
}

func TestSelect_NoEncoder(t *testing.T) {
	run, _ := fakeRunner("Encoders:\n ------\n A....D aac   AAC\n")
	_, err := Select(context.Background(), Options{FFmpegPath: fakeFFmpeg(t), Run: run})
	if !errors.Is(err, ErrNoEncoderAvailable) {
		t.Errorf("expected ErrNoEncoderAvailable, got %v", err)
	}
}

func TestSelect_Overrides(t *testing.T) {
	run, probed := fakeRunner(encodersOutput)
	path := fakeFFmpeg(t)

	info, err := Select(context.Background(), Options{FFmpegPath: path, Run: run, Software: true, Encoder: "h264_nvenc"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if info.Encoder != h264encoder.SoftwareEncoder {
		t.Errorf("expected --software to win, got %s", info.Encoder)
	}

	info, err = Select(context.Background(), Options{FFmpegPath: path, Run: run, Encoder: "h264_qsv"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if info.Encoder != "h264_qsv" || info.Backend != BackendHardware {
		t.Errorf("expected forced h264_qsv, got %s %s", info.Encoder, info.Backend)
	}
	if len(*probed) != 0 {
		t.Errorf("expected no probing for forced encoders, got %v", *probed)
	}
}

func TestSelect_FFmpegMissing(t *testing.T) {
	_, err := Select(context.Background(), Options{FFmpegPath: filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, h264encoder.ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound, got %v", err)
	}
}

func TestSpec(t *testing.T) {
	if s := Spec("h264_vaapi"); len(s.InputArgs) == 0 || len(s.OutputArgs) == 0 {
		t.Error("expected vaapi device and upload arguments")
	}
	if s := Spec(""); s.Name != h264encoder.SoftwareEncoder || s.Hardware {
		t.Errorf("expected software spec, got %+v", s)
	}
	if s := Spec("h264_custom"); s.Name != "h264_custom" {
		t.Errorf("expected custom name to be kept, got %+v", s)
	}
}

func TestNew(t *testing.T) {
	run, _ := fakeRunner(encodersOutput)
	codec, info, err := New(context.Background(), Options{FFmpegPath: fakeFFmpeg(t), Run: run, Software: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if codec.Encoder() != info.Encoder {
		t.Errorf("codec uses %s, info says %s", codec.Encoder(), info.Encoder)
	}
}
