package mp4probe_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/timerreel/pkg/adapters/mp4muxer"
	"github.com/user/timerreel/pkg/adapters/mp4probe"
	"github.com/user/timerreel/pkg/ports"
)

var (
	sps = []byte{0x67, 0x42, 0xc0, 0x1e, 0xda, 0x10, 0x99}
	pps = []byte{0x68, 0xce, 0x3c, 0x80}
)

func writeClip(t *testing.T, path string, fps, frames, gop int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	m := mp4muxer.New(f, fps, nil)
	if _, err := m.AddTrack(ports.TrackFormat{Codec: "h264", Width: 64, Height: 64, SPS: [][]byte{sps}, PPS: [][]byte{pps}}); err != nil {
		t.Fatalf("AddTrack: %v", err)
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < frames; i++ {
		pts := int64((2*1_000_000*i + fps) / (2 * fps))
		data := []byte{0, 0, 0, 1, 0x41, 0x9a}
		flags := ports.SampleFlags(0)
		if i%gop == 0 {
			data = []byte{0, 0, 0, 1, 0x65, 0x88}
			flags = ports.SampleKeyframe
		}
		if err := m.WriteSample(0, data, pts, flags); err != nil {
			t.Fatalf("WriteSample: %v", err)
		}
	}
	if err := m.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestProbeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	writeClip(t, path, 25, 51, 50)

	info, err := mp4probe.ProbeFile(path)
	if err != nil {
		t.Fatalf("ProbeFile failed: %v", err)
	}
	if info.Codec != mp4probe.CodecH264 {
		t.Errorf("expected h264, got %s", info.Codec)
	}
	if len(info.Samples) != 51 {
		t.Errorf("expected 51 samples, got %d", len(info.Samples))
	}
	if info.Keyframes() != 2 {
		t.Errorf("expected 2 keyframes, got %d", info.Keyframes())
	}
	if info.Fragments != 2 {
		t.Errorf("expected 2 fragments, got %d", info.Fragments)
	}
	if d := info.DurationMs(); d != 2040 {
		t.Errorf("expected 2040ms, got %d", d)
	}
	if fps := info.FrameRate(); fps < 24.9 || fps > 25.1 {
		t.Errorf("expected ~25 fps, got %.2f", fps)
	}
}

func TestProbe_NotMP4(t *testing.T) {
	if _, err := mp4probe.Probe(bytes.NewReader([]byte("not an mp4 file at all"))); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestProbeFile_Missing(t *testing.T) {
	if _, err := mp4probe.ProbeFile(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestInfo_Empty(t *testing.T) {
	info := &mp4probe.Info{}
	if info.DurationMs() != 0 || info.FrameRate() != 0 || info.Keyframes() != 0 {
		t.Error("expected zero values for empty info")
	}
}
