package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/timerreel/pkg/mocks"
	"github.com/user/timerreel/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func pngRenderer() *mocks.Renderer {
	return &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			if format != ports.FormatPNG {
				return nil, errors.New("unexpected format")
			}
			return []byte{0x89, 0x50, 0x4E, 0x47}, nil
		},
	}
}

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), &mocks.Renderer{})

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SaveRenderJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, &mocks.Renderer{})

	data := []byte(`{"fps": 60}`)
	if err := sink.SaveRenderJSON(data); err != nil {
		t.Fatalf("SaveRenderJSON failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "render.json")
	saved, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Fatalf("expected file to be saved at %s", expectedPath)
	}
	if string(saved) != string(data) {
		t.Errorf("expected %q, got %q", data, saved)
	}
}

func TestSink_SaveFrame(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, pngRenderer())

	img := image.NewRGBA(image.Rect(0, 0, 64, 36))
	if err := sink.SaveFrame(120, img); err != nil {
		t.Fatalf("SaveFrame failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "frames", "frame-000120.png")
	saved, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Fatalf("expected file to be saved at %s", expectedPath)
	}
	if len(saved) != 4 || saved[1] != 'P' {
		t.Errorf("expected PNG data, got %x", saved)
	}
}

func TestSink_SaveFrameEncodeError(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			return nil, errors.New("boom")
		},
	}
	sink := New(testBaseDir, fs, renderer)

	if err := sink.SaveFrame(0, image.NewRGBA(image.Rect(0, 0, 2, 2))); err == nil {
		t.Error("expected error")
	}
	if len(fs.GetAllFiles()) != 0 {
		t.Error("expected nothing to be written")
	}
}

func TestSink_MultipleFrames(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, pngRenderer())

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 10; i++ {
		if err := sink.SaveFrame(i*60, img); err != nil {
			t.Fatalf("SaveFrame %d failed: %v", i, err)
		}
	}

	if count := len(fs.GetAllFiles()); count != 10 {
		t.Errorf("expected 10 files, got %d", count)
	}
}
