// Package e2e contains end-to-end tests for the timerreel CLI.
// This package has no CGO dependencies so it can run with pre-built binaries.
package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// getBinaryName returns the test binary name with platform-specific extension
func getBinaryName() string {
	if runtime.GOOS == "windows" {
		return "timerreel-test.exe"
	}
	return "timerreel-test"
}

// getBinaryPath returns the path to execute the test binary
// If TIMERREEL_BINARY env var is set, use that instead (for CI with pre-built binaries)
func getBinaryPath() string {
	if path := os.Getenv("TIMERREEL_BINARY"); path != "" {
		return path
	}
	if runtime.GOOS == "windows" {
		return ".\\timerreel-test.exe"
	}
	return "./timerreel-test"
}

// shouldBuildBinary returns true if we need to build the binary (no pre-built binary provided)
func shouldBuildBinary() bool {
	return os.Getenv("TIMERREEL_BINARY") == ""
}

// prepareBinary skips unless E2E tests are enabled and builds the CLI when needed.
func prepareBinary(t *testing.T) {
	t.Helper()
	if os.Getenv("TIMERREEL_E2E") != "1" {
		t.Skip("Skipping E2E test (set TIMERREEL_E2E=1 to run)")
	}
	if !shouldBuildBinary() {
		return
	}

	root := getProjectRoot(t)
	buildCmd := exec.Command("go", "build", "-o", getBinaryName(), "./cmd/timerreel")
	buildCmd.Dir = root
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build CLI: %v\n%s", err, out)
	}
	t.Cleanup(func() { os.Remove(filepath.Join(root, getBinaryName())) })
}

// runCLI runs the binary from the project root and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command(getBinaryPath(), args...)
	cmd.Dir = getProjectRoot(t)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// checkMP4 verifies the file exists, is not trivially small and starts with an ftyp box.
func checkMP4(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Output file not found: %v", err)
	}
	if len(data) < 1024 {
		t.Errorf("Output file too small: %d bytes", len(data))
	}
	if len(data) < 8 || string(data[4:8]) != "ftyp" {
		t.Error("Invalid MP4 file")
	}
	t.Logf("Video created: %d bytes", len(data))
}

// TestStopwatchCommand renders a short stopwatch.
func TestStopwatchCommand(t *testing.T) {
	prepareBinary(t)

	output := filepath.Join(t.TempDir(), "stopwatch.mp4")
	stdout, stderr, err := runCLI(t,
		"stopwatch",
		"-d", "2",
		"--width", "640", "--height", "360", "--fps", "30",
		"--software",
		"-q",
		"-o", output,
	)
	if err != nil {
		t.Fatalf("Stopwatch command failed: %v\nstdout: %s\nstderr: %s", err, stdout, stderr)
	}

	checkMP4(t, output)
	if strings.TrimSpace(stdout) != output {
		t.Errorf("expected output path on stdout, got %q", stdout)
	}
}

// TestTimerCommand renders a countdown into a generated file name.
func TestTimerCommand(t *testing.T) {
	prepareBinary(t)

	outDir := t.TempDir()
	stdout, stderr, err := runCLI(t,
		"timer",
		"-m", "0", "-s", "2",
		"--width", "640", "--height", "360", "--fps", "30",
		"--style", "neon", "--skin", "lcd",
		"--software",
		"--out-dir", outDir,
	)
	if err != nil {
		t.Fatalf("Timer command failed: %v\nstdout: %s\nstderr: %s", err, stdout, stderr)
	}

	matches, _ := filepath.Glob(filepath.Join(outDir, "timer_*.mp4"))
	if len(matches) != 1 {
		t.Fatalf("expected one generated timer file, got %v", matches)
	}
	checkMP4(t, matches[0])
}

// TestTimerZeroDuration verifies a zero-length timer is rejected.
func TestTimerZeroDuration(t *testing.T) {
	prepareBinary(t)

	output := filepath.Join(t.TempDir(), "zero.mp4")
	_, stderr, err := runCLI(t, "timer", "-m", "0", "-o", output)
	if err == nil {
		t.Fatal("expected zero duration to fail")
	}
	if !strings.Contains(stderr, "duration") {
		t.Errorf("unexpected error output: %s", stderr)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("no output file should be created")
	}
}

// TestDebugAndSummaryOutput checks debug frames, render.json and the Markdown summary.
func TestDebugAndSummaryOutput(t *testing.T) {
	prepareBinary(t)

	dir := t.TempDir()
	output := filepath.Join(dir, "water.mp4")
	debugDir := filepath.Join(dir, "debug")
	summary := filepath.Join(dir, "summary.md")

	stdout, stderr, err := runCLI(t,
		"stopwatch",
		"-d", "1",
		"--width", "640", "--height", "360", "--fps", "30",
		"--style", "water",
		"--software",
		"--debug", "--debug-dir", debugDir, "--debug-every", "10",
		"--summary", summary,
		"-o", output,
	)
	if err != nil {
		t.Fatalf("Stopwatch command failed: %v\nstdout: %s\nstderr: %s", err, stdout, stderr)
	}

	checkMP4(t, output)

	if _, err := os.Stat(filepath.Join(debugDir, "render.json")); err != nil {
		t.Errorf("render.json not created: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(debugDir, "frames"))
	if err != nil {
		t.Fatalf("Failed to read debug frames: %v", err)
	}
	// Frames 0, 10, 20 and 30 of 31.
	if len(entries) != 4 {
		t.Errorf("expected 4 debug frames, got %d", len(entries))
	}

	md, err := os.ReadFile(summary)
	if err != nil {
		t.Fatalf("Summary not created: %v", err)
	}
	if !strings.HasPrefix(string(md), "# ") || !strings.Contains(string(md), "640x360") {
		t.Errorf("unexpected summary:\n%s", md)
	}
}

// TestInspectCommand renders a clip and inspects it.
func TestInspectCommand(t *testing.T) {
	prepareBinary(t)

	output := filepath.Join(t.TempDir(), "inspect.mp4")
	if _, stderr, err := runCLI(t, "stopwatch", "-d", "1", "--width", "640", "--height", "360", "--fps", "30", "--software", "-q", "-o", output); err != nil {
		t.Fatalf("Stopwatch command failed: %v\nstderr: %s", err, stderr)
	}

	stdout, stderr, err := runCLI(t, "inspect", "--samples", output)
	if err != nil {
		t.Fatalf("Inspect command failed: %v\nstderr: %s", err, stderr)
	}
	for _, want := range []string{"h264", "640x360", "31 ("} {
		if !strings.Contains(stdout, want) {
			t.Errorf("inspect output missing %q:\n%s", want, stdout)
		}
	}
}

// TestVersionCommand tests the version flag
func TestVersionCommand(t *testing.T) {
	prepareBinary(t)

	// urfave/cli uses --version flag instead of version subcommand
	stdout, _, err := runCLI(t, "--version")
	if err != nil {
		t.Fatalf("Version command failed: %v", err)
	}
	if !strings.Contains(stdout, "timerreel version") {
		t.Errorf("Unexpected version output: %s", stdout)
	}
}

func getProjectRoot(t *testing.T) string {
	// Start from current working directory and find go.mod
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("Could not find project root (go.mod)")
		}
		dir = parent
	}
}
