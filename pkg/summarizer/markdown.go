package summarizer

import (
	"fmt"
	"strings"
)

// TranslateFunc translates a label. It returns the key itself when no
// translation exists.
type TranslateFunc func(key string) string

// MarkdownFormatter formats a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate TranslateFunc
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the label translator.
func WithTranslator(fn TranslateFunc) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion sets the tool version printed in the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(key string) string { return key },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Render Summary"))
	fmt.Fprintf(&b, "%s: %s\n", t("Generated"), s.GeneratedAt.Format("2006-01-02 15:04:05"))
	if s.SessionID != "" {
		fmt.Fprintf(&b, "%s: `%s`\n", t("Session"), s.SessionID)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Item"), t("Value"))
	b.WriteString("|---|---|\n")
	row(&b, t("Kind"), t(s.Settings.Kind))
	row(&b, t("Direction"), t(s.Settings.Direction))
	row(&b, t("Start Value"), formatClock(s.Settings.StartValue))
	row(&b, t("Duration"), fmt.Sprintf("%d s", s.Settings.DurationSec))
	row(&b, t("Style"), s.Settings.Style)
	row(&b, t("Skin"), s.Settings.Skin)
	row(&b, t("Resolution"), fmt.Sprintf("%dx%d", s.Settings.Width, s.Settings.Height))
	row(&b, t("Frame Rate"), fmt.Sprintf("%d fps", s.Settings.FPS))
	row(&b, t("Encoder"), s.Settings.Encoder)
	if s.Settings.Brand != "" {
		row(&b, t("Brand"), s.Settings.Brand)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Video"))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Item"), t("Value"))
	b.WriteString("|---|---|\n")
	if s.Video.Path != "" {
		row(&b, t("File"), s.Video.Path)
	}
	row(&b, t("Frames"), fmt.Sprintf("%d", s.Video.FrameCount))
	row(&b, t("Samples"), fmt.Sprintf("%d", s.Video.SampleCount))
	row(&b, t("Keyframes"), fmt.Sprintf("%d", s.Video.Keyframes))
	row(&b, t("Video Duration"), fmt.Sprintf("%d ms", s.Video.DurationMs))
	row(&b, t("File Size"), formatBytes(s.Video.FileSize))
	row(&b, t("Bit Rate"), formatBitRate(s.Video.BitRate))
	if s.Video.ElapsedMs > 0 {
		row(&b, t("Render Time"), fmt.Sprintf("%d ms", s.Video.ElapsedMs))
	}

	if f.version != "" {
		fmt.Fprintf(&b, "\n---\n%s %s\n", t("Generated by timerreel"), f.version)
	}

	return b.String()
}

func row(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", key, value)
}

// formatClock renders seconds as H:MM:SS or MM:SS.
func formatClock(sec int) string {
	if sec < 0 {
		sec = 0
	}
	h, m, s := sec/3600, sec%3600/60, sec%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// formatBytes formats a byte count with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}

func formatBitRate(bps int) string {
	switch {
	case bps >= 1_000_000:
		return fmt.Sprintf("%.2f Mbps", float64(bps)/1_000_000)
	case bps >= 1_000:
		return fmt.Sprintf("%.1f kbps", float64(bps)/1_000)
	default:
		return fmt.Sprintf("%d bps", bps)
	}
}

var _ Formatter = (*MarkdownFormatter)(nil)
