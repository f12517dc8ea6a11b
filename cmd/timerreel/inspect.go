package main

import (
	"fmt"
	"io"

	"github.com/ideamans/go-l10n"

	"github.com/user/timerreel/pkg/adapters/mp4probe"
)

// inspect prints the video track of an MP4 file.
func inspect(w io.Writer, path string, samples bool) error {
	info, err := mp4probe.ProbeFile(path)
	if err != nil {
		return err
	}

	layout := l10n.T("progressive")
	if info.Fragmented {
		layout = l10n.F("fragmented, %d fragments", info.Fragments)
	}

	fmt.Fprintf(w, "%-12s %s\n", l10n.T("File")+":", path)
	fmt.Fprintf(w, "%-12s %s (profile %d, level %d)\n", l10n.T("Codec")+":", info.Codec, info.Profile, info.Level)
	fmt.Fprintf(w, "%-12s %dx%d\n", l10n.T("Size")+":", info.Width, info.Height)
	fmt.Fprintf(w, "%-12s %.2f\n", l10n.T("Frame rate")+":", info.FrameRate())
	fmt.Fprintf(w, "%-12s %d ms\n", l10n.T("Duration")+":", info.DurationMs())
	fmt.Fprintf(w, "%-12s %d (%d %s)\n", l10n.T("Samples")+":", len(info.Samples), info.Keyframes(), l10n.T("keyframes"))
	fmt.Fprintf(w, "%-12s %s\n", l10n.T("Layout")+":", layout)

	if samples {
		fmt.Fprintln(w)
		for i, s := range info.Samples {
			mark := ""
			if s.Keyframe {
				mark = " K"
			}
			fmt.Fprintf(w, "%6d  pts=%-10d dur=%-7d size=%d%s\n", i, s.PtsUs, s.DurUs, s.Size, mark)
		}
	}
	return nil
}
