// Package audio holds the opaque audio handle attached to clips. Audio
// internals (sample synthesis, resampling) are an external concern: a clip
// carries at most a reference to an encoded audio file, and the encoder
// boundary muxes it into the output container.
package audio

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Clip is a file-backed audio handle.
type Clip struct {
	Path     string
	Duration float64 // seconds
}

// FromFile probes an audio file with ffprobe and returns a handle with
// its duration.
func FromFile(path string) (*Clip, error) {
	dur, err := probeDuration(path)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	return &Clip{Path: path, Duration: dur}, nil
}

func probeDuration(path string) (float64, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %v: %s", err, strings.TrimSpace(string(out)))
	}
	return strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
}
