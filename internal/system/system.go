// Package system probes the host: available encoders, sensible worker
// counts, and helper lookups for the CLI.
package system

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
)

// frame buffer cost used to bound parallel frame writers: a float64
// raster of a 1080p frame plus the encoded copy.
const perWorkerBytes = 64 << 20

// RenderWorkers returns a worker count for parallel frame writing,
// bounded by CPU count and by available memory so that large float
// rasters do not exhaust RAM.
func RenderWorkers() int {
	workers := runtime.NumCPU()

	vm, err := mem.VirtualMemory()
	if err == nil {
		byMem := int(vm.Available / perWorkerBytes)
		if byMem < 1 {
			byMem = 1
		}
		if byMem < workers {
			workers = byMem
		}
	}
	return workers
}

// GetBestH264Encoder probes ffmpeg for hardware H.264 encoders, falling
// back to libx264.
func GetBestH264Encoder() string {
	out, err := exec.Command("ffmpeg", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	for _, enc := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(string(out), enc) {
			return enc
		}
	}
	return "libx264"
}

// FindLatestScene returns the most recently modified .yaml file in dir.
func FindLatestScene(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latest string
	var latestTime time.Time
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latest = filepath.Join(dir, e.Name())
		}
	}

	if latest == "" {
		return "", fmt.Errorf("no scene files found in %s", dir)
	}
	return latest, nil
}
