package video

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Progress receives discrete status messages and per-frame advancement
// during an export. Absent by default; writers fall back to NopProgress.
type Progress interface {
	Message(msg string)
	Start(msg string, total int)
	Step()
}

// NopProgress discards all reporting.
type NopProgress struct{}

func (NopProgress) Message(string)    {}
func (NopProgress) Start(string, int) {}
func (NopProgress) Step()             {}

// LogProgress reports through logrus, logging a line every interval
// frames (and the last one).
type LogProgress struct {
	Log      *logrus.Logger
	Interval int

	mu    sync.Mutex // Step may be called from parallel frame writers
	total int
	done  int
}

func NewLogProgress(log *logrus.Logger) *LogProgress {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogProgress{Log: log, Interval: 50}
}

func (p *LogProgress) Message(msg string) {
	p.Log.Info(msg)
}

func (p *LogProgress) Start(msg string, total int) {
	p.total = total
	p.done = 0
	p.Log.WithField("frames", total).Info(msg)
}

func (p *LogProgress) Step() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if p.done == p.total || (p.Interval > 0 && p.done%p.Interval == 0) {
		p.Log.WithFields(logrus.Fields{
			"done":  p.done,
			"total": p.total,
		}).Debug("rendering")
	}
}
