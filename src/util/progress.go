package util

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/docker/go-units"
	"github.com/schollz/progressbar/v3"
)

const progressBarWidth = 32

// ProgressLogger tracks file and byte counters while workers write, and
// renders them on a progress bar. It is constructed once per run and shared
// by reference with every worker; the counters are atomic so no further
// locking is needed.
type ProgressLogger struct {
	totalFiles int
	files      atomic.Int32
	bytes      atomic.Int64
	bar        *progressbar.ProgressBar
	done       chan struct{}
}

// NewProgressLogger creates a progress logger for totalFiles files and
// starts its render loop. Pass interval <= 0 to disable rendering (useful in
// tests).
func NewProgressLogger(totalFiles int, interval time.Duration) *ProgressLogger {
	p := &ProgressLogger{
		totalFiles: totalFiles,
		done:       make(chan struct{}),
	}
	if interval > 0 && totalFiles > 0 {
		p.bar = newFileProgressBar(totalFiles)
		go p.render(interval)
	}
	return p
}

// UpdateBytes increments the byte counter.
func (p *ProgressLogger) UpdateBytes(delta int64) {
	if delta != 0 {
		p.bytes.Add(delta)
	}
}

// UpdateFiles increments the file counter.
func (p *ProgressLogger) UpdateFiles(delta int32) {
	if delta != 0 {
		p.files.Add(delta)
	}
}

// Snapshot returns the current file and byte counts.
func (p *ProgressLogger) Snapshot() (int64, int64) {
	return int64(p.files.Load()), p.bytes.Load()
}

// Finish stops the render loop and completes the bar.
func (p *ProgressLogger) Finish() {
	select {
	case <-p.done:
	default:
		close(p.done)
	}
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

func (p *ProgressLogger) render(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var prevFiles int64
	prevBytes := int64(0)
	prevTime := time.Now()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
		}

		curFiles, curBytes := p.Snapshot()
		now := time.Now()
		elapsed := now.Sub(prevTime).Seconds()

		rate := 0.0
		if elapsed > 0 {
			rate = float64(curBytes-prevBytes) / elapsed
		}
		p.bar.Describe(fmt.Sprintf("writing %s (%s/s) ",
			units.BytesSize(float64(curBytes)), units.BytesSize(rate)))
		if delta := curFiles - prevFiles; delta > 0 {
			_ = p.bar.Add64(delta)
		}

		prevFiles, prevBytes, prevTime = curFiles, curBytes, now
		if int(curFiles) >= p.totalFiles {
			_ = p.bar.Finish()
			return
		}
	}
}

func newFileProgressBar(totalFiles int) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		totalFiles,
		progressbar.OptionSetWriter(os.Stdout),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("writing "),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(progressBarWidth),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stdout)
		}),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[light_magenta]━",
			SaucerHead:    "[light_magenta]╸",
			SaucerPadding: "[dark_gray]━",
			BarStart:      "",
			BarEnd:        "[reset]",
		}),
	)
}
