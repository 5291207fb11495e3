package internal

import (
	"github.com/schollz/progressbar/v3"
)

// ProgressBar wraps the terminal progress bar used for long runs.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a progress bar with a description.
func NewProgressBar(max int64, description string) *ProgressBar {
	bar := progressbar.NewOptions64(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return &ProgressBar{bar: bar}
}

// Set moves the bar to an absolute position.
func (pb *ProgressBar) Set(value int64) {
	_ = pb.bar.Set64(value)
}

// Add advances the bar.
func (pb *ProgressBar) Add(delta int64) {
	_ = pb.bar.Add64(delta)
}

// Finish completes and clears the bar.
func (pb *ProgressBar) Finish() {
	_ = pb.bar.Finish()
}
