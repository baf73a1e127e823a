package utils

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Standard progress bar descriptions
const (
	DescIndexing = "Indexing"
	DescWalking  = "Walking"
)

// NewProgressBar creates a consistently styled progress bar.
//
// Parameters:
//   - total: Total number of items. Use -1 for unknown totals (indeterminate/spinner mode).
//   - description: Text description to show before the progress bar (e.g., DescIndexing).
//
// Example:
//
//	bar := utils.NewProgressBar(len(entities), utils.DescIndexing)
//	defer bar.Finish()
func NewProgressBar(total int, description string) *progressbar.ProgressBar {
	return newProgressBar(total, description)
}

// NewProgressBarTo is NewProgressBar writing to w instead of stdout
func NewProgressBarTo(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return newProgressBar(total, description, progressbar.OptionSetWriter(w))
}

func newProgressBar(total int, description string, extra ...progressbar.Option) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts,
			progressbar.OptionShowIts(),
		)
	}

	opts = append(opts, extra...)
	return progressbar.NewOptions(total, opts...)
}
