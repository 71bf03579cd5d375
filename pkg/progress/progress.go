// Package progress renders per-column progress on the terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Bar is a terminal progress bar sized on the first update, since the
// column total is only known once every table has been read.
type Bar struct {
	out         io.Writer
	description string
	bar         *progressbar.ProgressBar
}

// NewBar creates a bar writing to stderr.
func NewBar(description string) *Bar {
	return NewBarTo(os.Stderr, description)
}

// NewBarTo creates a bar writing to out.
func NewBarTo(out io.Writer, description string) *Bar {
	return &Bar{out: out, description: description}
}

// Update moves the bar to current of total. It has the shape of a
// pipeline progress callback.
func (b *Bar) Update(current, total int, message string) {
	if b.bar == nil {
		b.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(b.out),
			progressbar.OptionSetDescription(b.description),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(b.out)
			}),
		)
	}
	_ = b.bar.Set(current)
}

// Finish completes the bar if it was started.
func (b *Bar) Finish() {
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
}
