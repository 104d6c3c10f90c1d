package cmd

import (
	"fmt"
	"io"

	"github.com/net64plus/net64update"
)

// progressPrinter writes the download progress on a single terminal line,
// once per percent (or per megabyte when the size is unknown)
func progressPrinter(w io.Writer, name string) net64update.ProgressFunc {
	last := int64(-1)
	return func(p net64update.Progress) {
		step := p.Transferred >> 20
		if p.Total > 0 {
			step = int64(p.Percent())
		}
		if step == last && !p.Done() {
			return
		}
		last = step
		if p.Total > 0 {
			_, _ = fmt.Fprintf(w, "\r%s: %3d%% (%d/%d bytes)", name, step, p.Transferred, p.Total)
		} else {
			_, _ = fmt.Fprintf(w, "\r%s: %d bytes", name, p.Transferred)
		}
		if p.Done() {
			_, _ = fmt.Fprintln(w)
		}
	}
}
