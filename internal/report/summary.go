package report

import (
	"fmt"
	"io"
	"time"

	"fortio.org/safecast"
	"github.com/dustin/go-humanize"

	"routescan/internal/diag"
	"routescan/internal/driver"
)

// Summary is the batch totals printed after a scan.
type Summary struct {
	Units     int           `json:"units"`
	Endpoints int           `json:"endpoints"`
	Errors    int           `json:"errors"`
	Warnings  int           `json:"warnings"`
	Infos     int           `json:"infos"`
	CacheHits int           `json:"cacheHits"`
	Bytes     int64         `json:"bytes"`
	Elapsed   time.Duration `json:"elapsedNs"`
}

// Summarize counts a batch; elapsed is measured by the caller.
func Summarize(b *driver.Batch, elapsed time.Duration) Summary {
	s := Summary{
		Units:     len(b.Units),
		Endpoints: len(b.Endpoints),
		CacheHits: b.CacheHits,
		Bytes:     b.Bytes,
		Elapsed:   elapsed,
	}
	for _, d := range b.Diagnostics() {
		switch d.Severity {
		case diag.SevError:
			s.Errors++
		case diag.SevWarning:
			s.Warnings++
		default:
			s.Infos++
		}
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}

// String is the one-line form: "6 files (12 kB) in 3ms: 35 endpoints, ...".
func (s Summary) String() string {
	size, err := safecast.Conv[uint64](s.Bytes)
	if err != nil {
		size = 0
	}
	line := fmt.Sprintf("%s (%s) in %s: %s, %s, %s, %s",
		plural(s.Units, "file"), humanize.Bytes(size), s.Elapsed.Round(time.Microsecond),
		plural(s.Endpoints, "endpoint"), plural(s.Errors, "error"),
		plural(s.Warnings, "warning"), plural(s.Infos, "info"))
	if s.CacheHits > 0 {
		line += fmt.Sprintf("; %d cached", s.CacheHits)
	}
	return line
}

// PrettySummary writes the summary line, bold when colour is on.
func PrettySummary(w io.Writer, s Summary, opts Options) error {
	st := newStyles(opts.Color)
	_, err := fmt.Fprintln(w, st.header.Sprint(s.String()))
	return err
}
