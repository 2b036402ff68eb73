package output

import (
	"fmt"
	"io"
	"time"

	"github.com/jsminer/jsminer/internal/scan"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorDim    = "\033[2m"
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// TextWriter prints the console report: a severity-ordered finding list and
// a summary footer. Verbose mode additionally lists per-target errors.
type TextWriter struct {
	w       io.Writer
	noColor bool
	quiet   bool
	verbose bool
}

// NewTextWriter writes the console report to w (normally stdout).
func NewTextWriter(w io.Writer, noColor, quiet, verbose bool) *TextWriter {
	return &TextWriter{w: w, noColor: noColor, quiet: quiet, verbose: verbose}
}

func (t *TextWriter) Write(res *scan.Result) error {
	for _, f := range res.Findings {
		color := t.severityColor(f.Severity)
		reset := colorReset
		dim := colorDim
		if t.noColor {
			color, reset, dim = "", "", ""
		}
		low := ""
		if f.Low {
			low = " (low confidence)"
		}
		if _, err := fmt.Fprintf(t.w, "%s%-8s%s  %-8s  %-28s  %s%s\n",
			color, f.Severity, reset, f.Category, f.Type, f.Value, low); err != nil {
			return err
		}
		if t.verbose {
			if _, err := fmt.Fprintf(t.w, "%s          source: %s\n          context: %s%s\n",
				dim, f.Source, f.Context, reset); err != nil {
				return err
			}
		}
	}

	if t.verbose && len(res.Errors) > 0 {
		fmt.Fprintf(t.w, "\nFetch errors (%d):\n", len(res.Errors))
		for _, e := range res.Errors {
			fmt.Fprintf(t.w, "  - %s: %s\n", e.Target, e.Error)
		}
	}

	if t.quiet {
		return nil
	}

	s := res.Summary
	_, err := fmt.Fprintf(t.w,
		"\nTargets: %d | Fetched: %d | Errors: %d | Findings: %d (secret %d, endpoint %d, url %d) | %s\n",
		s.Targets, s.Fetched, s.FetchErrors, s.Findings,
		s.ByCategory["secret"], s.ByCategory["endpoint"], s.ByCategory["url"],
		res.Duration.Round(time.Millisecond),
	)
	return err
}

func (t *TextWriter) Close() error { return nil }

func (t *TextWriter) severityColor(severity string) string {
	switch severity {
	case "critical":
		return colorRed
	case "high":
		return colorYellow
	case "medium":
		return colorCyan
	default:
		return colorGreen
	}
}
