package output

import (
	"path/filepath"
	"strings"

	"github.com/jsminer/jsminer/internal/scan"
)

// Writer renders a completed scan result. The aggregator orders findings
// before any writer runs, so writers never sort.
type Writer interface {
	Write(res *scan.Result) error
	Close() error
}

// NewWriter picks the report format for path by extension (.html for HTML,
// anything else JSON). forceJSON overrides the inference.
func NewWriter(path string, forceJSON bool) (Writer, error) {
	if !forceJSON && strings.EqualFold(filepath.Ext(path), ".html") {
		return NewHTMLWriter(path)
	}
	return NewJSONWriter(path)
}
