package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/jsminer/jsminer/internal/scan"
)

// JSONWriter serializes the scan result verbatim: the JSON shape is the
// report contract downstream tooling consumes.
type JSONWriter struct {
	w      io.Writer
	closer io.Closer
}

// NewJSONWriter writes to path, or stdout when path is empty.
func NewJSONWriter(path string) (*JSONWriter, error) {
	var w io.Writer = os.Stdout
	var closer io.Closer
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		w = f
		closer = f
	}
	return &JSONWriter{w: w, closer: closer}, nil
}

func (j *JSONWriter) Write(res *scan.Result) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func (j *JSONWriter) Close() error {
	if j.closer != nil {
		return j.closer.Close()
	}
	return nil
}
