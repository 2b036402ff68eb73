package scan

import (
	"bytes"
	"strings"
	"time"
)

// Asset is the fetched content of one Target. Bodies are only held for the
// duration of extraction; the final report keeps derived findings and
// context snippets, never asset content.
type Asset struct {
	Target      Target
	Body        []byte
	ContentType string
	StatusCode  int // 0 for local files and inline pseudo-assets
	FetchedAt   time.Time
	Err         error // non-nil marks a fetch failure; Body is empty then
}

// HTML reports whether the asset should go through page discovery. The
// Content-Type header decides when present; otherwise a leading tag is
// enough, since discovery degrades gracefully on non-HTML input.
func (a *Asset) HTML() bool {
	if a.Target.Kind != KindPage {
		return false
	}
	if a.ContentType != "" {
		return strings.Contains(strings.ToLower(a.ContentType), "html")
	}
	trimmed := bytes.TrimLeft(a.Body, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '<'
}
