package scan

import (
	"net/url"
	"strings"
)

// Kind says how a Target is retrieved and whether its content can expand
// the frontier.
type Kind int

const (
	// KindPage is a remote URL expected to serve HTML. Pages expand the
	// frontier with discovered script targets.
	KindPage Kind = iota
	// KindScript is a remote URL expected to serve JavaScript. Scripts
	// are leaves: scanned, never crawled further.
	KindScript
	// KindFile is a local JavaScript file path.
	KindFile
	// KindInline is an in-memory pseudo-asset: an inline <script> block
	// lifted out of a fetched page, scanned without a separate fetch.
	KindInline
)

func (k Kind) String() string {
	switch k {
	case KindPage:
		return "page"
	case KindScript:
		return "script"
	case KindFile:
		return "file"
	default:
		return "inline"
	}
}

// Target is one unit of scan work. Immutable once created.
type Target struct {
	Kind    Kind
	Address string // normalized URL, file path, or page#inline-N
	Depth   int    // 0 for seeds
	Body    string // inline pseudo-assets carry their content here
}

// scriptExtensions mark URLs fetched as script leaves rather than pages.
var scriptExtensions = []string{".js", ".mjs", ".jsx", ".ts", ".tsx"}

// NormalizeAddress canonicalizes a remote address for the visited set:
// fragment dropped, host lowercased, trailing slash trimmed from the path.
// Returns "" for unusable addresses.
func NormalizeAddress(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimRight(u.Path, "/")
	return u.String()
}

// ClassifyURL decides whether a remote seed is fetched as a page or as a
// script leaf, by extension and common bundle path conventions.
func ClassifyURL(address string) Kind {
	u, err := url.Parse(address)
	if err != nil {
		return KindPage
	}
	path := strings.ToLower(u.Path)
	for _, ext := range scriptExtensions {
		if strings.HasSuffix(path, ext) {
			return KindScript
		}
	}
	if strings.Contains(path, "/js/") || strings.Contains(path, "/javascript/") {
		return KindScript
	}
	return KindPage
}
