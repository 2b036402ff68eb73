// Package discover extracts JavaScript asset references from fetched HTML:
// external script URLs resolved against the page base, and inline script
// blocks handed back for direct scanning.
package discover

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Page is the discovery outcome for one HTML document.
type Page struct {
	Scripts []string // absolute JS URLs, deduplicated, document order
	Inline  []string // inline <script> bodies, document order
}

// dataAttrs are non-standard attributes loaders use to reference bundles.
var dataAttrs = []string{"data-src", "data-script", "data-main"}

// Patterns for bundles referenced from inline code rather than markup.
var inlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)["']([^"']*\.js(?:\?[^"']*)?)["']`),
	regexp.MustCompile(`(?i)\bsrc\s*[=:]\s*["']([^"']+\.js(?:\?[^"']*)?)["']`),
	regexp.MustCompile(`(?i)import\s+(?:[\w{},*\s]+\s+from\s+)?["']([^"']+)["']`),
	regexp.MustCompile(`(?i)require\s*\(\s*["']([^"']+)["']\s*\)`),
}

var scriptExtensions = []string{".js", ".mjs", ".jsx", ".ts", ".tsx"}

// Extract tokenizes an HTML body and collects every JS reference it can
// find. Malformed HTML degrades to best-effort: the tokenizer recovers at
// the next tag and an early EOF just ends extraction.
func Extract(body []byte, baseURL string) Page {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	var page Page
	seen := make(map[string]struct{})
	add := func(raw string) {
		resolved := resolve(base, raw)
		if resolved == "" || !looksLikeScript(resolved) {
			return
		}
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}
		page.Scripts = append(page.Scripts, resolved)
	}

	z := html.NewTokenizer(bytes.NewReader(body))
	var inScript bool
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return page

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "script":
				src := attr(tok, "src")
				if src != "" {
					// External scripts keep their URL even without a .js
					// extension; the src attribute is explicit enough.
					if resolved := resolve(base, src); resolved != "" {
						if _, dup := seen[resolved]; !dup {
							seen[resolved] = struct{}{}
							page.Scripts = append(page.Scripts, resolved)
						}
					}
				} else if tt == html.StartTagToken {
					inScript = true
				}
			case "link":
				if strings.EqualFold(attr(tok, "rel"), "preload") && strings.EqualFold(attr(tok, "as"), "script") {
					if href := attr(tok, "href"); href != "" {
						if resolved := resolve(base, href); resolved != "" {
							if _, dup := seen[resolved]; !dup {
								seen[resolved] = struct{}{}
								page.Scripts = append(page.Scripts, resolved)
							}
						}
					}
				}
			}
			for _, name := range dataAttrs {
				if v := attr(tok, name); v != "" {
					add(v)
				}
			}

		case html.TextToken:
			if inScript {
				code := string(z.Text())
				if strings.TrimSpace(code) != "" {
					page.Inline = append(page.Inline, code)
					for _, ref := range FromScript(code) {
						add(ref)
					}
				}
			}

		case html.EndTagToken:
			tok := z.Token()
			if tok.Data == "script" {
				inScript = false
			}
		}
	}
}

// FromScript pulls dynamically referenced bundle paths out of script code:
// string literals ending in .js, src assignments, import and require
// specifiers. Paths with code characters are loader templates, not URLs.
func FromScript(code string) []string {
	seen := make(map[string]struct{})
	var refs []string
	for _, re := range inlinePatterns {
		for _, m := range re.FindAllStringSubmatch(code, -1) {
			ref := strings.TrimSpace(m[1])
			if ref == "" || strings.HasPrefix(ref, "data:") {
				continue
			}
			if strings.ContainsAny(ref, "(){}") {
				continue
			}
			if _, dup := seen[ref]; dup {
				continue
			}
			seen[ref] = struct{}{}
			refs = append(refs, ref)
		}
	}
	return refs
}

// resolve turns raw into an absolute http(s) URL against base, or "".
func resolve(base *url.URL, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "data:") || strings.HasPrefix(raw, "#") {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}
	ref.Fragment = ""
	return ref.String()
}

func looksLikeScript(address string) bool {
	u, err := url.Parse(address)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, ext := range scriptExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return strings.Contains(path, "/js/") || strings.Contains(path, "/javascript/")
}

func attr(tok html.Token, name string) string {
	for _, a := range tok.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}
