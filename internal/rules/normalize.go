package rules

import (
	"net/url"
	"strings"
)

// endpointSkip marks path fragments that are almost always static assets or
// bundler noise rather than live API surface.
var endpointSkip = []string{
	"/static/", "/assets/", "/images/", "/img/", "/css/", "/js/",
	"/fonts/", "/favicon", ".png", ".jpg", ".gif", ".svg", ".css",
	".js", ".map", ".woff", ".ttf", ".ico", "node_modules",
}

// endpointCritical and endpointInteresting drive the severity ladder for
// endpoint values.
var (
	endpointCritical = []string{"admin", "internal", "debug", "backup", "config"}

	endpointInteresting = []string{
		"auth", "login", "token", "oauth", "api/v", "graphql", "upload",
		"download", "export", "user", "account", "password", "reset",
		"verify", "webhook", "callback",
	}
)

// urlSkipDomains are CDNs and ubiquitous third parties whose URLs carry no
// signal about the scanned application.
var urlSkipDomains = []string{
	"google.com", "googleapis.com", "gstatic.com", "google-analytics.com",
	"facebook.com", "fbcdn.net", "twitter.com", "twimg.com",
	"cloudflare.com", "jsdelivr.net", "unpkg.com", "cdnjs.cloudflare.com",
	"jquery.com", "bootstrapcdn.com", "fontawesome.com",
	"w3.org", "schema.org", "mozilla.org", "github.com",
}

var (
	urlPrivate = []string{"localhost", "127.0.0.1", "0.0.0.0", "192.168.", "10.", "172.16."}
	urlStaging = []string{"staging", "dev", "test", "uat", "qa", "preprod", ".local", ".internal"}
)

// NormalizeEndpoint canonicalizes an endpoint value for deduplication:
// quotes stripped, query string dropped, trailing slash removed. Returns ""
// for values that are not plausible endpoints.
func NormalizeEndpoint(v string) string {
	v = strings.Trim(v, "\"'`\n\r\t ")
	if !strings.HasPrefix(v, "/") || len(v) < 3 {
		return ""
	}
	if i := strings.IndexByte(v, '?'); i >= 0 {
		v = v[:i]
	}
	v = strings.TrimRight(v, "/")
	return v
}

// NormalizeURL strips quoting and trailing punctuation and rejects values
// without a scheme and host.
func NormalizeURL(v string) string {
	v = strings.Trim(v, "\"'`\n\r\t ,;")
	for len(v) > 0 && strings.ContainsRune(".,;:!?)>]}'\"", rune(v[len(v)-1])) {
		v = v[:len(v)-1]
	}
	u, err := url.Parse(v)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return v
}

func endpointFalsePositive(v string) bool {
	lower := strings.ToLower(v)
	for _, skip := range endpointSkip {
		if strings.Contains(lower, skip) {
			return true
		}
	}
	return false
}

func skippedHost(v string) bool {
	u, err := url.Parse(v)
	if err != nil {
		return true
	}
	host := strings.ToLower(u.Hostname())
	for _, d := range urlSkipDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// EffectiveSeverity resolves the severity for a match. Secret rules carry a
// fixed severity; endpoint and URL severities depend on the matched value.
func EffectiveSeverity(m RawMatch) Severity {
	switch m.Rule.Category {
	case CategoryEndpoint:
		return endpointSeverity(m.Value)
	case CategoryURL:
		return urlSeverity(m.Value, m.Rule.Severity)
	default:
		return m.Rule.Severity
	}
}

func endpointSeverity(v string) Severity {
	lower := strings.ToLower(v)
	for _, kw := range endpointCritical {
		if strings.Contains(lower, kw) {
			return SeverityHigh
		}
	}
	for _, kw := range endpointInteresting {
		if strings.Contains(lower, kw) {
			return SeverityMedium
		}
	}
	return SeverityInfo
}

func urlSeverity(v string, base Severity) Severity {
	lower := strings.ToLower(v)
	for _, p := range urlPrivate {
		if strings.Contains(lower, p) {
			return SeverityHigh
		}
	}
	for _, p := range urlStaging {
		if strings.Contains(lower, p) {
			return SeverityMedium
		}
	}
	if strings.Contains(lower, "admin") || strings.Contains(lower, "api") || strings.Contains(lower, "debug") {
		return SeverityMedium
	}
	return base
}
