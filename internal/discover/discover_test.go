package discover

import (
	"strings"
	"testing"
)

func containsScript(p Page, url string) bool {
	for _, s := range p.Scripts {
		if s == url {
			return true
		}
	}
	return false
}

func TestExtractScriptSources(t *testing.T) {
	body := []byte(`<html><head>
		<script src="/static/app.js"></script>
		<script src="https://cdn.acme.io/vendor.js"></script>
		<script src="bundle.js?v=9"></script>
		<script type="module" src="/js/main"></script>
	</head><body></body></html>`)

	page := Extract(body, "https://example.com/dashboard/")

	wants := []string{
		"https://example.com/static/app.js",
		"https://cdn.acme.io/vendor.js",
		"https://example.com/dashboard/bundle.js?v=9",
		"https://example.com/js/main",
	}
	for _, w := range wants {
		if !containsScript(page, w) {
			t.Errorf("missing script %q, got %v", w, page.Scripts)
		}
	}
}

func TestExtractInlineScripts(t *testing.T) {
	body := []byte(`<html><head>
		<script>var key = "abc";</script>
		<script src="/ext.js"></script>
		<script>   </script>
	</head></html>`)

	page := Extract(body, "https://example.com/")

	if len(page.Inline) != 1 {
		t.Fatalf("inline = %d, want 1 (whitespace-only blocks dropped)", len(page.Inline))
	}
	if !strings.Contains(page.Inline[0], `var key = "abc";`) {
		t.Errorf("inline[0] = %q", page.Inline[0])
	}
}

func TestExtractPreloadAndDataAttrs(t *testing.T) {
	body := []byte(`<html><head>
		<link rel="preload" as="script" href="/pre.js">
		<div data-src="/lazy/widget.js"></div>
		<div data-main="/rjs/main.js"></div>
	</head></html>`)

	page := Extract(body, "https://example.com/")

	for _, w := range []string{
		"https://example.com/pre.js",
		"https://example.com/lazy/widget.js",
		"https://example.com/rjs/main.js",
	} {
		if !containsScript(page, w) {
			t.Errorf("missing %q, got %v", w, page.Scripts)
		}
	}
}

func TestExtractSkipsNonFetchableSchemes(t *testing.T) {
	body := []byte(`<html><head>
		<script src="javascript:void(0)"></script>
		<script src="data:text/javascript;base64,YWJj"></script>
		<script src="//cdn.acme.io/proto.js"></script>
	</head></html>`)

	page := Extract(body, "https://example.com/")

	if !containsScript(page, "https://cdn.acme.io/proto.js") {
		t.Errorf("protocol-relative URL not resolved: %v", page.Scripts)
	}
	for _, s := range page.Scripts {
		if strings.HasPrefix(s, "javascript:") || strings.HasPrefix(s, "data:") {
			t.Errorf("non-fetchable scheme leaked: %q", s)
		}
	}
}

func TestExtractDeduplicates(t *testing.T) {
	body := []byte(`<html>
		<script src="/app.js"></script>
		<script src="/app.js"></script>
	</html>`)

	page := Extract(body, "https://example.com/")
	if len(page.Scripts) != 1 {
		t.Errorf("scripts = %v, want single /app.js", page.Scripts)
	}
}

func TestExtractMalformedHTML(t *testing.T) {
	body := []byte(`<html><script src="/ok.js"><div <<< <script>var x`)

	page := Extract(body, "https://example.com/")
	if !containsScript(page, "https://example.com/ok.js") {
		t.Errorf("best-effort extraction failed: %v", page.Scripts)
	}
}

func TestFromScript(t *testing.T) {
	code := `
		import Vue from "vue";
		import { api } from "./api/client.js";
		var lazy = "/chunks/lazy.0f3a.js";
		loader.src = "https://static.acme.io/w.js?id=4";
		require("analytics");
		var tmpl = "/chunks/" + name + ".js";
	`
	refs := FromScript(code)

	has := func(want string) bool {
		for _, r := range refs {
			if r == want {
				return true
			}
		}
		return false
	}

	for _, w := range []string{
		"vue",
		"./api/client.js",
		"/chunks/lazy.0f3a.js",
		"https://static.acme.io/w.js?id=4",
		"analytics",
	} {
		if !has(w) {
			t.Errorf("missing ref %q, got %v", w, refs)
		}
	}
}

func TestExtractFollowsInlineScriptRefs(t *testing.T) {
	body := []byte(`<html><script>
		var s = document.createElement("script");
		s.src = "/dynamic/loader.js";
	</script></html>`)

	page := Extract(body, "https://example.com/")
	if !containsScript(page, "https://example.com/dynamic/loader.js") {
		t.Errorf("dynamic ref not extracted: %v", page.Scripts)
	}
}
