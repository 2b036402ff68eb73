package scan

import "testing"

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://Example.COM/App.js", "https://example.com/App.js"},
		{"https://example.com/page/", "https://example.com/page"},
		{"https://example.com/app.js#main", "https://example.com/app.js"},
		{"  https://example.com/x ", "https://example.com/x"},
		{"/relative/only", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeAddress(tt.in); got != tt.want {
			t.Errorf("NormalizeAddress(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassifyURL(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"https://example.com/static/app.js", KindScript},
		{"https://example.com/bundle.min.js?v=3", KindScript},
		{"https://example.com/mod.mjs", KindScript},
		{"https://example.com/src/App.tsx", KindScript},
		{"https://example.com/js/vendor", KindScript},
		{"https://example.com/", KindPage},
		{"https://example.com/dashboard", KindPage},
		{"https://example.com/json/data", KindPage},
	}
	for _, tt := range tests {
		if got := ClassifyURL(tt.in); got != tt.want {
			t.Errorf("ClassifyURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
