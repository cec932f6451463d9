package analytics

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "home"},
		{"", "home"},
		{"/about", "about"},
		{"/about/", "about_"},
		{"/programs/leadership", "programs_leadership"},
		{"/a/b/c", "a_b_c"},
		{"no-slash", "no-slash"},
	}
	for _, tt := range tests {
		if got := NormalizePath(tt.path); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestIsTracked(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/about", true},
		{"/admin", false},
		{"/admin/", false},
		{"/admin/page/home/", false},
		{"/administrivia", false}, // prefix match is deliberate
	}
	for _, tt := range tests {
		if got := IsTracked(tt.path); got != tt.want {
			t.Errorf("IsTracked(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
