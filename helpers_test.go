package summitweb

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Leading Through Change", "leading-through-change"},
		{"  Mountain  Retreat  ", "mountain-retreat"},
		{"Q3 2026: Offsite!", "q3-2026-offsite"},
		{"already-slugged", "already-slugged"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"about"}, "https://example.com/about/"},
		{"https://example.com/", []string{"programs", "leadership"}, "https://example.com/programs/leadership/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{"a", "", "  ", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v, want [a b]", got)
	}
}

func TestGroupByMonth(t *testing.T) {
	trainings := []Training{
		{Title: "A", Date: "2026-03-05"},
		{Title: "B", Date: "2026-03-20"},
		{Title: "C", Date: "2026-04-01"},
		{Title: "Bad", Date: "junk"},
	}

	months := groupByMonth(trainings)
	if len(months) != 2 {
		t.Fatalf("got %d months, want 2", len(months))
	}
	if months[0].Month != "2026-03" || months[0].Label != "March 2026" {
		t.Errorf("first month = %+v", months[0])
	}
	if len(months[0].Trainings) != 2 || len(months[1].Trainings) != 1 {
		t.Errorf("bucket sizes wrong: %d and %d", len(months[0].Trainings), len(months[1].Trainings))
	}
}

func TestOrganizationJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Summit Leadership Group", URL: "https://example.com", Description: "Leadership programs"}
	got := OrganizationJsonLD(cfg)
	for _, want := range []string{`"@type":"Organization"`, `"name":"Summit Leadership Group"`} {
		if !strings.Contains(got, want) {
			t.Errorf("JSON-LD missing %s: %s", want, got)
		}
	}
}

func TestTrainingJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Summit Leadership Group", URL: "https://example.com"}
	tr := Training{Title: "Retreat", Date: "2026-09-01", EndDate: "2026-09-03", Location: "Estes Park, CO"}
	got := TrainingJsonLD(tr, cfg)
	for _, want := range []string{`"@type":"Event"`, `"startDate":"2026-09-01"`, `"endDate":"2026-09-03"`, `"Estes Park, CO"`} {
		if !strings.Contains(got, want) {
			t.Errorf("JSON-LD missing %s: %s", want, got)
		}
	}
}
