package summitweb

import (
	"encoding/json"
	"strings"
)

// Slugify converts a title to a URL-safe slug: lowercase alphanumeric runs
// joined by single dashes.
func Slugify(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		return !isAlnum
	})
	return strings.Join(words, "-")
}

// BuildURL joins the site base URL with path segments. Paths with segments
// get a trailing slash to match the route style.
func BuildURL(base string, segments ...string) string {
	u := strings.TrimRight(base, "/")
	if len(segments) == 0 {
		return u
	}
	return u + "/" + strings.Join(segments, "/") + "/"
}

// FilterEmpty removes empty and whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}

// OrganizationJsonLD returns a JSON-LD Organization snippet for the site head.
func OrganizationJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "Organization",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		data["contactPoint"] = map[string]string{
			"@type": "ContactPoint",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// TrainingJsonLD returns a JSON-LD Event snippet describing a training.
func TrainingJsonLD(t Training, cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "Event",
		"name":        t.Title,
		"startDate":   t.Date,
		"description": t.Summary,
		"organizer": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
			"url":   cfg.URL,
		},
	}
	if t.EndDate != "" {
		data["endDate"] = t.EndDate
	}
	if t.Location != "" {
		data["location"] = map[string]string{
			"@type": "Place",
			"name":  t.Location,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
