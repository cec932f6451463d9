package summitweb

// Page is an editable content page stored in SQLite and rendered by templates.
// The public site serves a fixed set of slugs (home, about, mission, programs,
// contact, gallery, calendar); the body is markdown.
type Page struct {
	Slug      string
	Title     string
	Body      string
	UpdatedAt string // RFC3339
}

// Training is a scheduled leadership program shown on the programs page and
// the calendar.
type Training struct {
	ID        string // ULID
	Title     string
	Date      string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD, empty for single-day trainings
	Location  string
	Summary   string
	Body      string
	Published bool
}

// Photo is gallery photo metadata. Source is "upload" for admin uploads and
// "google" for items imported from Google Photos; SourceID dedupes re-imports.
type Photo struct {
	ID        string // ULID
	Filename  string // local filename under uploads/, empty for remote photos
	URL       string // remote base URL for imported photos
	Caption   string
	Album     string
	Source    string
	SourceID  string
	TakenAt   string // RFC3339, empty if unknown
	CreatedAt string // RFC3339
}

// Image is upload metadata returned by the image processor.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// ContactMessage is a submitted contact form, passed to the email notifier.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}
