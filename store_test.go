package summitweb

import (
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "site.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPageRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.GetPage("about"); err == nil {
		t.Fatal("expected error for missing page")
	}

	if err := store.SavePage(Page{Slug: "about", Title: "About Us", Body: "# Hello"}); err != nil {
		t.Fatalf("SavePage: %v", err)
	}

	got, err := store.GetPage("about")
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if got.Title != "About Us" || got.Body != "# Hello" {
		t.Errorf("got %+v", got)
	}
	if got.UpdatedAt == "" {
		t.Error("SavePage should stamp updated_at")
	}

	// Saving the same slug overwrites rather than duplicating.
	if err := store.SavePage(Page{Slug: "about", Title: "About", Body: "updated"}); err != nil {
		t.Fatalf("SavePage overwrite: %v", err)
	}
	pages, err := store.ListPages()
	if err != nil {
		t.Fatalf("ListPages: %v", err)
	}
	if len(pages) != 1 || pages[0].Body != "updated" {
		t.Errorf("got %+v, want single updated page", pages)
	}
}

func TestTrainingQueries(t *testing.T) {
	store := newTestStore(t)

	trainings := []Training{
		{ID: ulid.Make().String(), Title: "Past", Date: "2026-01-10", Published: true},
		{ID: ulid.Make().String(), Title: "Soon", Date: "2026-09-01", Published: true},
		{ID: ulid.Make().String(), Title: "Later", Date: "2026-10-05", Published: true},
		{ID: ulid.Make().String(), Title: "Draft", Date: "2026-09-15", Published: false},
	}
	for _, tr := range trainings {
		if err := store.SaveTraining(tr); err != nil {
			t.Fatalf("SaveTraining: %v", err)
		}
	}

	upcoming, err := store.ListTrainings("2026-08-01")
	if err != nil {
		t.Fatalf("ListTrainings: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("got %d upcoming, want 2 (drafts and past excluded)", len(upcoming))
	}
	if upcoming[0].Title != "Soon" || upcoming[1].Title != "Later" {
		t.Errorf("upcoming not in date order: %+v", upcoming)
	}

	all, err := store.ListAllTrainings()
	if err != nil {
		t.Fatalf("ListAllTrainings: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("got %d trainings, want 4 including the draft", len(all))
	}

	draft := trainings[3]
	got, err := store.GetTraining(draft.ID)
	if err != nil {
		t.Fatalf("GetTraining: %v", err)
	}
	if got.Published {
		t.Error("draft should stay unpublished")
	}

	if err := store.DeleteTraining(draft.ID); err != nil {
		t.Fatalf("DeleteTraining: %v", err)
	}
	if _, err := store.GetTraining(draft.ID); err == nil {
		t.Error("expected error after delete")
	}
}

func TestPhotoRoundTrip(t *testing.T) {
	store := newTestStore(t)

	uploaded := Photo{
		ID:       ulid.Make().String(),
		Filename: "retreat.jpg",
		Caption:  "Retreat 2026",
		Source:   "upload",
	}
	imported := Photo{
		ID:       ulid.Make().String(),
		URL:      "https://lh3.example.com/abc",
		Source:   "google",
		SourceID: "media-item-1",
	}
	for _, p := range []Photo{uploaded, imported} {
		if err := store.SavePhoto(p); err != nil {
			t.Fatalf("SavePhoto: %v", err)
		}
	}

	photos, err := store.ListPhotos()
	if err != nil {
		t.Fatalf("ListPhotos: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("got %d photos, want 2", len(photos))
	}

	got, err := store.GetPhoto(uploaded.ID)
	if err != nil {
		t.Fatalf("GetPhoto: %v", err)
	}
	if got.Filename != "retreat.jpg" || got.CreatedAt == "" {
		t.Errorf("got %+v, want filename and stamped created_at", got)
	}

	exists, err := store.HasPhotoSource("media-item-1")
	if err != nil || !exists {
		t.Errorf("HasPhotoSource(media-item-1) = (%v, %v), want true", exists, err)
	}
	exists, err = store.HasPhotoSource("media-item-2")
	if err != nil || exists {
		t.Errorf("HasPhotoSource(media-item-2) = (%v, %v), want false", exists, err)
	}

	if err := store.DeletePhoto(uploaded.ID); err != nil {
		t.Fatalf("DeletePhoto: %v", err)
	}
	if _, err := store.GetPhoto(uploaded.ID); err == nil {
		t.Error("expected error after delete")
	}
}
