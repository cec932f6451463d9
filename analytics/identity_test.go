package analytics

import (
	"testing"
	"time"
)

// mapStorage is an in-memory Storage for tests.
type mapStorage map[string]string

func (m mapStorage) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m mapStorage) Set(key, value string) {
	m[key] = value
}

func TestResolveFirstVisit(t *testing.T) {
	durable := mapStorage{}
	session := mapStorage{}
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	id := Resolve(durable, session, now)

	if id.VisitorID == "" || id.SessionID == "" {
		t.Fatalf("expected generated ids, got %+v", id)
	}
	if !id.NewVisitorToday || !id.NewSession {
		t.Errorf("first visit should be new visitor and new session, got %+v", id)
	}
	if durable[visitorKey] != id.VisitorID {
		t.Errorf("visitor id not persisted: storage has %q", durable[visitorKey])
	}
	if durable[lastVisitKey] != "2026-03-14" {
		t.Errorf("last visit = %q, want 2026-03-14", durable[lastVisitKey])
	}
	if session[sessionKey] != id.SessionID {
		t.Errorf("session id not persisted: storage has %q", session[sessionKey])
	}
}

func TestResolveRepeatVisitSameDay(t *testing.T) {
	durable := mapStorage{}
	session := mapStorage{}
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	first := Resolve(durable, session, now)
	second := Resolve(durable, session, now.Add(5*time.Minute))

	if second.VisitorID != first.VisitorID {
		t.Errorf("visitor id changed across views: %q vs %q", first.VisitorID, second.VisitorID)
	}
	if second.SessionID != first.SessionID {
		t.Errorf("session id changed within a session: %q vs %q", first.SessionID, second.SessionID)
	}
	if second.NewVisitorToday {
		t.Error("repeat view on the same day should not be a new visitor")
	}
	if second.NewSession {
		t.Error("repeat view in the same session should not be a new session")
	}
}

func TestResolveReturningVisitorNextDay(t *testing.T) {
	durable := mapStorage{}
	day1 := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC)

	first := Resolve(durable, mapStorage{}, day1)
	second := Resolve(durable, mapStorage{}, day2)

	if second.VisitorID != first.VisitorID {
		t.Errorf("durable visitor id should survive the day boundary")
	}
	if !second.NewVisitorToday {
		t.Error("first view of a new day should count as a new visitor")
	}
	if !second.NewSession {
		t.Error("a fresh session store should count as a new session")
	}
}

func TestResolveNilStorage(t *testing.T) {
	now := time.Now()

	first := Resolve(nil, nil, now)
	second := Resolve(nil, nil, now)

	for _, id := range []Identity{first, second} {
		if id.VisitorID == "" || id.SessionID == "" {
			t.Fatalf("expected generated ids even without storage, got %+v", id)
		}
		if !id.NewVisitorToday || !id.NewSession {
			t.Errorf("without storage every view is a new visitor and session, got %+v", id)
		}
	}
	if first.VisitorID == second.VisitorID {
		t.Error("without storage each view should get a fresh visitor id")
	}
}
