package analytics

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Storage is a minimal key-value view over client-scoped state. The durable
// flavor survives across visits (long-lived cookies); the session flavor
// lasts for one browsing session. Implementations must not fail: a Get on a
// client with storage disabled just reports absence.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Client-local storage keys.
const (
	visitorKey   = "sw_visitor_id"
	lastVisitKey = "sw_last_visit"
	sessionKey   = "sw_session_id"
)

// Identity is the resolved visitor/session identity for one page view.
type Identity struct {
	VisitorID       string
	SessionID       string
	NewVisitorToday bool // first counted view for this visitor on this calendar day
	NewSession      bool // first counted view of this browsing session
}

// Resolve derives the visitor and session identity from the given storage
// handles. A missing visitor or session identifier is generated and persisted;
// the last-visit marker is advanced to today when the visitor is new for the
// day. A nil storage handle degrades gracefully: every view counts as both a
// new visitor and a new session rather than failing.
func Resolve(durable, session Storage, now time.Time) Identity {
	today := now.Format(DateLayout)
	id := Identity{NewVisitorToday: true, NewSession: true}

	if durable != nil {
		if v, ok := durable.Get(visitorKey); ok && v != "" {
			id.VisitorID = v
		} else {
			id.VisitorID = ulid.Make().String()
			durable.Set(visitorKey, id.VisitorID)
		}
		if last, ok := durable.Get(lastVisitKey); ok && last == today {
			id.NewVisitorToday = false
		} else {
			durable.Set(lastVisitKey, today)
		}
	} else {
		id.VisitorID = ulid.Make().String()
	}

	if session != nil {
		if v, ok := session.Get(sessionKey); ok && v != "" {
			id.SessionID = v
			id.NewSession = false
		} else {
			id.SessionID = ulid.Make().String()
			session.Set(sessionKey, id.SessionID)
		}
	} else {
		id.SessionID = ulid.Make().String()
	}

	return id
}
