package summitweb

import (
	"testing"
	"time"
)

func TestLoginLimiter(t *testing.T) {
	l := NewLoginLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Check("1.2.3.4") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
		l.Record("1.2.3.4")
	}

	if l.Check("1.2.3.4") {
		t.Error("fourth attempt should be blocked")
	}
	if !l.Check("5.6.7.8") {
		t.Error("limits are per IP, other address should be allowed")
	}
}

func TestLoginLimiterWindowExpiry(t *testing.T) {
	l := NewLoginLimiter(1, 50*time.Millisecond)

	l.Record("1.2.3.4")
	if l.Check("1.2.3.4") {
		t.Fatal("attempt within the window should be blocked")
	}

	time.Sleep(60 * time.Millisecond)
	if !l.Check("1.2.3.4") {
		t.Error("attempt after the window should be allowed again")
	}
}
