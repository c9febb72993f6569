// ABOUTME: Unit tests for Charm snapshot key handling.
// ABOUTME: Covers date key parsing, ordering, and malformed keys.
package charm

import (
	"testing"
	"time"
)

func TestParseDateKeysSnapshots(t *testing.T) {
	got := parseDateKeys([]string{"2025-07-18", "not-a-date", "2025-07-20", "2025-07-19"})
	if len(got) != 3 {
		t.Fatalf("expected 3 dates, got %d", len(got))
	}

	want := []time.Time{
		time.Date(2025, 7, 20, 0, 0, 0, 0, time.Local),
		time.Date(2025, 7, 19, 0, 0, 0, 0, time.Local),
		time.Date(2025, 7, 18, 0, 0, 0, 0, time.Local),
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("date %d: expected %s, got %s", i, want[i].Format("2006-01-02"), got[i].Format("2006-01-02"))
		}
	}
}

func TestParseDateKeysEmpty(t *testing.T) {
	if got := parseDateKeys(nil); len(got) != 0 {
		t.Errorf("expected no dates, got %d", len(got))
	}
}
