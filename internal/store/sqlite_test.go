package store

import (
	"path/filepath"
	"testing"

	"github.com/pbaille/aura/internal/domain"
)

func TestSQLiteBackend(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mood_logs.db")
	b, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}

	m, err := OpenMoodLog(b, prefixLabeler{})
	if err != nil {
		t.Fatalf("OpenMoodLog: %v", err)
	}
	for _, text := range []string{"+ a", "- b", "c"} {
		if _, err := m.Append(text); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	want := m.Entries()
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b2.Close()
	got, err := b2.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d=%+v, want %+v", i, got[i], want[i])
		}
	}

	// Append-only: a shorter log is rejected.
	if err := b2.Save(want[:1]); err == nil {
		t.Fatalf("expected error when saving a truncated log")
	}
}

func TestSQLiteRejectsUnknownSentiment(t *testing.T) {
	t.Parallel()

	b, err := OpenSQLite(filepath.Join(t.TempDir(), "mood_logs.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer b.Close()

	err = b.Save([]domain.MoodLogEntry{{Timestamp: "2024-05-01T10:00:00Z", Entry: "x", Sentiment: "ecstatic"}})
	if err == nil {
		t.Fatalf("expected check constraint failure")
	}
	entries, err := b.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("failed save left %d rows", len(entries))
	}
}
