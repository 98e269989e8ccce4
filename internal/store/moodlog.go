package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pbaille/aura/internal/domain"
)

// Labeler derives the sentiment label stored with each entry
type Labeler interface {
	Sentiment(text string) domain.Sentiment
}

// MoodLog is the in-memory mood log mirrored to a Backend
type MoodLog struct {
	backend Backend
	labeler Labeler
	entries []domain.MoodLogEntry

	now   func() time.Time
	idGen func() string
}

// OpenMoodLog loads all entries from backend. A missing log is empty; a log
// that cannot be decoded or holds an invalid entry is a StartupError.
func OpenMoodLog(backend Backend, labeler Labeler) (*MoodLog, error) {
	entries, err := backend.Load()
	if err != nil {
		return nil, &domain.StartupError{Path: backend.Location(), Err: err}
	}
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, &domain.StartupError{
				Path: backend.Location(),
				Err:  fmt.Errorf("entry %d: %w", i, err),
			}
		}
	}

	return &MoodLog{
		backend: backend,
		labeler: labeler,
		entries: entries,
		now:     time.Now,
		idGen:   func() string { return uuid.New().String() },
	}, nil
}

// Close releases the backend
func (m *MoodLog) Close() error {
	return m.backend.Close()
}

// Append labels text, appends it and persists the whole log. When the write
// fails the entry is dropped again and a *domain.StorageError is returned.
func (m *MoodLog) Append(text string) (domain.MoodLogEntry, error) {
	entry := domain.MoodLogEntry{
		ID:        m.idGen(),
		Timestamp: m.now().Format(time.RFC3339Nano),
		Entry:     text,
		Sentiment: m.labeler.Sentiment(text),
	}

	m.entries = append(m.entries, entry)
	if err := m.backend.Save(m.entries); err != nil {
		m.entries = m.entries[:len(m.entries)-1]
		return domain.MoodLogEntry{}, &domain.StorageError{Op: "append entry", Err: err}
	}

	return entry, nil
}

// Len returns the number of entries
func (m *MoodLog) Len() int {
	return len(m.entries)
}

// Entries returns a copy of all entries, oldest first
func (m *MoodLog) Entries() []domain.MoodLogEntry {
	return append([]domain.MoodLogEntry(nil), m.entries...)
}

// Recent returns a copy of the last n entries, oldest first
func (m *MoodLog) Recent(n int) []domain.MoodLogEntry {
	if n <= 0 {
		return nil
	}
	start := len(m.entries) - n
	if start < 0 {
		start = 0
	}
	return append([]domain.MoodLogEntry(nil), m.entries[start:]...)
}

// Summarize counts labels over the last n entries
func (m *MoodLog) Summarize(n int) domain.Summary {
	var s domain.Summary
	for _, e := range m.Recent(n) {
		switch e.Sentiment {
		case domain.Positive:
			s.Positive++
		case domain.Negative:
			s.Negative++
		default:
			s.Neutral++
		}
		s.Total++
	}
	return s
}

// Find returns the newest entry whose ID starts with prefix
func (m *MoodLog) Find(prefix string) (domain.MoodLogEntry, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return domain.MoodLogEntry{}, domain.ErrUnknownEntry
	}
	for i := len(m.entries) - 1; i >= 0; i-- {
		if strings.HasPrefix(m.entries[i].ID, prefix) {
			return m.entries[i], nil
		}
	}
	return domain.MoodLogEntry{}, fmt.Errorf("%w: %s", domain.ErrUnknownEntry, prefix)
}
