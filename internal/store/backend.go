package store

import (
	"github.com/pbaille/aura/internal/domain"
	"github.com/pbaille/aura/internal/fileutils"
)

// Backend is durable storage for the mood log. Save receives the full
// sequence and must leave the previous content intact when it fails.
type Backend interface {
	Load() ([]domain.MoodLogEntry, error)
	Save(entries []domain.MoodLogEntry) error
	Location() string
	Close() error
}

var (
	_ Backend = (*JSONFile)(nil)
	_ Backend = (*SQLite)(nil)
)

// JSONFile keeps the mood log as a JSON array, rewritten whole on every save
type JSONFile struct {
	path string
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (j *JSONFile) Location() string { return j.path }

func (j *JSONFile) Load() ([]domain.MoodLogEntry, error) {
	var entries []domain.MoodLogEntry
	if _, err := fileutils.ReadJSONStrict(j.path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (j *JSONFile) Save(entries []domain.MoodLogEntry) error {
	if entries == nil {
		entries = []domain.MoodLogEntry{}
	}
	return fileutils.WriteJSONFileAtomic(j.path, entries)
}

func (j *JSONFile) Close() error { return nil }
