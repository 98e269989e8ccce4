package domain

import (
	"fmt"
	"time"
)

// Sentiment is the label derived from an entry's compound polarity score
type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// Valid reports whether s is one of the three known labels
func (s Sentiment) Valid() bool {
	switch s {
	case Positive, Negative, Neutral:
		return true
	}
	return false
}

// UserProfile is the single local user
type UserProfile struct {
	Name string `json:"name" jsonschema:"description=Name the user asked to be called"`
}

// MoodLogEntry is one journal check-in. Entries are appended and never edited.
type MoodLogEntry struct {
	ID        string    `json:"id,omitempty" jsonschema:"description=UUID assigned at append time"`
	Timestamp string    `json:"timestamp" jsonschema:"required,description=ISO-8601 time of the check-in"`
	Entry     string    `json:"entry" jsonschema:"required"`
	Sentiment Sentiment `json:"sentiment" jsonschema:"required,enum=positive,enum=negative,enum=neutral"`
}

// TimestampLayouts are accepted when reading entries back.
// The second one is what naive local ISO-8601 writers produce.
var TimestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// Time parses the entry timestamp
func (e MoodLogEntry) Time() (time.Time, error) {
	for _, layout := range TimestampLayouts {
		if t, err := time.ParseInLocation(layout, e.Timestamp, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", e.Timestamp)
}

// Validate checks the shape of an entry read from storage
func (e MoodLogEntry) Validate() error {
	if e.Timestamp == "" {
		return fmt.Errorf("missing timestamp")
	}
	if _, err := e.Time(); err != nil {
		return err
	}
	if !e.Sentiment.Valid() {
		return fmt.Errorf("invalid sentiment %q", e.Sentiment)
	}
	return nil
}

// Article is a curated resource under a topic
type Article struct {
	Title   string `json:"title" jsonschema:"required"`
	Summary string `json:"summary"`
}

// CrisisHelpline is shown instead of logging when crisis language is detected
type CrisisHelpline struct {
	Name       string `json:"name"`
	Info       string `json:"info"`
	Disclaimer string `json:"disclaimer"`
}

// Summary counts labels over the most recent entries.
// Neutral entries count toward Total.
type Summary struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
	Total    int `json:"total"`
}
