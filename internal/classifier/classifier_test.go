package classifier

import (
	"testing"

	"github.com/pbaille/aura/internal/domain"
)

func TestSentiment(t *testing.T) {
	t.Parallel()

	c := New()
	cases := []struct {
		text string
		want domain.Sentiment
	}{
		{"I feel amazing and wonderful today!", domain.Positive},
		{"This is a horrible and dreadful experience.", domain.Negative},
		{"The book is on the table.", domain.Neutral},
	}
	for _, tc := range cases {
		if got := c.Sentiment(tc.text); got != tc.want {
			t.Fatalf("Sentiment(%q)=%q, want %q (score %.4f)", tc.text, got, tc.want, c.Score(tc.text))
		}
	}
}

func TestLabelThresholds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score float64
		want  domain.Sentiment
	}{
		{1, domain.Positive},
		{0.05, domain.Positive},
		{0.0499, domain.Neutral},
		{0, domain.Neutral},
		{-0.0499, domain.Neutral},
		{-0.05, domain.Negative},
		{-1, domain.Negative},
	}
	for _, tc := range cases {
		if got := Label(tc.score); got != tc.want {
			t.Fatalf("Label(%v)=%q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestScoreRange(t *testing.T) {
	t.Parallel()

	c := New()
	for _, text := range []string{
		"",
		"GREAT!!! best day ever :)",
		"awful awful awful, I hate everything",
		"meh",
	} {
		s := c.Score(text)
		if s < -1 || s > 1 {
			t.Fatalf("Score(%q)=%v out of range", text, s)
		}
		if !c.Sentiment(text).Valid() {
			t.Fatalf("Sentiment(%q) not a known label", text)
		}
	}
}

func TestDetectCrisis(t *testing.T) {
	t.Parallel()

	c := New()
	if !c.DetectCrisis("I am so overwhelmed I can't go on anymore.") {
		t.Fatalf("expected crisis")
	}
	if c.DetectCrisis("I'm going to the store.") {
		t.Fatalf("expected no crisis")
	}
	if !c.DetectCrisis("Everything feels HOPELESS") {
		t.Fatalf("expected case-insensitive match")
	}
}

func TestMatchCrisisSubstring(t *testing.T) {
	t.Parallel()

	c := New()
	// Keywords are matched as substrings, not whole words.
	kw, ok := c.MatchCrisis("the hopelessness of this crossword")
	if !ok || kw != "hopeless" {
		t.Fatalf("MatchCrisis=%q,%v, want %q,true", kw, ok, "hopeless")
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	r := New().Classify("I want to die")
	if !r.Crisis || r.Keyword != "want to die" {
		t.Fatalf("unexpected result: %+v", r)
	}
	if !r.Sentiment.Valid() {
		t.Fatalf("invalid sentiment %q", r.Sentiment)
	}
}
