package classifier

import (
	"strings"

	"github.com/jonreiter/govader"
	"github.com/pbaille/aura/internal/domain"
)

// Compound score thresholds for labelling
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// CrisisKeywords trigger the crisis flow. Matching is a plain substring test on
// the lowercased text, so a keyword embedded in a longer word also matches.
var CrisisKeywords = []string{
	"kill myself", "suicide", "can't go on", "end my life",
	"overwhelmed", "hopeless", "want to die", "harm myself",
}

// Result holds the classification output for one text
type Result struct {
	Score     float64          `json:"score"`
	Sentiment domain.Sentiment `json:"sentiment"`
	Crisis    bool             `json:"crisis"`
	Keyword   string           `json:"keyword,omitempty"`
}

// Classifier scores sentiment with the VADER lexicon and flags crisis language
type Classifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
	keywords []string
}

// New creates a new Classifier
func New() *Classifier {
	return &Classifier{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
		keywords: CrisisKeywords,
	}
}

// Classify runs both sentiment scoring and crisis detection
func (c *Classifier) Classify(text string) Result {
	score := c.Score(text)
	keyword, crisis := c.MatchCrisis(text)
	return Result{
		Score:     score,
		Sentiment: Label(score),
		Crisis:    crisis,
		Keyword:   keyword,
	}
}

// Score returns the compound polarity score in [-1, 1]
func (c *Classifier) Score(text string) float64 {
	return c.analyzer.PolarityScores(text).Compound
}

// Sentiment returns the label for text
func (c *Classifier) Sentiment(text string) domain.Sentiment {
	return Label(c.Score(text))
}

// DetectCrisis reports whether text contains any crisis keyword
func (c *Classifier) DetectCrisis(text string) bool {
	_, ok := c.MatchCrisis(text)
	return ok
}

// MatchCrisis returns the first crisis keyword found in text
func (c *Classifier) MatchCrisis(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}

// Label maps a compound score to a sentiment label
func Label(score float64) domain.Sentiment {
	switch {
	case score >= PositiveThreshold:
		return domain.Positive
	case score <= NegativeThreshold:
		return domain.Negative
	default:
		return domain.Neutral
	}
}
