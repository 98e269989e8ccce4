package resources

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pbaille/aura/internal/domain"
	"github.com/pbaille/aura/internal/fileutils"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// File is the on-disk shape of resources.json. Topic order is preserved.
type File struct {
	Topics         *orderedmap.OrderedMap[string, []domain.Article] `json:"topics"`
	CrisisHelpline domain.CrisisHelpline                            `json:"crisis_helpline"`
}

// JSONSchemaExtend describes topics as an object of article arrays
func (File) JSONSchemaExtend(s *jsonschema.Schema) {
	article := &jsonschema.Schema{
		Type:                 "object",
		Properties:           orderedmap.New[string, *jsonschema.Schema](),
		Required:             []string{"title"},
		AdditionalProperties: jsonschema.FalseSchema,
	}
	article.Properties.Set("title", &jsonschema.Schema{Type: "string"})
	article.Properties.Set("summary", &jsonschema.Schema{Type: "string", Description: "Plain text or simple HTML"})

	s.Properties.Set("topics", &jsonschema.Schema{
		Type:                 "object",
		Description:          "Topic name to ordered list of articles; names are matched case-insensitively",
		AdditionalProperties: &jsonschema.Schema{Type: "array", Items: article},
	})
	s.Required = []string{"topics", "crisis_helpline"}
}

// Validate checks the shape of a decoded resource file
func (f File) Validate() error {
	if f.Topics == nil {
		return errors.New("missing topics")
	}
	seen := make(map[string]string, f.Topics.Len())
	for pair := f.Topics.Oldest(); pair != nil; pair = pair.Next() {
		name := strings.TrimSpace(pair.Key)
		if name == "" {
			return errors.New("empty topic name")
		}
		lower := strings.ToLower(name)
		if other, ok := seen[lower]; ok {
			return fmt.Errorf("topic %q duplicates %q", pair.Key, other)
		}
		seen[lower] = pair.Key
		for i, a := range pair.Value {
			if strings.TrimSpace(a.Title) == "" {
				return fmt.Errorf("topic %q article %d: missing title", pair.Key, i)
			}
		}
	}
	return nil
}

// DefaultFile returns the catalog written on first run
func DefaultFile() File {
	topics := orderedmap.New[string, []domain.Article]()
	topics.Set("stress", []domain.Article{
		{Title: "Understanding Stress", Summary: "A brief overview of what stress is and how it affects the body."},
		{Title: "5-Minute Stress Relief", Summary: "Quick techniques to calm down when you feel stressed."},
	})
	topics.Set("anxiety", []domain.Article{
		{Title: "Managing Anxiety", Summary: "Practical tips for managing anxious thoughts."},
		{Title: "Grounding Techniques", Summary: "Learn about the 5-4-3-2-1 grounding method to manage anxiety."},
	})
	return File{
		Topics: topics,
		CrisisHelpline: domain.CrisisHelpline{
			Name:       "Emergency Support",
			Info:       "For immediate support, please contact a crisis helpline. In India, you can reach Vandrevala Foundation at 9999666555.",
			Disclaimer: "Aura is a supportive tool, not a replacement for crisis intervention.",
		},
	}
}

// Catalog is the read-only resource catalog for a session
type Catalog struct {
	file File
}

// New wraps an already decoded file
func New(f File) (*Catalog, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &Catalog{file: f}, nil
}

// Open loads the catalog at path. When the file does not exist, defaults is
// written there and used.
func Open(path string, defaults File) (*Catalog, error) {
	var f File
	found, err := fileutils.ReadJSONStrict(path, &f)
	if err != nil {
		return nil, &domain.StartupError{Path: path, Err: err}
	}

	if !found {
		c, err := New(defaults)
		if err != nil {
			return nil, fmt.Errorf("default catalog: %w", err)
		}
		if err := fileutils.WriteJSONFileAtomic(path, defaults); err != nil {
			return nil, &domain.StorageError{Op: "create resources", Err: err}
		}
		return c, nil
	}

	c, err := New(f)
	if err != nil {
		return nil, &domain.StartupError{Path: path, Err: err}
	}
	return c, nil
}

// Topics returns topic names in file order
func (c *Catalog) Topics() []string {
	names := make([]string, 0, c.file.Topics.Len())
	for pair := c.file.Topics.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Has reports whether a topic exists, ignoring case
func (c *Catalog) Has(topic string) bool {
	_, ok := c.lookup(topic)
	return ok
}

// ByTopic returns the articles for topic, ignoring case.
// Unknown topics yield an empty list.
func (c *Catalog) ByTopic(topic string) []domain.Article {
	articles, _ := c.lookup(topic)
	return append([]domain.Article{}, articles...)
}

// CrisisInfo returns the crisis helpline block
func (c *Catalog) CrisisInfo() domain.CrisisHelpline {
	return c.file.CrisisHelpline
}

// MarshalJSON writes the catalog in its file layout
func (c *Catalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.file)
}

func (c *Catalog) lookup(topic string) ([]domain.Article, bool) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, false
	}
	if articles, ok := c.file.Topics.Get(strings.ToLower(topic)); ok {
		return articles, true
	}
	for pair := c.file.Topics.Oldest(); pair != nil; pair = pair.Next() {
		if strings.EqualFold(pair.Key, topic) {
			return pair.Value, true
		}
	}
	return nil, false
}
