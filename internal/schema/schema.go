package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"
	"github.com/pbaille/aura/internal/domain"
	"github.com/pbaille/aura/internal/resources"
)

var documents = map[string]struct {
	title string
	value any
}{
	"profile":   {"Aura user profile", domain.UserProfile{}},
	"moodlog":   {"Aura mood log", []domain.MoodLogEntry{}},
	"resources": {"Aura resource catalog", resources.File{}},
}

// Names lists the data files a schema can be generated for
func Names() []string {
	names := make([]string, 0, len(documents))
	for name := range documents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// For reflects the JSON Schema of the named data file
func For(name string) (*jsonschema.Schema, error) {
	doc, ok := documents[name]
	if !ok {
		return nil, fmt.Errorf("unknown data file %q (want one of %v)", name, Names())
	}

	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	s := reflector.Reflect(doc.value)
	s.Title = doc.title
	return s, nil
}

// Marshal renders the named schema as indented JSON
func Marshal(name string) ([]byte, error) {
	s, err := For(name)
	if err != nil {
		return nil, err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return b, nil
}
