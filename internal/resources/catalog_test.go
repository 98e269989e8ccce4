package resources

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pbaille/aura/internal/domain"
)

func openDefault(t *testing.T) (*Catalog, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resources.json")
	c, err := Open(path, DefaultFile())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return c, path
}

func TestOpenCreatesDefaultFile(t *testing.T) {
	t.Parallel()

	_, path := openDefault(t)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to be created: %v", path, err)
	}
}

func TestByTopic(t *testing.T) {
	t.Parallel()

	c, _ := openDefault(t)
	stress := c.ByTopic("stress")
	if len(stress) != 2 {
		t.Fatalf("len(stress)=%d, want 2", len(stress))
	}
	if stress[0].Title != "Understanding Stress" {
		t.Fatalf("Title=%q, want %q", stress[0].Title, "Understanding Stress")
	}

	if got := c.ByTopic("  STRESS "); !reflect.DeepEqual(got, stress) {
		t.Fatalf("case-insensitive lookup returned %+v", got)
	}

	unknown := c.ByTopic("unicorns")
	if unknown == nil || len(unknown) != 0 {
		t.Fatalf("unknown topic=%#v, want empty non-nil list", unknown)
	}
	if c.Has("unicorns") || !c.Has("Anxiety") {
		t.Fatalf("Has returned unexpected results")
	}
}

func TestTopicsKeepFileOrder(t *testing.T) {
	t.Parallel()

	c, _ := openDefault(t)
	if got, want := c.Topics(), []string{"stress", "anxiety"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Topics=%v, want %v", got, want)
	}

	path := filepath.Join(t.TempDir(), "resources.json")
	content := `{
    "topics": {
        "sleep": [{"title": "Sleep Hygiene", "summary": "s"}],
        "Anger": [],
        "burnout": [{"title": "Recognising Burnout", "summary": "b"}]
    },
    "crisis_helpline": {"name": "n", "info": "i", "disclaimer": "d"}
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Open(path, DefaultFile())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got, want := c.Topics(), []string{"sleep", "Anger", "burnout"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Topics=%v, want %v", got, want)
	}
	if !c.Has("anger") {
		t.Fatalf("expected mixed-case topic to match")
	}
}

func TestCrisisInfo(t *testing.T) {
	t.Parallel()

	c, _ := openDefault(t)
	info := c.CrisisInfo()
	if info.Disclaimer == "" || info.Info == "" || info.Name != "Emergency Support" {
		t.Fatalf("unexpected crisis info: %+v", info)
	}
}

func TestDefaultRoundTrip(t *testing.T) {
	t.Parallel()

	first, path := openDefault(t)
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	second, err := Open(path, File{})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("reloaded catalog differs:\n%s\n%s", a, b)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("reload rewrote the resource file")
	}
}

func TestOpenMalformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"syntax":        `{"topics": {`,
		"no topics":     `{"crisis_helpline": {"name": "n", "info": "i", "disclaimer": "d"}}`,
		"topics list":   `{"topics": ["stress"], "crisis_helpline": {}}`,
		"missing title": `{"topics": {"stress": [{"summary": "x"}]}, "crisis_helpline": {}}`,
		"case clash":    `{"topics": {"stress": [], "Stress": []}, "crisis_helpline": {}}`,
		"unknown field": `{"topics": {}, "crisis_helpline": {}, "extra": 1}`,
	}
	for name, content := range cases {
		path := filepath.Join(t.TempDir(), "resources.json")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		_, err := Open(path, DefaultFile())
		var se *domain.StartupError
		if !errors.As(err, &se) {
			t.Fatalf("%s: expected *domain.StartupError, got %v", name, err)
		}
	}
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"Quick techniques to calm down.", "Quick techniques to calm down."},
		{"  spaced \n out  ", "spaced out"},
		{"Try <b>box</b> breathing &amp; rest.", "Try box breathing & rest."},
		{"<p>One</p><p>Two</p><script>alert(1)</script>", "One Two"},
	}
	for _, tc := range cases {
		if got := PlainText(tc.in); got != tc.want {
			t.Fatalf("PlainText(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}
