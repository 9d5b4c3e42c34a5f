package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkoster/codeatlas/internal/parser"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscoverFiltersAndIgnores(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/main.c":          "int main(void) { return 0; }",
		"src/util.h":          "",
		"README.md":           "# readme",
		"node_modules/x/y.js": "var a = 1;",
		".git/config":         "",
	})

	files, err := Discover(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]bool{}
	for _, f := range files {
		got[f.RelPath] = true
	}
	if len(files) != 2 || !got["src/main.c"] || !got["src/util.h"] {
		t.Fatalf("files = %v", got)
	}
}

func TestDiscoverAtlasignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".atlasignore":  "generated/\n*.gen.py\n",
		"app.py":        "",
		"app.gen.py":    "",
		"generated/g.py": "",
	})

	files, err := Discover(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].RelPath != "app.py" {
		t.Fatalf("files = %v", files)
	}
}

func TestDiscoverCancellation(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.py": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Discover(ctx, root)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// stubParser returns canned results keyed by basename.
type stubParser map[string]*parser.Result

func (s stubParser) ParseFile(path string, detailed bool) *parser.Result {
	if r, ok := s[filepath.Base(path)]; ok {
		return r
	}
	return &parser.Result{Err: "unsupported"}
}

func TestParseAllCollectsResultsAndErrors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py": "import b",
		"b.py": "",
		"c.py": "",
	})
	files, err := Discover(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}

	p := stubParser{
		"a.py": {Language: "python", Imports: []string{"b"}},
		"b.py": {Language: "python"},
		"c.py": {Err: "boom"},
	}
	out := ParseAll(context.Background(), p, files, 2, 1, nil)

	if len(out) != 3 {
		t.Fatalf("results = %d, want 3", len(out))
	}
	if out["a.py"].Err != "" || len(out["a.py"].Imports) != 1 {
		t.Fatalf("a.py = %+v", out["a.py"])
	}
	if out["c.py"].Err != "boom" {
		t.Fatalf("c.py error not recorded: %+v", out["c.py"])
	}
	// Hash recorded for successful parses.
	if out["a.py"].Hash == "" {
		t.Error("missing content hash for a.py")
	}
}

func TestParseAllProgressThrottled(t *testing.T) {
	root := t.TempDir()
	names := map[string]string{}
	for _, n := range []string{"a.py", "b.py", "c.py", "d.py", "e.py"} {
		names[n] = ""
	}
	writeTree(t, root, names)
	files, err := Discover(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}

	p := stubParser{}
	for n := range names {
		p[n] = &parser.Result{Language: "python"}
	}

	var calls int
	ParseAll(context.Background(), p, files, 1, 2, func(current, total int, _ string) {
		calls++
		if total != 5 {
			t.Errorf("total = %d", total)
		}
	})
	// Every 2nd completion (2) plus the final completion report.
	if calls != 3 {
		t.Fatalf("progress calls = %d, want 3", calls)
	}
}
