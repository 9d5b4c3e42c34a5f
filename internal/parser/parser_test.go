package parser

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFilePythonImports(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.py", "import os\nimport utils.helper\nfrom pkg.mod import thing\n")

	res := ParseFile(path, false)
	if res.Err != "" {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	want := map[string]bool{"os": true, "utils.helper": true, "pkg.mod": true}
	if len(res.Imports) != 3 {
		t.Fatalf("imports = %v, want 3 entries", res.Imports)
	}
	for _, imp := range res.Imports {
		if !want[imp] {
			t.Errorf("unexpected import %q", imp)
		}
	}
	if len(res.Definitions) != 0 {
		t.Errorf("non-detailed parse returned definitions: %v", res.Definitions)
	}
}

func TestParseFileCIncludes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.c", "#include \"util.h\"\n#include <stdio.h>\nint main(void) { return 0; }\n")

	res := ParseFile(path, false)
	if res.Err != "" {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if len(res.Imports) != 2 {
		t.Fatalf("imports = %v, want 2 entries", res.Imports)
	}
}

func TestParseFileDetailed(t *testing.T) {
	dir := t.TempDir()
	src := `def helper():
    return 1

def main():
    helper()

class Widget:
    pass
`
	path := writeFile(t, dir, "app.py", src)

	res := ParseFile(path, true)
	if res.Err != "" {
		t.Fatalf("unexpected error: %s", res.Err)
	}

	byName := map[string]Definition{}
	for _, d := range res.Definitions {
		byName[d.Name] = d
	}
	mainDef, ok := byName["main"]
	if !ok {
		t.Fatalf("main not extracted: %v", res.Definitions)
	}
	if mainDef.Kind != "function" {
		t.Errorf("main kind = %q", mainDef.Kind)
	}
	if len(mainDef.Calls) != 1 || mainDef.Calls[0] != "helper" {
		t.Errorf("main calls = %v, want [helper]", mainDef.Calls)
	}
	widget, ok := byName["Widget"]
	if !ok || widget.Kind != "class" {
		t.Fatalf("Widget class not extracted: %+v", byName)
	}
	if mainDef.Signature != "def main():" {
		t.Errorf("signature = %q", mainDef.Signature)
	}
	if mainDef.EndByte <= mainDef.StartByte {
		t.Errorf("bad byte range %d..%d", mainDef.StartByte, mainDef.EndByte)
	}
}

func TestParseFileGoImports(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.go", "package main\n\nimport (\n\t\"fmt\"\n\t\"os\"\n)\n\nfunc main() { fmt.Println(os.Args) }\n")

	res := ParseFile(path, false)
	if res.Err != "" {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if len(res.Imports) != 2 {
		t.Fatalf("imports = %v, want [fmt os]", res.Imports)
	}
}

func TestParseFileUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.md", "# notes\n")

	res := ParseFile(path, false)
	if res.Err == "" {
		t.Fatal("expected unsupported-language error")
	}
}

func TestParseFileMissing(t *testing.T) {
	res := ParseFile(filepath.Join(t.TempDir(), "ghost.py"), false)
	if res.Err == "" {
		t.Fatal("expected read error for missing file")
	}
}
