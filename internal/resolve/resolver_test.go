package resolve

import "testing"

func TestResolveExact(t *testing.T) {
	r := New([]string{"src/util.c", "src/util.h"})
	got, ok := r.Resolve("main.c", "src/util.h")
	if !ok || got != "src/util.h" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestResolveQuotedAndBracketed(t *testing.T) {
	r := New([]string{"src/util.h"})
	for _, token := range []string{`"src/util.h"`, "<src/util.h>", `'src/util.h'`, `"<src/util.h>"`} {
		got, ok := r.Resolve("main.c", token)
		if !ok || got != "src/util.h" {
			t.Fatalf("token %q -> %q ok=%v", token, got, ok)
		}
	}
}

func TestResolveDottedModule(t *testing.T) {
	r := New([]string{"app/services/main.py", "app/__init__.py"})

	got, ok := r.Resolve("x.py", "app.services.main")
	if !ok || got != "app/services/main.py" {
		t.Fatalf("dotted: got %q ok=%v", got, ok)
	}
	// Package import resolves to the package's __init__.
	got, ok = r.Resolve("x.py", "app")
	if !ok || got != "app/__init__.py" {
		t.Fatalf("package: got %q ok=%v", got, ok)
	}
}

func TestResolveRelativePath(t *testing.T) {
	// Extension-less relative token completes against known extensions
	// via path normalization, not the basename fallback.
	r := New([]string{"src/utils/helper.h", "other/helper.h", "src/app/main.c"})
	got, ok := r.Resolve("src/app/main.c", `"../utils/helper"`)
	if !ok || got != "src/utils/helper.h" {
		t.Fatalf("extension completion: got %q ok=%v", got, ok)
	}

	got, ok = r.Resolve("src/app/main.c", `"../utils/helper.h"`)
	if !ok || got != "src/utils/helper.h" {
		t.Fatalf("relative: got %q ok=%v", got, ok)
	}
}

func TestResolveBackslashToken(t *testing.T) {
	r := New([]string{"src/utils/helper.h"})
	got, ok := r.Resolve("src/app/main.c", `..\utils\helper.h`)
	if !ok || got != "src/utils/helper.h" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestResolveBasenameFallback(t *testing.T) {
	r := New([]string{"deep/nested/legacy.h"})
	got, ok := r.Resolve("main.c", "<legacy.h>")
	if !ok || got != "deep/nested/legacy.h" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestResolveUnresolvable(t *testing.T) {
	r := New([]string{"a.c"})
	if got, ok := r.Resolve("a.c", "<stdio.h>"); ok {
		t.Fatalf("external header resolved to %q", got)
	}
	if _, ok := r.Resolve("a.c", ""); ok {
		t.Fatal("empty token resolved")
	}
}

func TestResolveDeterministic(t *testing.T) {
	// Duplicate basenames across directories: the winner must be stable
	// no matter the input order.
	a := New([]string{"b/util.h", "a/util.h"})
	b := New([]string{"a/util.h", "b/util.h"})
	ga, _ := a.Resolve("main.c", "util.h")
	gb, _ := b.Resolve("main.c", "util.h")
	if ga != gb || ga != "a/util.h" {
		t.Fatalf("nondeterministic basename fallback: %q vs %q", ga, gb)
	}
	for i := 0; i < 3; i++ {
		if got, _ := a.Resolve("main.c", "util.h"); got != ga {
			t.Fatalf("repeated resolve changed: %q", got)
		}
	}
}
