// Package resolve maps raw import tokens to project-relative file paths.
// The resolver only ever answers from the file set it was built with; it
// never probes the filesystem, so lookups stay O(1) after the per-project
// precompute.
package resolve

import (
	"path"
	"sort"
	"strings"

	"github.com/mkoster/codeatlas/internal/lang"
)

// knownExtensions is the analyzer allow-list in sorted order, used to
// complete extension-less relative imports deterministically.
var knownExtensions = func() []string {
	exts := lang.Extensions()
	sort.Strings(exts)
	return exts
}()

// Resolver resolves import strings against a fixed universe of
// project-relative file paths.
type Resolver struct {
	files     map[string]bool
	modules   map[string]string
	basenames map[string]string
}

// New builds a resolver over the given project-relative paths.
func New(allFiles []string) *Resolver {
	r := &Resolver{
		files:     make(map[string]bool, len(allFiles)),
		modules:   map[string]string{},
		basenames: map[string]string{},
	}
	// Sorted so the basename and module fallbacks are deterministic:
	// first path in sort order wins for a duplicated name.
	sorted := append([]string(nil), allFiles...)
	sort.Strings(sorted)

	for _, f := range sorted {
		r.files[f] = true
		base := path.Base(f)
		if _, ok := r.basenames[base]; !ok {
			r.basenames[base] = f
		}
		r.registerModule(f)
	}
	return r
}

// registerModule indexes dotted module names for languages with
// dot-separated imports. "app/services/main.py" registers as
// "app.services.main"; package-init files also register the parent
// package name.
func (r *Resolver) registerModule(f string) {
	var initName string
	switch {
	case strings.HasSuffix(f, ".py"), strings.HasSuffix(f, ".pyw"):
		initName = "__init__"
	case strings.HasSuffix(f, ".lua"):
		initName = "init"
	default:
		return
	}

	noExt := strings.TrimSuffix(f, path.Ext(f))
	mod := strings.ReplaceAll(noExt, "/", ".")
	if _, ok := r.modules[mod]; !ok {
		r.modules[mod] = f
	}
	if strings.HasSuffix(mod, "."+initName) {
		pkg := strings.TrimSuffix(mod, "."+initName)
		if _, ok := r.modules[pkg]; !ok {
			r.modules[pkg] = f
		}
	}
}

// sanitize strips surrounding quote and angle-bracket delimiters,
// repeating so nested artifacts come off too.
func sanitize(importStr string) string {
	clean := strings.TrimSpace(importStr)
	for len(clean) >= 2 {
		first, last := clean[0], clean[len(clean)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '<' && last == '>') {
			clean = strings.TrimSpace(clean[1 : len(clean)-1])
			continue
		}
		break
	}
	return clean
}

// Resolve returns the project file a raw import refers to, and whether it
// resolved at all. External and unresolvable imports return ("", false);
// never an error.
func (r *Resolver) Resolve(sourceFile, importStr string) (string, bool) {
	target := sanitize(importStr)
	if target == "" {
		return "", false
	}

	// Exact and dotted-module matches.
	if r.files[target] {
		return target, true
	}
	if f, ok := r.modules[target]; ok {
		return f, true
	}

	// Relative to the importing file's directory.
	sourceDir := path.Dir(sourceFile)
	if sourceDir == "." {
		sourceDir = ""
	}
	candidate := path.Clean(path.Join(sourceDir, strings.ReplaceAll(target, "\\", "/")))
	if r.files[candidate] {
		return candidate, true
	}
	// Extension-less relative imports ("../utils/helper") complete against
	// the analyzer's known extensions before any fuzzy fallback.
	if path.Ext(candidate) == "" {
		for _, ext := range knownExtensions {
			if r.files[candidate+ext] {
				return candidate + ext, true
			}
		}
	}

	// Last resort: bare filename lookup, for include paths that were
	// never normalized against the project layout.
	if f, ok := r.basenames[path.Base(target)]; ok {
		return f, true
	}
	return "", false
}
