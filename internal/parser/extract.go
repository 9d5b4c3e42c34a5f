package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mkoster/codeatlas/internal/lang"
)

// Definition is a function or class extracted in detailed mode.
type Definition struct {
	Name      string
	Kind      string // "function" or "class"
	StartByte uint
	EndByte   uint
	// Signature is the first source line of the definition.
	Signature string
	// Calls lists bare callee names invoked inside the definition body.
	Calls []string
}

// Result is the parse outcome for one file. Err is set instead of an
// error return so per-file failures travel with the batch results.
type Result struct {
	Language    string
	Imports     []string
	Definitions []Definition
	Err         string
}

// ParseFile parses one source file. In non-detailed mode only imports are
// extracted; detailed mode adds definitions and their call names.
// Unsupported languages yield a Result with an explicit error, never a
// panic or a hard failure.
func ParseFile(path string, detailed bool) *Result {
	spec := lang.ForExtension(strings.ToLower(filepath.Ext(path)))
	if spec == nil {
		return &Result{Err: fmt.Sprintf("unsupported language for %s", filepath.Base(path))}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return &Result{Language: string(spec.Language), Err: err.Error()}
	}

	tree, err := Parse(spec.Language, source)
	if err != nil {
		return &Result{Language: string(spec.Language), Err: err.Error()}
	}
	defer tree.Close()
	root := tree.RootNode()

	res := &Result{Language: string(spec.Language)}
	res.Imports = extractImports(root, source, spec)
	if detailed {
		res.Definitions = extractDefinitions(root, source, spec)
	}
	return res
}

func extractImports(root *tree_sitter.Node, source []byte, spec *lang.Spec) []string {
	importTypes := toSet(spec.ImportNodeTypes)
	var imports []string
	Walk(root, func(node *tree_sitter.Node) bool {
		if !importTypes[node.Kind()] {
			return true
		}
		if spec.Language == lang.Lua {
			if imp := luaRequire(node, source); imp != "" {
				imports = append(imports, imp)
			}
			return true
		}
		if imp := importTarget(node, source, spec); imp != "" {
			imports = append(imports, imp)
		}
		return false
	})
	return imports
}

// importTarget pulls the import token out of an import node: the path
// field when the grammar has one, else the cleaned node text (Java and
// Kotlin import statements).
func importTarget(node *tree_sitter.Node, source []byte, spec *lang.Spec) string {
	for _, field := range spec.ImportPathFields {
		if child := node.ChildByFieldName(field); child != nil {
			return cleanImport(NodeText(child, source))
		}
	}
	return cleanImport(NodeText(node, source))
}

// luaRequire extracts the module string from require("mod") calls.
func luaRequire(node *tree_sitter.Node, source []byte) string {
	name := node.ChildByFieldName("name")
	if name == nil || NodeText(name, source) != "require" {
		return ""
	}
	var arg string
	Walk(node, func(n *tree_sitter.Node) bool {
		if arg != "" {
			return false
		}
		if n.Kind() == "string" {
			arg = cleanImport(NodeText(n, source))
			return false
		}
		return true
	})
	return arg
}

// cleanImport strips statement keywords, terminators, and quote
// delimiters from a raw import token.
func cleanImport(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "import")
	s = strings.TrimSuffix(s, ";")
	s = strings.ReplaceAll(s, "\"", "")
	s = strings.ReplaceAll(s, "'", "")
	return strings.TrimSpace(s)
}

func extractDefinitions(root *tree_sitter.Node, source []byte, spec *lang.Spec) []Definition {
	funcTypes := toSet(spec.FunctionNodeTypes)
	classTypes := toSet(spec.ClassNodeTypes)
	callTypes := toSet(spec.CallNodeTypes)

	var defs []Definition
	Walk(root, func(node *tree_sitter.Node) bool {
		kind := ""
		switch {
		case funcTypes[node.Kind()]:
			kind = "function"
		case classTypes[node.Kind()]:
			kind = "class"
		default:
			return true
		}

		name := definitionName(node, source, spec)
		if name == "" {
			return true
		}
		defs = append(defs, Definition{
			Name:      name,
			Kind:      kind,
			StartByte: node.StartByte(),
			EndByte:   node.EndByte(),
			Signature: firstLine(NodeText(node, source)),
			Calls:     collectCalls(node, source, spec, callTypes),
		})
		// Keep walking: nested definitions (methods, inner classes) are
		// reported as their own entries.
		return true
	})
	return defs
}

// definitionName finds the declared name of a definition node. Grammars
// with a "name" field answer directly; C-family declarators are searched
// for the first identifier-kind node.
func definitionName(node *tree_sitter.Node, source []byte, spec *lang.Spec) string {
	if child := node.ChildByFieldName("name"); child != nil {
		return NodeText(child, source)
	}
	scope := node
	if dcl := node.ChildByFieldName("declarator"); dcl != nil {
		scope = dcl
	}
	idKinds := toSet(spec.IdentifierKinds)
	name := ""
	Walk(scope, func(n *tree_sitter.Node) bool {
		if name != "" {
			return false
		}
		if idKinds[n.Kind()] {
			name = NodeText(n, source)
			return false
		}
		return true
	})
	return name
}

// collectCalls gathers distinct bare callee names inside a definition.
// Qualified calls (obj.method, pkg::fn) are skipped; resolution is by
// simple name only.
func collectCalls(node *tree_sitter.Node, source []byte, spec *lang.Spec, callTypes map[string]bool) []string {
	seen := map[string]bool{}
	var calls []string
	Walk(node, func(n *tree_sitter.Node) bool {
		if n.Id() == node.Id() || !callTypes[n.Kind()] {
			return true
		}
		name := calleeName(n, source, spec)
		if name != "" && !seen[name] {
			seen[name] = true
			calls = append(calls, name)
		}
		return true
	})
	return calls
}

func calleeName(call *tree_sitter.Node, source []byte, spec *lang.Spec) string {
	target := call.ChildByFieldName("function")
	if target == nil {
		target = call.ChildByFieldName("name")
	}
	if target == nil {
		return ""
	}
	switch target.Kind() {
	case "identifier", "simple_identifier":
		return NodeText(target, source)
	}
	return ""
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "{"))
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
