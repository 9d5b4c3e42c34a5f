// Package lang maps file extensions to language specs: the tree-sitter
// node kinds each extraction pass looks for. Only the extensions on the
// analyzer allow-list are registered.
package lang

// Language identifies a supported programming language.
type Language string

const (
	C          Language = "c"
	CPP        Language = "cpp"
	Python     Language = "python"
	Lua        Language = "lua"
	Java       Language = "java"
	Kotlin     Language = "kotlin"
	Rust       Language = "rust"
	Go         Language = "go"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
)

// Spec defines the AST node kinds for a language.
type Spec struct {
	Language       Language
	FileExtensions []string

	// ImportNodeTypes are node kinds that introduce a dependency on
	// another file/module.
	ImportNodeTypes []string
	// ImportPathFields are field names tried in order to extract the
	// import target from an import node. Empty means "use node text".
	ImportPathFields []string

	FunctionNodeTypes []string
	ClassNodeTypes    []string
	CallNodeTypes     []string

	// IdentifierKinds are node kinds accepted as a definition name when
	// the definition node carries no "name" field (C-family declarators).
	IdentifierKinds []string
}

var registry = map[string]*Spec{}

// Register adds a Spec under each of its file extensions.
func Register(spec *Spec) {
	for _, ext := range spec.FileExtensions {
		registry[ext] = spec
	}
}

// ForExtension returns the Spec for a file extension (e.g. ".py"), or nil.
func ForExtension(ext string) *Spec {
	return registry[ext]
}

// Supported reports whether files with the given extension are analyzed.
func Supported(ext string) bool {
	return registry[ext] != nil
}

// Extensions returns every registered extension.
func Extensions() []string {
	exts := make([]string, 0, len(registry))
	for ext := range registry {
		exts = append(exts, ext)
	}
	return exts
}
