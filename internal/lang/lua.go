package lang

func init() {
	// Lua imports are require(...) calls; the parser special-cases the
	// extraction since the grammar has no dedicated import node.
	Register(&Spec{
		Language:          Lua,
		FileExtensions:    []string{".lua"},
		ImportNodeTypes:   []string{"function_call"},
		FunctionNodeTypes: []string{"function_declaration"},
		CallNodeTypes:     []string{"function_call"},
		IdentifierKinds:   []string{"identifier"},
	})
}
