package lang

func init() {
	Register(&Spec{
		Language:          Go,
		FileExtensions:    []string{".go"},
		ImportNodeTypes:   []string{"import_spec"},
		ImportPathFields:  []string{"path"},
		FunctionNodeTypes: []string{"function_declaration", "method_declaration"},
		ClassNodeTypes:    []string{"type_declaration"},
		CallNodeTypes:     []string{"call_expression"},
		IdentifierKinds:   []string{"identifier", "field_identifier", "type_identifier"},
	})
}
