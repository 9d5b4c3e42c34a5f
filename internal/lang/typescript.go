package lang

func init() {
	Register(&Spec{
		Language:          TypeScript,
		FileExtensions:    []string{".ts"},
		ImportNodeTypes:   []string{"import_statement"},
		ImportPathFields:  []string{"source"},
		FunctionNodeTypes: []string{"function_declaration"},
		ClassNodeTypes:    []string{"class_declaration", "interface_declaration"},
		CallNodeTypes:     []string{"call_expression"},
		IdentifierKinds:   []string{"identifier", "type_identifier"},
	})
	Register(&Spec{
		Language:          TSX,
		FileExtensions:    []string{".tsx"},
		ImportNodeTypes:   []string{"import_statement"},
		ImportPathFields:  []string{"source"},
		FunctionNodeTypes: []string{"function_declaration"},
		ClassNodeTypes:    []string{"class_declaration", "interface_declaration"},
		CallNodeTypes:     []string{"call_expression"},
		IdentifierKinds:   []string{"identifier", "type_identifier"},
	})
}
