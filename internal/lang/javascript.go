package lang

func init() {
	Register(&Spec{
		Language:          JavaScript,
		FileExtensions:    []string{".js", ".jsx"},
		ImportNodeTypes:   []string{"import_statement"},
		ImportPathFields:  []string{"source"},
		FunctionNodeTypes: []string{"function_declaration"},
		ClassNodeTypes:    []string{"class_declaration"},
		CallNodeTypes:     []string{"call_expression"},
		IdentifierKinds:   []string{"identifier"},
	})
}
