package lang

func init() {
	Register(&Spec{
		Language:          C,
		FileExtensions:    []string{".c", ".h"},
		ImportNodeTypes:   []string{"preproc_include"},
		ImportPathFields:  []string{"path"},
		FunctionNodeTypes: []string{"function_definition"},
		CallNodeTypes:     []string{"call_expression"},
		IdentifierKinds:   []string{"identifier"},
	})
}
