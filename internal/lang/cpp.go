package lang

func init() {
	Register(&Spec{
		Language:          CPP,
		FileExtensions:    []string{".cpp", ".hpp", ".cc", ".cxx"},
		ImportNodeTypes:   []string{"preproc_include"},
		ImportPathFields:  []string{"path"},
		FunctionNodeTypes: []string{"function_definition"},
		ClassNodeTypes:    []string{"class_specifier", "struct_specifier"},
		CallNodeTypes:     []string{"call_expression"},
		IdentifierKinds:   []string{"identifier", "type_identifier"},
	})
}
