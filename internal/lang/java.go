package lang

func init() {
	Register(&Spec{
		Language:          Java,
		FileExtensions:    []string{".java"},
		ImportNodeTypes:   []string{"import_declaration"},
		FunctionNodeTypes: []string{"method_declaration"},
		ClassNodeTypes:    []string{"class_declaration", "interface_declaration"},
		CallNodeTypes:     []string{"method_invocation"},
		IdentifierKinds:   []string{"identifier"},
	})
}
