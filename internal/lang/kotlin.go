package lang

func init() {
	Register(&Spec{
		Language:          Kotlin,
		FileExtensions:    []string{".kt"},
		ImportNodeTypes:   []string{"import_header"},
		FunctionNodeTypes: []string{"function_declaration"},
		ClassNodeTypes:    []string{"class_declaration", "object_declaration"},
		CallNodeTypes:     []string{"call_expression"},
		IdentifierKinds:   []string{"simple_identifier", "type_identifier"},
	})
}
