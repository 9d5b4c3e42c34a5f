package lang

func init() {
	Register(&Spec{
		Language:          Python,
		FileExtensions:    []string{".py", ".pyw"},
		ImportNodeTypes:   []string{"import_statement", "import_from_statement"},
		ImportPathFields:  []string{"module_name", "name"},
		FunctionNodeTypes: []string{"function_definition"},
		ClassNodeTypes:    []string{"class_definition"},
		CallNodeTypes:     []string{"call"},
		IdentifierKinds:   []string{"identifier"},
	})
}
