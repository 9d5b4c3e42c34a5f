package lang

func init() {
	Register(&Spec{
		Language:          Rust,
		FileExtensions:    []string{".rs"},
		ImportNodeTypes:   []string{"use_declaration"},
		ImportPathFields:  []string{"argument"},
		FunctionNodeTypes: []string{"function_item"},
		ClassNodeTypes:    []string{"struct_item", "enum_item", "trait_item"},
		CallNodeTypes:     []string{"call_expression"},
		IdentifierKinds:   []string{"identifier", "type_identifier"},
	})
}
