package schema

// FindField returns the field called name, or nil.
func (t *TableDefinition) FindField(name string) *FieldDefinition {
	for _, field := range t.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// ColumnNames returns the field names in declaration order.
func (t *TableDefinition) ColumnNames() []string {
	names := make([]string, 0, len(t.Fields))
	for _, field := range t.Fields {
		names = append(names, field.Name)
	}
	return names
}
