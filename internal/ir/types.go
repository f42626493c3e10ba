package ir

// Record is the parsed description of a single case class declaration.
type Record struct {
	Name       string      `json:"name"`
	TypeParams []TypeParam `json:"type_params"`
	Fields     []Field     `json:"fields"`
}

// Field is one constructor parameter, in declaration order.
type Field struct {
	Name    string `json:"name"`
	Type    string `json:"type"`              // verbatim type expression
	Default string `json:"default,omitempty"` // default value expression, if any
}

// TypeParam is one entry of a record's type parameter clause.
type TypeParam struct {
	Name     string `json:"name"`
	Variance string `json:"variance,omitempty"` // "+", "-" or ""
	Bounds   string `json:"bounds,omitempty"`   // e.g. "<: B" or ": Ordering"
}

// Arity returns the number of fields.
func (r *Record) Arity() int {
	return len(r.Fields)
}

// IsGeneric reports whether the record declares type parameters.
func (r *Record) IsGeneric() bool {
	return len(r.TypeParams) > 0
}

// FieldNames returns the field names in declaration order.
func (r *Record) FieldNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

// TypeParamNames returns the type parameter names in declaration order.
func (r *Record) TypeParamNames() []string {
	names := make([]string, len(r.TypeParams))
	for i, tp := range r.TypeParams {
		names[i] = tp.Name
	}
	return names
}

// Canonical converts the record to the generic map form accepted by
// MarshalCanonical. Empty optional members are omitted.
func (r *Record) Canonical() map[string]any {
	fields := make([]any, len(r.Fields))
	for i, f := range r.Fields {
		m := map[string]any{
			"name": f.Name,
			"type": f.Type,
		}
		if f.Default != "" {
			m["default"] = f.Default
		}
		fields[i] = m
	}

	params := make([]any, len(r.TypeParams))
	for i, tp := range r.TypeParams {
		m := map[string]any{"name": tp.Name}
		if tp.Variance != "" {
			m["variance"] = tp.Variance
		}
		if tp.Bounds != "" {
			m["bounds"] = tp.Bounds
		}
		params[i] = m
	}

	return map[string]any{
		"name":        r.Name,
		"type_params": params,
		"fields":      fields,
	}
}
