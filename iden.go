package quarry

// Iden is anything that can serve as a SQL identifier: a table, column,
// schema, alias, or type name. Implementations emit their bare, unquoted
// spelling; quoting is applied by the dialect at render time.
type Iden interface {
	Unquoted() string
}

// Name is a plain string identifier.
type Name string

// Unquoted returns the identifier's bare spelling.
func (n Name) Unquoted() string { return string(n) }

// N wraps a string as a Name identifier.
func N(s string) Name { return Name(s) }

// idenEq compares two identifiers by their rendered string.
func idenEq(a, b Iden) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Unquoted() == b.Unquoted()
}
