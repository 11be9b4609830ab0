package quarry

// IndexHintType selects the MySQL index hint keyword.
type IndexHintType uint8

// Index hint types.
const (
	IndexHintUse IndexHintType = iota
	IndexHintIgnore
	IndexHintForce
)

// Spelling returns the hint's SQL keyword.
func (t IndexHintType) Spelling() string {
	switch t {
	case IndexHintIgnore:
		return "IGNORE INDEX"
	case IndexHintForce:
		return "FORCE INDEX"
	}
	return "USE INDEX"
}

// IndexHintScope restricts an index hint to one phase of query
// execution.
type IndexHintScope uint8

// Index hint scopes.
const (
	IndexHintScopeAll IndexHintScope = iota
	IndexHintScopeJoin
	IndexHintScopeOrderBy
	IndexHintScopeGroupBy
)

// Spelling returns the scope's FOR suffix, empty for the full scope.
func (s IndexHintScope) Spelling() string {
	switch s {
	case IndexHintScopeJoin:
		return "FOR JOIN"
	case IndexHintScopeOrderBy:
		return "FOR ORDER BY"
	case IndexHintScopeGroupBy:
		return "FOR GROUP BY"
	}
	return ""
}

// IndexHint is a MySQL USE/IGNORE/FORCE INDEX hint. Other dialects emit
// nothing for hints.
type IndexHint struct {
	Type  IndexHintType
	Index Name
	Scope IndexHintScope
}
