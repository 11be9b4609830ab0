package quarry

// TableName is a possibly schema-qualified table name. An empty Schema
// means unqualified.
type TableName struct {
	Schema string
	Name   string
}

func (t TableName) String() string {
	if t.Schema != "" {
		return t.Schema + "." + t.Name
	}
	return t.Name
}

type tableRefKind uint8

const (
	tableRefTable tableRefKind = iota
	tableRefSubQuery
	tableRefValuesList
	tableRefFunctionCall
)

// TableRef locates a table-like source for FROM, JOIN, UPDATE, INSERT
// INTO and DELETE FROM positions: a (possibly schema-qualified, possibly
// aliased) table, a derived table from a sub-select, a VALUES list, or a
// table-valued function call.
type TableRef struct {
	kind   tableRefKind
	name   TableName
	alias  Name
	sub    *SelectStatement
	values [][]Value
	fn     *funcCall
}

// T references a table by name, with an optional alias.
func T(name string, alias ...string) TableRef {
	t := TableRef{kind: tableRefTable, name: TableName{Name: name}}
	if len(alias) > 0 {
		t.alias = Name(alias[0])
	}
	return t
}

// TSchema references a schema-qualified table, with an optional alias.
func TSchema(schema, name string, alias ...string) TableRef {
	t := TableRef{kind: tableRefTable, name: TableName{Schema: schema, Name: name}}
	if len(alias) > 0 {
		t.alias = Name(alias[0])
	}
	return t
}

// SubQueryRef wraps a select statement as a derived table. The alias is
// mandatory in SQL for derived tables.
func SubQueryRef(s *SelectStatement, alias string) TableRef {
	return TableRef{kind: tableRefSubQuery, sub: s, alias: Name(alias)}
}

// ValuesRef builds a VALUES list usable as a table source. Each row is
// converted through ValueOf.
func ValuesRef(alias string, rows ...[]any) TableRef {
	vals := make([][]Value, 0, len(rows))
	for _, row := range rows {
		vals = append(vals, valuesOf(row))
	}
	return TableRef{kind: tableRefValuesList, values: vals, alias: Name(alias)}
}

// FunctionRef wraps a table-valued function call, e.g. generate_series.
// The function expression must be a function call built by the Func
// helpers.
func FunctionRef(fn Expr, alias string) TableRef {
	if fn.kind != exprFunctionCall {
		panic("quarry: FunctionRef requires a function call expression")
	}
	return TableRef{kind: tableRefFunctionCall, fn: fn.fn, alias: Name(alias)}
}

// As returns a copy of the reference under the given alias.
func (t TableRef) As(alias string) TableRef {
	t.alias = Name(alias)
	return t
}

// Alias returns the reference's alias, empty if none.
func (t TableRef) Alias() string { return string(t.alias) }
