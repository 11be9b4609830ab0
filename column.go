package quarry

type colRefKind uint8

const (
	colRefColumn colRefKind = iota
	colRefAsterisk
)

// ColumnRef names a column, optionally qualified by table and schema, or
// an asterisk, optionally qualified by table.
type ColumnRef struct {
	kind   colRefKind
	schema Name
	table  Name
	column Name
}

// C references a bare column.
func C(column string) ColumnRef {
	return ColumnRef{kind: colRefColumn, column: Name(column)}
}

// TC references a table-qualified column.
func TC(table, column string) ColumnRef {
	return ColumnRef{kind: colRefColumn, table: Name(table), column: Name(column)}
}

// STC references a schema- and table-qualified column.
func STC(schema, table, column string) ColumnRef {
	return ColumnRef{kind: colRefColumn, schema: Name(schema), table: Name(table), column: Name(column)}
}

// Asterisk references all columns.
func Asterisk() ColumnRef {
	return ColumnRef{kind: colRefAsterisk}
}

// TableAsterisk references all columns of one table.
func TableAsterisk(table string) ColumnRef {
	return ColumnRef{kind: colRefAsterisk, table: Name(table)}
}

// columnRefOf builds a ColumnRef from 1-3 name parts: column,
// table.column, or schema.table.column.
func columnRefOf(parts ...string) ColumnRef {
	switch len(parts) {
	case 1:
		return C(parts[0])
	case 2:
		return TC(parts[0], parts[1])
	case 3:
		return STC(parts[0], parts[1], parts[2])
	}
	panic("quarry: column reference takes 1 to 3 name parts")
}
