package quarry

type returningKind uint8

const (
	returningAll returningKind = iota
	returningColumns
	returningExprs
)

// ReturningClause selects what an INSERT, UPDATE or DELETE yields on
// Postgres and SQLite. MySQL suppresses the clause.
type ReturningClause struct {
	kind  returningKind
	cols  []ColumnRef
	exprs []Expr
}

// ReturningAll yields RETURNING *.
func ReturningAll() ReturningClause {
	return ReturningClause{kind: returningAll}
}

// ReturningColumns yields the named columns.
func ReturningColumns(cols ...string) ReturningClause {
	r := ReturningClause{kind: returningColumns}
	for _, c := range cols {
		r.cols = append(r.cols, C(c))
	}
	return r
}

// ReturningExprs yields arbitrary expressions.
func ReturningExprs(exprs ...Expr) ReturningClause {
	return ReturningClause{kind: returningExprs, exprs: exprs}
}
