package quarry

type updatePair struct {
	col  Name
	expr Expr
}

// UpdateStatement builds an UPDATE statement.
type UpdateStatement struct {
	with      *WithClause
	table     *TableRef
	values    []updatePair
	from      []TableRef
	where     ConditionHolder
	orders    []OrderExpr
	limit     *Value
	returning *ReturningClause
}

func (*UpdateStatement) isSubQueryStatement() {}

// Update starts an UPDATE statement.
func Update() *UpdateStatement {
	return &UpdateStatement{}
}

// With prefixes the statement with a WITH clause.
func (s *UpdateStatement) With(w *WithClause) *UpdateStatement {
	s.with = w
	return s
}

// WithCte prefixes the statement with a WITH clause holding one CTE.
func (s *UpdateStatement) WithCte(cte *CommonTableExpression) *UpdateStatement {
	return s.With(NewWithClause().CTE(cte))
}

// Table sets the target table.
func (s *UpdateStatement) Table(t TableRef) *UpdateStatement {
	s.table = &t
	return s
}

// Value sets a column to a bind value.
func (s *UpdateStatement) Value(col string, v any) *UpdateStatement {
	return s.ValueExpr(col, toExpr(v))
}

// Values sets several columns to bind values.
func (s *UpdateStatement) Values(pairs ...ColumnValue) *UpdateStatement {
	for _, p := range pairs {
		s.Value(p.Column, p.Value)
	}
	return s
}

// ValueExpr sets a column to an expression.
func (s *UpdateStatement) ValueExpr(col string, e Expr) *UpdateStatement {
	s.values = append(s.values, updatePair{col: Name(col), expr: e})
	return s
}

// From adds an extra table source. Postgres and SQLite render UPDATE ..
// FROM; MySQL rewrites the first source as a JOIN whose ON condition is
// the statement's WHERE clause.
func (s *UpdateStatement) From(t TableRef) *UpdateStatement {
	s.from = append(s.from, t)
	return s
}

// AndWhere conjoins a WHERE predicate.
func (s *UpdateStatement) AndWhere(e Expr) *UpdateStatement {
	s.where.addChain(e, false)
	return s
}

// CondWhere merges a condition tree into the WHERE clause.
func (s *UpdateStatement) CondWhere(c ConditionExpression) *UpdateStatement {
	s.where.addConditionExpression(c)
	return s
}

// OrderBy orders the affected rows (MySQL extension).
func (s *UpdateStatement) OrderBy(col string, ord Order) *UpdateStatement {
	s.orders = append(s.orders, OrderExpr{expr: Col(col), order: ord})
	return s
}

// Limit caps the number of affected rows (MySQL extension).
func (s *UpdateStatement) Limit(n uint64) *UpdateStatement {
	v := ValueOf(n)
	s.limit = &v
	return s
}

// Returning sets the RETURNING clause; MySQL suppresses it.
func (s *UpdateStatement) Returning(r ReturningClause) *UpdateStatement {
	s.returning = &r
	return s
}

// ReturningAll yields RETURNING *.
func (s *UpdateStatement) ReturningAll() *UpdateStatement {
	return s.Returning(ReturningAll())
}

// Build renders the statement for the dialect, returning the SQL and
// the collected bind values.
func (s *UpdateStatement) Build(qb QueryBuilder) (string, Values) {
	ph, numbered := qb.Placeholder()
	w := NewSqlWriterValues(ph, numbered)
	qb.PrepareUpdateStatement(s, w)
	return w.IntoParts()
}

// BuildCollect renders the statement into the given sink.
func (s *UpdateStatement) BuildCollect(qb QueryBuilder, w SqlWriter) string {
	qb.PrepareUpdateStatement(s, w)
	return w.Result()
}

// ToString renders the statement with inline literals.
func (s *UpdateStatement) ToString(qb QueryBuilder) string {
	w := NewSqlWriterString(qb)
	qb.PrepareUpdateStatement(s, w)
	return w.Result()
}
