package quarry

// DeleteStatement builds a DELETE statement.
type DeleteStatement struct {
	with      *WithClause
	table     *TableRef
	where     ConditionHolder
	orders    []OrderExpr
	limit     *Value
	returning *ReturningClause
}

func (*DeleteStatement) isSubQueryStatement() {}

// Delete starts a DELETE statement.
func Delete() *DeleteStatement {
	return &DeleteStatement{}
}

// With prefixes the statement with a WITH clause.
func (s *DeleteStatement) With(w *WithClause) *DeleteStatement {
	s.with = w
	return s
}

// WithCte prefixes the statement with a WITH clause holding one CTE.
func (s *DeleteStatement) WithCte(cte *CommonTableExpression) *DeleteStatement {
	return s.With(NewWithClause().CTE(cte))
}

// FromTable sets the target table.
func (s *DeleteStatement) FromTable(t TableRef) *DeleteStatement {
	s.table = &t
	return s
}

// AndWhere conjoins a WHERE predicate.
func (s *DeleteStatement) AndWhere(e Expr) *DeleteStatement {
	s.where.addChain(e, false)
	return s
}

// OrWhere disjoins a WHERE predicate.
func (s *DeleteStatement) OrWhere(e Expr) *DeleteStatement {
	s.where.addChain(e, true)
	return s
}

// CondWhere merges a condition tree into the WHERE clause.
func (s *DeleteStatement) CondWhere(c ConditionExpression) *DeleteStatement {
	s.where.addConditionExpression(c)
	return s
}

// OrderBy orders the affected rows (MySQL extension).
func (s *DeleteStatement) OrderBy(col string, ord Order) *DeleteStatement {
	s.orders = append(s.orders, OrderExpr{expr: Col(col), order: ord})
	return s
}

// Limit caps the number of affected rows (MySQL extension).
func (s *DeleteStatement) Limit(n uint64) *DeleteStatement {
	v := ValueOf(n)
	s.limit = &v
	return s
}

// Returning sets the RETURNING clause; MySQL suppresses it.
func (s *DeleteStatement) Returning(r ReturningClause) *DeleteStatement {
	s.returning = &r
	return s
}

// ReturningAll yields RETURNING *.
func (s *DeleteStatement) ReturningAll() *DeleteStatement {
	return s.Returning(ReturningAll())
}

// Build renders the statement for the dialect, returning the SQL and
// the collected bind values.
func (s *DeleteStatement) Build(qb QueryBuilder) (string, Values) {
	ph, numbered := qb.Placeholder()
	w := NewSqlWriterValues(ph, numbered)
	qb.PrepareDeleteStatement(s, w)
	return w.IntoParts()
}

// BuildCollect renders the statement into the given sink.
func (s *DeleteStatement) BuildCollect(qb QueryBuilder, w SqlWriter) string {
	qb.PrepareDeleteStatement(s, w)
	return w.Result()
}

// ToString renders the statement with inline literals.
func (s *DeleteStatement) ToString(qb QueryBuilder) string {
	w := NewSqlWriterString(qb)
	qb.PrepareDeleteStatement(s, w)
	return w.Result()
}
