package quarry

// InsertStatement builds an INSERT (or REPLACE) statement. Row arity is
// checked against the declared column list as rows are added.
type InsertStatement struct {
	with          *WithClause
	replace       bool
	table         *TableRef
	columns       []Name
	rows          [][]Expr
	source        *SelectStatement
	defaultValues uint32
	onConflict    *OnConflict
	returning     *ReturningClause
}

func (*InsertStatement) isSubQueryStatement() {}

// Insert starts an INSERT statement.
func Insert() *InsertStatement {
	return &InsertStatement{}
}

// With prefixes the statement with a WITH clause.
func (s *InsertStatement) With(w *WithClause) *InsertStatement {
	s.with = w
	return s
}

// WithCte prefixes the statement with a WITH clause holding one CTE.
func (s *InsertStatement) WithCte(cte *CommonTableExpression) *InsertStatement {
	return s.With(NewWithClause().CTE(cte))
}

// Replace switches the statement to REPLACE INTO. MySQL and SQLite
// accept it; Postgres rejects it at render time.
func (s *InsertStatement) Replace() *InsertStatement {
	s.replace = true
	return s
}

// IntoTable sets the target table.
func (s *InsertStatement) IntoTable(t TableRef) *InsertStatement {
	s.table = &t
	return s
}

// Into sets the target table by name.
func (s *InsertStatement) Into(name string) *InsertStatement {
	return s.IntoTable(T(name))
}

// Columns declares the column list.
func (s *InsertStatement) Columns(cols ...string) *InsertStatement {
	for _, c := range cols {
		s.columns = append(s.columns, Name(c))
	}
	return s
}

// Values appends one row. Entries pass through toExpr, so bind values
// and expressions can mix. Returns ColValNumMismatchError when the row
// arity disagrees with the column list.
func (s *InsertStatement) Values(row ...any) (*InsertStatement, error) {
	if len(row) != len(s.columns) {
		return s, ColValNumMismatchError{ColLen: len(s.columns), ValLen: len(row)}
	}
	exprs := make([]Expr, 0, len(row))
	for _, v := range row {
		exprs = append(exprs, toExpr(v))
	}
	s.rows = append(s.rows, exprs)
	return s, nil
}

// ValuesPanic appends one row, panicking on arity mismatch.
func (s *InsertStatement) ValuesPanic(row ...any) *InsertStatement {
	st, err := s.Values(row...)
	if err != nil {
		panic(err)
	}
	return st
}

// SelectFrom sources the inserted rows from a select.
func (s *InsertStatement) SelectFrom(sel *SelectStatement) *InsertStatement {
	s.source = sel
	return s
}

// OrDefaultValues inserts n all-default rows when no columns or rows
// were declared. SQLite renders DEFAULT VALUES regardless of n.
func (s *InsertStatement) OrDefaultValues(n uint32) *InsertStatement {
	s.defaultValues = n
	return s
}

// OnConflict sets the upsert clause.
func (s *InsertStatement) OnConflict(oc *OnConflict) *InsertStatement {
	s.onConflict = oc
	return s
}

// Returning sets the RETURNING clause; MySQL suppresses it.
func (s *InsertStatement) Returning(r ReturningClause) *InsertStatement {
	s.returning = &r
	return s
}

// ReturningAll yields RETURNING *.
func (s *InsertStatement) ReturningAll() *InsertStatement {
	return s.Returning(ReturningAll())
}

// ReturningColumn yields one column.
func (s *InsertStatement) ReturningColumn(col string) *InsertStatement {
	return s.Returning(ReturningColumns(col))
}

// Build renders the statement for the dialect, returning the SQL and
// the collected bind values.
func (s *InsertStatement) Build(qb QueryBuilder) (string, Values) {
	ph, numbered := qb.Placeholder()
	w := NewSqlWriterValues(ph, numbered)
	qb.PrepareInsertStatement(s, w)
	return w.IntoParts()
}

// BuildCollect renders the statement into the given sink.
func (s *InsertStatement) BuildCollect(qb QueryBuilder, w SqlWriter) string {
	qb.PrepareInsertStatement(s, w)
	return w.Result()
}

// ToString renders the statement with inline literals.
func (s *InsertStatement) ToString(qb QueryBuilder) string {
	w := NewSqlWriterString(qb)
	qb.PrepareInsertStatement(s, w)
	return w.Result()
}
