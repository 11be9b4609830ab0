package quarry

type orderKind uint8

const (
	orderAsc orderKind = iota
	orderDesc
	orderField
)

// Order is an ordering direction, or a FIELD ordering that preserves a
// caller-supplied sequence of literal values via a CASE expression.
type Order struct {
	kind  orderKind
	field Values
}

// Ordering directions.
var (
	Asc  = Order{kind: orderAsc}
	Desc = Order{kind: orderDesc}
)

// OrderField orders rows by the position of the expression's value in
// the given list; values outside the list sort last.
func OrderField(vals ...any) Order {
	return Order{kind: orderField, field: valuesOf(vals)}
}

// NullOrdering places NULLs first or last. Postgres and SQLite render
// NULLS FIRST/LAST; MySQL emulates with an `IS NULL` sort key prefix.
type NullOrdering uint8

// Null orderings.
const (
	NullsFirst NullOrdering = iota
	NullsLast
)

// OrderExpr is one ORDER BY item.
type OrderExpr struct {
	expr  Expr
	order Order
	nulls *NullOrdering
}

// JoinType selects the join keyword.
type JoinType uint8

// Join types.
const (
	Join JoinType = iota
	InnerJoin
	LeftJoin
	RightJoin
	FullOuterJoin
	CrossJoin
)

// Spelling returns the join keyword.
func (t JoinType) Spelling() string {
	switch t {
	case InnerJoin:
		return "INNER JOIN"
	case LeftJoin:
		return "LEFT JOIN"
	case RightJoin:
		return "RIGHT JOIN"
	case FullOuterJoin:
		return "FULL OUTER JOIN"
	case CrossJoin:
		return "CROSS JOIN"
	}
	return "JOIN"
}

// JoinExpr is one JOIN clause.
type JoinExpr struct {
	join    JoinType
	table   TableRef
	on      *ConditionHolder
	lateral bool
}

// UnionType selects the set operation joining two selects.
type UnionType uint8

// Union types.
const (
	UnionDistinct UnionType = iota
	UnionAll
	Intersect
	Except
)

// Spelling returns the set-operation keyword.
func (t UnionType) Spelling() string {
	switch t {
	case UnionAll:
		return "UNION ALL"
	case Intersect:
		return "INTERSECT"
	case Except:
		return "EXCEPT"
	}
	return "UNION"
}

// LockType selects the row-locking strength.
type LockType uint8

// Lock types.
const (
	LockUpdate LockType = iota
	LockNoKeyUpdate
	LockShare
	LockKeyShare
)

// Spelling returns the FOR clause keyword.
func (t LockType) Spelling() string {
	switch t {
	case LockNoKeyUpdate:
		return "NO KEY UPDATE"
	case LockShare:
		return "SHARE"
	case LockKeyShare:
		return "KEY SHARE"
	}
	return "UPDATE"
}

// LockBehavior selects how a lock waits on contended rows.
type LockBehavior uint8

// Lock behaviors.
const (
	LockWait LockBehavior = iota
	LockNowait
	LockSkipLocked
)

// LockClause is a SELECT row-locking clause. SQLite suppresses all lock
// output.
type LockClause struct {
	typ      LockType
	tables   []TableRef
	behavior LockBehavior
}

// NewLock starts a lock clause of the given strength.
func NewLock(t LockType) LockClause {
	return LockClause{typ: t}
}

// Of restricts the lock to the given tables.
func (l LockClause) Of(tables ...TableRef) LockClause {
	l.tables = append(l.tables, tables...)
	return l
}

// Nowait makes the lock fail immediately on contention.
func (l LockClause) Nowait() LockClause {
	l.behavior = LockNowait
	return l
}

// SkipLocked makes the lock skip contended rows.
func (l LockClause) SkipLocked() LockClause {
	l.behavior = LockSkipLocked
	return l
}

type selectDistinct uint8

const (
	distinctNone selectDistinct = iota
	distinctAll
	distinctDistinct
	distinctRow
)

// SelectExpr is one select item: an expression with an optional alias
// and an optional window attachment.
type SelectExpr struct {
	expr   Expr
	alias  Name
	window *windowRef
}

type unionPair struct {
	typ  UnionType
	stmt *SelectStatement
}

// SelectStatement builds a SELECT query. The zero value from Select() is
// an empty statement; fluent methods mutate and return the receiver.
type SelectStatement struct {
	with       *WithClause
	distinct   selectDistinct
	selects    []SelectExpr
	from       []TableRef
	joins      []JoinExpr
	where      ConditionHolder
	groups     []Expr
	having     ConditionHolder
	windows    []namedWindow
	unions     []unionPair
	orders     []OrderExpr
	limit      *Value
	offset     *Value
	lock       *LockClause
	indexHints []IndexHint
}

func (*SelectStatement) isSubQueryStatement() {}

// Select starts a SELECT statement.
func Select() *SelectStatement {
	return &SelectStatement{}
}

// With prefixes the statement with a WITH clause.
func (s *SelectStatement) With(w *WithClause) *SelectStatement {
	s.with = w
	return s
}

// WithCte prefixes the statement with a WITH clause holding one CTE.
func (s *SelectStatement) WithCte(cte *CommonTableExpression) *SelectStatement {
	return s.With(NewWithClause().CTE(cte))
}

// Distinct emits SELECT DISTINCT.
func (s *SelectStatement) Distinct() *SelectStatement {
	s.distinct = distinctDistinct
	return s
}

// DistinctRow emits SELECT DISTINCTROW (MySQL spelling of DISTINCT).
func (s *SelectStatement) DistinctRow() *SelectStatement {
	s.distinct = distinctRow
	return s
}

// Column selects a column from 1-3 name parts.
func (s *SelectStatement) Column(parts ...string) *SelectStatement {
	s.selects = append(s.selects, SelectExpr{expr: Col(parts...)})
	return s
}

// Columns selects several bare columns.
func (s *SelectStatement) Columns(cols ...string) *SelectStatement {
	for _, c := range cols {
		s.selects = append(s.selects, SelectExpr{expr: Col(c)})
	}
	return s
}

// ColumnAs selects a column under an alias.
func (s *SelectStatement) ColumnAs(col ColumnRef, alias string) *SelectStatement {
	s.selects = append(s.selects, SelectExpr{expr: ColRef(col), alias: Name(alias)})
	return s
}

// Expr selects an expression.
func (s *SelectStatement) Expr(e Expr) *SelectStatement {
	s.selects = append(s.selects, SelectExpr{expr: e})
	return s
}

// ExprAs selects an expression under an alias.
func (s *SelectStatement) ExprAs(e Expr, alias string) *SelectStatement {
	s.selects = append(s.selects, SelectExpr{expr: e, alias: Name(alias)})
	return s
}

// ExprWindow selects an expression over an inline window.
func (s *SelectStatement) ExprWindow(e Expr, w *WindowStatement) *SelectStatement {
	s.selects = append(s.selects, SelectExpr{expr: e, window: &windowRef{inline: w}})
	return s
}

// ExprWindowName selects an expression over a named window declared via
// Window.
func (s *SelectStatement) ExprWindowName(e Expr, name string) *SelectStatement {
	s.selects = append(s.selects, SelectExpr{expr: e, window: &windowRef{name: Name(name)}})
	return s
}

// From adds a table source by name, with an optional alias.
func (s *SelectStatement) From(name string, alias ...string) *SelectStatement {
	s.from = append(s.from, T(name, alias...))
	return s
}

// FromRef adds an arbitrary table source.
func (s *SelectStatement) FromRef(t TableRef) *SelectStatement {
	s.from = append(s.from, t)
	return s
}

// FromSubQuery adds a derived table.
func (s *SelectStatement) FromSubQuery(sub *SelectStatement, alias string) *SelectStatement {
	s.from = append(s.from, SubQueryRef(sub, alias))
	return s
}

// IndexHint appends a MySQL index hint; other dialects emit nothing.
func (s *SelectStatement) IndexHint(h IndexHint) *SelectStatement {
	s.indexHints = append(s.indexHints, h)
	return s
}

// UseIndex hints MySQL to use the given index.
func (s *SelectStatement) UseIndex(index string, scope IndexHintScope) *SelectStatement {
	return s.IndexHint(IndexHint{Type: IndexHintUse, Index: Name(index), Scope: scope})
}

// IgnoreIndex hints MySQL to ignore the given index.
func (s *SelectStatement) IgnoreIndex(index string, scope IndexHintScope) *SelectStatement {
	return s.IndexHint(IndexHint{Type: IndexHintIgnore, Index: Name(index), Scope: scope})
}

// ForceIndex hints MySQL to force the given index.
func (s *SelectStatement) ForceIndex(index string, scope IndexHintScope) *SelectStatement {
	return s.IndexHint(IndexHint{Type: IndexHintForce, Index: Name(index), Scope: scope})
}

// JoinTable appends a join with an ON condition.
func (s *SelectStatement) JoinTable(jt JoinType, t TableRef, on ConditionExpression) *SelectStatement {
	holder := &ConditionHolder{}
	holder.addConditionExpression(on)
	s.joins = append(s.joins, JoinExpr{join: jt, table: t, on: holder})
	return s
}

// InnerJoin appends an INNER JOIN.
func (s *SelectStatement) InnerJoin(t TableRef, on ConditionExpression) *SelectStatement {
	return s.JoinTable(InnerJoin, t, on)
}

// LeftJoin appends a LEFT JOIN.
func (s *SelectStatement) LeftJoin(t TableRef, on ConditionExpression) *SelectStatement {
	return s.JoinTable(LeftJoin, t, on)
}

// RightJoin appends a RIGHT JOIN.
func (s *SelectStatement) RightJoin(t TableRef, on ConditionExpression) *SelectStatement {
	return s.JoinTable(RightJoin, t, on)
}

// FullOuterJoin appends a FULL OUTER JOIN; MySQL rejects it at render
// time.
func (s *SelectStatement) FullOuterJoin(t TableRef, on ConditionExpression) *SelectStatement {
	return s.JoinTable(FullOuterJoin, t, on)
}

// CrossJoin appends a CROSS JOIN with no ON condition.
func (s *SelectStatement) CrossJoin(t TableRef) *SelectStatement {
	s.joins = append(s.joins, JoinExpr{join: CrossJoin, table: t})
	return s
}

// JoinSubQuery joins a derived table.
func (s *SelectStatement) JoinSubQuery(jt JoinType, sub *SelectStatement, alias string, on ConditionExpression) *SelectStatement {
	return s.JoinTable(jt, SubQueryRef(sub, alias), on)
}

// JoinLateral joins a LATERAL derived table.
func (s *SelectStatement) JoinLateral(jt JoinType, sub *SelectStatement, alias string, on ConditionExpression) *SelectStatement {
	holder := &ConditionHolder{}
	holder.addConditionExpression(on)
	s.joins = append(s.joins, JoinExpr{join: jt, table: SubQueryRef(sub, alias), on: holder, lateral: true})
	return s
}

// AndWhere conjoins a WHERE predicate.
func (s *SelectStatement) AndWhere(e Expr) *SelectStatement {
	s.where.addChain(e, false)
	return s
}

// OrWhere disjoins a WHERE predicate. Prefer CondWhere with CondAny for
// new code; this is the legacy chain form.
func (s *SelectStatement) OrWhere(e Expr) *SelectStatement {
	s.where.addChain(e, true)
	return s
}

// CondWhere merges a condition tree into the WHERE clause.
func (s *SelectStatement) CondWhere(c ConditionExpression) *SelectStatement {
	s.where.addConditionExpression(c)
	return s
}

// GroupBy appends grouping expressions.
func (s *SelectStatement) GroupBy(exprs ...Expr) *SelectStatement {
	s.groups = append(s.groups, exprs...)
	return s
}

// GroupByColumns appends bare column groupings.
func (s *SelectStatement) GroupByColumns(cols ...string) *SelectStatement {
	for _, c := range cols {
		s.groups = append(s.groups, Col(c))
	}
	return s
}

// AndHaving conjoins a HAVING predicate.
func (s *SelectStatement) AndHaving(e Expr) *SelectStatement {
	s.having.addChain(e, false)
	return s
}

// OrHaving disjoins a HAVING predicate.
func (s *SelectStatement) OrHaving(e Expr) *SelectStatement {
	s.having.addChain(e, true)
	return s
}

// CondHaving merges a condition tree into the HAVING clause.
func (s *SelectStatement) CondHaving(c ConditionExpression) *SelectStatement {
	s.having.addConditionExpression(c)
	return s
}

// Window declares a named window.
func (s *SelectStatement) Window(name string, w *WindowStatement) *SelectStatement {
	s.windows = append(s.windows, namedWindow{name: Name(name), stmt: *w})
	return s
}

// Union appends a set operation with another select.
func (s *SelectStatement) Union(t UnionType, other *SelectStatement) *SelectStatement {
	s.unions = append(s.unions, unionPair{typ: t, stmt: other})
	return s
}

// UnionAll appends UNION ALL with another select.
func (s *SelectStatement) UnionAll(other *SelectStatement) *SelectStatement {
	return s.Union(UnionAll, other)
}

// OrderBy orders by a column.
func (s *SelectStatement) OrderBy(col string, ord Order) *SelectStatement {
	s.orders = append(s.orders, OrderExpr{expr: Col(col), order: ord})
	return s
}

// OrderByTableColumn orders by a table-qualified column.
func (s *SelectStatement) OrderByTableColumn(table, col string, ord Order) *SelectStatement {
	s.orders = append(s.orders, OrderExpr{expr: Col(table, col), order: ord})
	return s
}

// OrderByExpr orders by an expression.
func (s *SelectStatement) OrderByExpr(e Expr, ord Order) *SelectStatement {
	s.orders = append(s.orders, OrderExpr{expr: e, order: ord})
	return s
}

// OrderByColumns orders by several columns in one direction.
func (s *SelectStatement) OrderByColumns(ord Order, cols ...string) *SelectStatement {
	for _, c := range cols {
		s.orders = append(s.orders, OrderExpr{expr: Col(c), order: ord})
	}
	return s
}

// OrderByWithNulls orders by a column with explicit NULL placement.
func (s *SelectStatement) OrderByWithNulls(col string, ord Order, nulls NullOrdering) *SelectStatement {
	n := nulls
	s.orders = append(s.orders, OrderExpr{expr: Col(col), order: ord, nulls: &n})
	return s
}

// Limit caps the number of returned rows.
func (s *SelectStatement) Limit(n uint64) *SelectStatement {
	v := ValueOf(n)
	s.limit = &v
	return s
}

// Offset skips the first n rows.
func (s *SelectStatement) Offset(n uint64) *SelectStatement {
	v := ValueOf(n)
	s.offset = &v
	return s
}

// Lock adds a row-locking clause of the given strength.
func (s *SelectStatement) Lock(t LockType) *SelectStatement {
	l := NewLock(t)
	s.lock = &l
	return s
}

// LockWith adds a fully specified row-locking clause.
func (s *SelectStatement) LockWith(l LockClause) *SelectStatement {
	s.lock = &l
	return s
}

// ApplyIf applies f to the statement only when ok is true. Useful for
// optional clauses in request-driven query assembly.
func (s *SelectStatement) ApplyIf(ok bool, f func(*SelectStatement)) *SelectStatement {
	if ok {
		f(s)
	}
	return s
}

// Build renders the statement for the dialect, returning the SQL and
// the collected bind values.
func (s *SelectStatement) Build(qb QueryBuilder) (string, Values) {
	ph, numbered := qb.Placeholder()
	w := NewSqlWriterValues(ph, numbered)
	qb.PrepareSelectStatement(s, w)
	return w.IntoParts()
}

// BuildCollect renders the statement into the given sink.
func (s *SelectStatement) BuildCollect(qb QueryBuilder, w SqlWriter) string {
	qb.PrepareSelectStatement(s, w)
	return w.Result()
}

// ToString renders the statement with inline literals.
func (s *SelectStatement) ToString(qb QueryBuilder) string {
	w := NewSqlWriterString(qb)
	qb.PrepareSelectStatement(s, w)
	return w.Result()
}
