package quarry

// SubQueryStatement is any statement embeddable as a sub-query: a
// select, an insert/update/delete (with RETURNING), or a WITH query.
type SubQueryStatement interface {
	isSubQueryStatement()
}

// SearchOrder selects breadth- or depth-first traversal for a recursive
// CTE SEARCH clause.
type SearchOrder uint8

// Search orders.
const (
	SearchBreadthFirst SearchOrder = iota
	SearchDepthFirst
)

// Search is the Postgres SEARCH clause of a recursive WITH: SEARCH
// BREADTH|DEPTH FIRST BY <expr> SET <alias>.
type Search struct {
	Order SearchOrder
	By    Expr
	Set   Name
}

// Cycle is the Postgres CYCLE clause of a recursive WITH: CYCLE <expr>
// SET <alias> USING <alias>.
type Cycle struct {
	Expr  Expr
	Set   Name
	Using Name
}

type cteQueryKind uint8

const (
	cteQuerySub cteQueryKind = iota
	cteQueryValues
)

// CommonTableExpression is one entry of a WITH clause: a named query
// with an optional column list and an optional Postgres materialization
// hint.
type CommonTableExpression struct {
	table        Name
	cols         []Name
	queryKind    cteQueryKind
	query        SubQueryStatement
	values       [][]Value
	materialized *bool
}

// NewCTE starts a common table expression under the given name.
func NewCTE(table string) *CommonTableExpression {
	return &CommonTableExpression{table: Name(table)}
}

// Columns declares the CTE's column list.
func (c *CommonTableExpression) Columns(cols ...string) *CommonTableExpression {
	for _, col := range cols {
		c.cols = append(c.cols, Name(col))
	}
	return c
}

// Query sets the CTE body to a statement.
func (c *CommonTableExpression) Query(s SubQueryStatement) *CommonTableExpression {
	c.queryKind = cteQuerySub
	c.query = s
	return c
}

// ValuesRows sets the CTE body to a VALUES list.
func (c *CommonTableExpression) ValuesRows(rows ...[]any) *CommonTableExpression {
	c.queryKind = cteQueryValues
	c.values = c.values[:0]
	for _, row := range rows {
		c.values = append(c.values, valuesOf(row))
	}
	return c
}

// Materialized sets the Postgres materialization hint. Other dialects
// ignore it.
func (c *CommonTableExpression) Materialized(on bool) *CommonTableExpression {
	c.materialized = &on
	return c
}

// TableName returns the CTE's declared name.
func (c *CommonTableExpression) TableName() string { return string(c.table) }

// WithClause is the WITH prefix of a statement: one or more CTEs,
// optionally RECURSIVE, with optional Postgres SEARCH/CYCLE options.
type WithClause struct {
	recursive bool
	ctes      []CommonTableExpression
	search    *Search
	cycle     *Cycle
}

// NewWithClause starts an empty WITH clause.
func NewWithClause() *WithClause {
	return &WithClause{}
}

// Recursive marks the clause RECURSIVE.
func (w *WithClause) Recursive() *WithClause {
	w.recursive = true
	return w
}

// CTE appends a common table expression.
func (w *WithClause) CTE(cte *CommonTableExpression) *WithClause {
	w.ctes = append(w.ctes, *cte)
	return w
}

// Search sets the Postgres SEARCH option; other dialects emit nothing.
func (w *WithClause) Search(s Search) *WithClause {
	w.search = &s
	return w
}

// Cycle sets the Postgres CYCLE option; other dialects emit nothing.
func (w *WithClause) Cycle(c Cycle) *WithClause {
	w.cycle = &c
	return w
}

// Query attaches a statement to the clause, producing a renderable WITH
// query.
func (w *WithClause) Query(s SubQueryStatement) *WithQuery {
	return &WithQuery{with: *w, stmt: s}
}

// WithQuery is a WITH clause paired with the statement it prefixes. It
// renders and audits as a statement in its own right.
type WithQuery struct {
	with WithClause
	stmt SubQueryStatement
}

func (*WithQuery) isSubQueryStatement() {}

// Build renders the query for the dialect, returning the SQL and the
// collected bind values.
func (q *WithQuery) Build(qb QueryBuilder) (string, Values) {
	ph, numbered := qb.Placeholder()
	w := NewSqlWriterValues(ph, numbered)
	qb.PrepareWithQuery(q, w)
	return w.IntoParts()
}

// BuildCollect renders the query into the given sink.
func (q *WithQuery) BuildCollect(qb QueryBuilder, w SqlWriter) string {
	qb.PrepareWithQuery(q, w)
	return w.Result()
}

// ToString renders the query with inline literals.
func (q *WithQuery) ToString(qb QueryBuilder) string {
	w := NewSqlWriterString(qb)
	qb.PrepareWithQuery(q, w)
	return w.Result()
}
