package quarry

// Quote is a pair of identifier quote characters. The right character is
// escaped by doubling inside quoted identifiers.
type Quote struct {
	Left  byte
	Right byte
}

// Capabilities describes the on/off feature surface of a dialect. The
// shared traversal branches on these flags for purely boolean
// divergences; anything with dialect-specific syntax goes through a
// method override instead.
type Capabilities struct {
	// Returning enables the RETURNING clause on INSERT/UPDATE/DELETE.
	Returning bool
	// MaterializedCte enables [NOT] MATERIALIZED hints on CTEs.
	MaterializedCte bool
	// RecursiveSearchCycle enables SEARCH/CYCLE on recursive WITH.
	RecursiveSearchCycle bool
	// RowLocking enables SELECT ... FOR UPDATE and friends.
	RowLocking bool
	// IndexHints enables USE/IGNORE/FORCE INDEX hints.
	IndexHints bool
	// ParenthesizedUnion wraps union arms in parentheses.
	ParenthesizedUnion bool
	// ValuesRowKeyword prefixes tuples with ROW in VALUES table sources.
	ValuesRowKeyword bool
	// ReplaceInsert accepts REPLACE INTO.
	ReplaceInsert bool
	// InsertIgnore renders conflict-ignoring inserts as INSERT IGNORE.
	InsertIgnore bool
	// AnySubQueryOp accepts the ANY/SOME/ALL sub-query operators.
	AnySubQueryOp bool
	// FullOuterJoin accepts FULL OUTER JOIN.
	FullOuterJoin bool
	// ArrayLiterals enables inline ARRAY [..] rendering.
	ArrayLiterals bool
	// DefaultValuesKeyword spells all-default inserts as DEFAULT VALUES.
	DefaultValuesKeyword bool
}

// QueryBuilder is the dialect policy driving a render. The shared
// traversal lives in CommonQueryBuilder and calls back through this
// interface at every decision point, so a dialect adapts a divergence by
// overriding one method.
type QueryBuilder interface {
	// Dialect returns the human-readable dialect name for panics.
	Dialect() string
	// Capabilities returns the dialect's feature flags.
	Capabilities() Capabilities
	// Placeholder returns the bind marker and whether it is numbered.
	Placeholder() (string, bool)
	// Quote returns the identifier quote pair.
	Quote() Quote
	// EscapeString escapes a string for use inside a quoted literal.
	EscapeString(s string) string
	// QuotedString renders a complete string literal.
	QuotedString(s string) string
	// ValueToString renders a value as an inline literal.
	ValueToString(v Value) string
	// FunctionName maps a built-in function to its dialect spelling.
	FunctionName(f FuncIden) string

	PrepareSelectStatement(s *SelectStatement, w SqlWriter)
	PrepareInsertStatement(s *InsertStatement, w SqlWriter)
	PrepareUpdateStatement(s *UpdateStatement, w SqlWriter)
	PrepareDeleteStatement(s *DeleteStatement, w SqlWriter)
	PrepareQueryStatement(s SubQueryStatement, w SqlWriter)
	PrepareWithQuery(q *WithQuery, w SqlWriter)
	PrepareWithClause(c *WithClause, w SqlWriter)
	PrepareExpr(e Expr, w SqlWriter)
	PrepareCondition(h *ConditionHolder, keyword string, w SqlWriter)
	PrepareConditionWhere(c Condition, w SqlWriter)
	PrepareTableRef(t TableRef, w SqlWriter)
	PrepareColumnRef(c ColumnRef, w SqlWriter)
	PrepareIden(iden Iden, w SqlWriter)
	PrepareValue(v Value, w SqlWriter)
	PrepareOrderExpr(o OrderExpr, w SqlWriter)
	PrepareOnConflict(oc *OnConflict, w SqlWriter)
	PrepareReturning(r *ReturningClause, w SqlWriter)
	PrepareAsEnum(typeName TableName, inner Expr, w SqlWriter)
}
