package quarry

type exprKind uint8

const (
	exprColumn exprKind = iota
	exprValue
	exprConstant
	exprTuple
	exprValues
	exprUnary
	exprBinary
	exprFunctionCall
	exprSubQuery
	exprCase
	exprKeyword
	exprCustom
	exprCustomWithExpr
	exprAsEnum
	exprTypeName
)

// Expr is a node of the SQL expression tree. Exprs are values; fluent
// methods return new nodes and never mutate their receiver, so any Expr
// can be reused as a building block.
type Expr struct {
	kind     exprKind
	col      ColumnRef
	val      Value
	op       BinOp
	un       UnOp
	left     *Expr
	right    *Expr
	list     []Expr
	vals     Values
	keyword  Keyword
	custom   string
	fn       *funcCall
	cases    *CaseStatement
	subOp    *SubQueryOp
	sub      SubQueryStatement
	typeName TableName
}

func (Expr) isConditionExpression() {}

// Col references a column from 1-3 name parts: column, table.column, or
// schema.table.column.
func Col(parts ...string) Expr {
	return Expr{kind: exprColumn, col: columnRefOf(parts...)}
}

// ColRef wraps a column reference.
func ColRef(c ColumnRef) Expr {
	return Expr{kind: exprColumn, col: c}
}

// Val wraps a bind value: it renders as a placeholder and is collected.
func Val(v any) Expr {
	return Expr{kind: exprValue, val: ValueOf(v)}
}

// Constant wraps an inline literal: it renders in place and is never
// parameterised.
func Constant(v any) Expr {
	return Expr{kind: exprConstant, val: ValueOf(v)}
}

// Cust embeds a raw SQL fragment verbatim. The caller is responsible for
// its validity.
func Cust(sql string) Expr {
	return Expr{kind: exprCustom, custom: sql}
}

// CustWithExprs embeds a raw SQL fragment whose placeholder markers are
// substituted, in order, by the given expressions. The template is
// tokenised so markers inside string literals are left alone; a doubled
// marker escapes to a literal one.
func CustWithExprs(template string, exprs ...Expr) Expr {
	return Expr{kind: exprCustomWithExpr, custom: template, list: exprs}
}

// CustWithValues embeds a raw SQL fragment whose placeholder markers bind
// the given values.
func CustWithValues(template string, vals ...any) Expr {
	exprs := make([]Expr, 0, len(vals))
	for _, v := range vals {
		exprs = append(exprs, Val(v))
	}
	return Expr{kind: exprCustomWithExpr, custom: template, list: exprs}
}

// Tuple groups expressions into a parenthesised row value.
func Tuple(exprs ...Expr) Expr {
	return Expr{kind: exprTuple, list: exprs}
}

// KeywordExpr wraps a SQL keyword.
func KeywordExpr(k Keyword) Expr {
	return Expr{kind: exprKeyword, keyword: k}
}

// Null is the NULL keyword.
func Null() Expr { return KeywordExpr(KeywordNull) }

// CurrentDate is the CURRENT_DATE keyword.
func CurrentDate() Expr { return KeywordExpr(KeywordCurrentDate) }

// CurrentTime is the CURRENT_TIME keyword.
func CurrentTime() Expr { return KeywordExpr(KeywordCurrentTime) }

// CurrentTimestamp is the CURRENT_TIMESTAMP keyword.
func CurrentTimestamp() Expr { return KeywordExpr(KeywordCurrentTimestamp) }

// Default is the DEFAULT keyword, usable as an INSERT value.
func Default() Expr { return KeywordExpr(KeywordDefault) }

// Not negates an expression.
func Not(e Expr) Expr {
	return Expr{kind: exprUnary, un: UnOpNot, left: &e}
}

// SubQuery applies a sub-query operator to a statement.
func SubQuery(op SubQueryOp, s SubQueryStatement) Expr {
	o := op
	return Expr{kind: exprSubQuery, subOp: &o, sub: s}
}

// SubQueryExpr embeds a statement as a scalar sub-query.
func SubQueryExpr(s SubQueryStatement) Expr {
	return Expr{kind: exprSubQuery, sub: s}
}

// Exists wraps a statement in EXISTS ( ... ).
func Exists(s SubQueryStatement) Expr { return SubQuery(SubQueryExists, s) }

// NotExists wraps a statement in NOT EXISTS ( ... ).
func NotExists(s SubQueryStatement) Expr { return SubQuery(SubQueryNotExists, s) }

// TypeName references a possibly schema-qualified type, usable as a cast
// target.
func TypeName(parts ...string) Expr {
	switch len(parts) {
	case 1:
		return Expr{kind: exprTypeName, typeName: TableName{Name: parts[0]}}
	case 2:
		return Expr{kind: exprTypeName, typeName: TableName{Schema: parts[0], Name: parts[1]}}
	}
	panic("quarry: type name takes 1 or 2 parts")
}

// toExpr lifts a native value into the expression tree. Exprs pass
// through; everything else becomes a bind value.
func toExpr(v any) Expr {
	if e, ok := v.(Expr); ok {
		return e
	}
	return Val(v)
}

// Binary combines the receiver with an arbitrary operator.
func (e Expr) Binary(op BinOp, right any) Expr {
	r := toExpr(right)
	return Expr{kind: exprBinary, op: op, left: &e, right: &r}
}

// Eq renders `e = v`.
func (e Expr) Eq(v any) Expr { return e.Binary(OpEq, v) }

// Ne renders `e <> v`.
func (e Expr) Ne(v any) Expr { return e.Binary(OpNe, v) }

// Gt renders `e > v`.
func (e Expr) Gt(v any) Expr { return e.Binary(OpGt, v) }

// Gte renders `e >= v`.
func (e Expr) Gte(v any) Expr { return e.Binary(OpGte, v) }

// Lt renders `e < v`.
func (e Expr) Lt(v any) Expr { return e.Binary(OpLt, v) }

// Lte renders `e <= v`.
func (e Expr) Lte(v any) Expr { return e.Binary(OpLte, v) }

// Add renders `e + v`.
func (e Expr) Add(v any) Expr { return e.Binary(OpAdd, v) }

// Sub renders `e - v`.
func (e Expr) Sub(v any) Expr { return e.Binary(OpSub, v) }

// Mul renders `e * v`.
func (e Expr) Mul(v any) Expr { return e.Binary(OpMul, v) }

// Div renders `e / v`.
func (e Expr) Div(v any) Expr { return e.Binary(OpDiv, v) }

// Modulo renders `e % v`.
func (e Expr) Modulo(v any) Expr { return e.Binary(OpMod, v) }

// LShift renders `e << v`.
func (e Expr) LShift(v any) Expr { return e.Binary(OpLShift, v) }

// RShift renders `e >> v`.
func (e Expr) RShift(v any) Expr { return e.Binary(OpRShift, v) }

// And renders `e AND v`.
func (e Expr) And(v any) Expr { return e.Binary(OpAnd, v) }

// Or renders `e OR v`.
func (e Expr) Or(v any) Expr { return e.Binary(OpOr, v) }

// Is renders `e IS v`.
func (e Expr) Is(v any) Expr { return e.Binary(OpIs, v) }

// IsNot renders `e IS NOT v`.
func (e Expr) IsNot(v any) Expr { return e.Binary(OpIsNot, v) }

// IsNull renders `e IS NULL`.
func (e Expr) IsNull() Expr { return e.Binary(OpIs, Null()) }

// IsNotNull renders `e IS NOT NULL`.
func (e Expr) IsNotNull() Expr { return e.Binary(OpIsNot, Null()) }

// In renders `e IN (v1, v2, ...)`. An empty list renders the
// tautology-breaker `1 = 2`.
func (e Expr) In(vals ...any) Expr {
	r := Expr{kind: exprValues, vals: valuesOf(vals)}
	return Expr{kind: exprBinary, op: OpIn, left: &e, right: &r}
}

// NotIn renders `e NOT IN (v1, v2, ...)`. An empty list renders the
// tautology `1 = 1`.
func (e Expr) NotIn(vals ...any) Expr {
	r := Expr{kind: exprValues, vals: valuesOf(vals)}
	return Expr{kind: exprBinary, op: OpNotIn, left: &e, right: &r}
}

// InExprs renders `e IN (e1, e2, ...)` over expressions.
func (e Expr) InExprs(exprs ...Expr) Expr {
	return e.Binary(OpIn, Tuple(exprs...))
}

// InSubQuery renders `e IN (SELECT ...)`.
func (e Expr) InSubQuery(s SubQueryStatement) Expr {
	return e.Binary(OpIn, SubQueryExpr(s))
}

// NotInSubQuery renders `e NOT IN (SELECT ...)`.
func (e Expr) NotInSubQuery(s SubQueryStatement) Expr {
	return e.Binary(OpNotIn, SubQueryExpr(s))
}

// Between renders `e BETWEEN a AND b`.
func (e Expr) Between(a, b any) Expr {
	return e.Binary(OpBetween, toExpr(a).Binary(OpAnd, b))
}

// NotBetween renders `e NOT BETWEEN a AND b`.
func (e Expr) NotBetween(a, b any) Expr {
	return e.Binary(OpNotBetween, toExpr(a).Binary(OpAnd, b))
}

// Like renders `e LIKE pattern`.
func (e Expr) Like(pattern string) Expr { return e.Binary(OpLike, pattern) }

// NotLike renders `e NOT LIKE pattern`.
func (e Expr) NotLike(pattern string) Expr { return e.Binary(OpNotLike, pattern) }

// LikeEscape renders `e LIKE pattern ESCAPE 'c'`. The inner ESCAPE
// binary is structural and is never parenthesised.
func (e Expr) LikeEscape(pattern string, esc rune) Expr {
	return e.Binary(OpLike, Val(pattern).Binary(OpEscape, Constant(CharValue(esc))))
}

// ILike renders `e ILIKE pattern` (Postgres).
func (e Expr) ILike(pattern string) Expr { return e.Binary(OpILike, pattern) }

// Concat renders `e || v`.
func (e Expr) Concat(v any) Expr { return e.Binary(OpConcatenate, v) }

// CastAs renders `CAST(e AS type)`.
func (e Expr) CastAs(typeName string) Expr {
	arg := e.Binary(OpAs, Cust(typeName))
	return Expr{kind: exprFunctionCall, fn: &funcCall{fn: FuncIden{kind: funcCast}, args: []Expr{arg}}}
}

// AsEnum annotates the expression with a Postgres enum type. Postgres
// renders a CAST; MySQL and SQLite fall through to the inner expression.
func (e Expr) AsEnum(typeName string) Expr {
	return Expr{kind: exprAsEnum, typeName: TableName{Name: typeName}, left: &e}
}

// Max wraps the expression in MAX( ).
func (e Expr) Max() Expr { return Max(e) }

// Min wraps the expression in MIN( ).
func (e Expr) Min() Expr { return Min(e) }

// Sum wraps the expression in SUM( ).
func (e Expr) Sum() Expr { return Sum(e) }

// Avg wraps the expression in AVG( ).
func (e Expr) Avg() Expr { return Avg(e) }

// Count wraps the expression in COUNT( ).
func (e Expr) Count() Expr { return Count(e) }

// IfNull renders the dialect's null-coalescing two-argument function.
func (e Expr) IfNull(v any) Expr { return IfNull(e, toExpr(v)) }

// keywordKind enumerates built-in keywords.
type keywordKind uint8

const (
	kwNull keywordKind = iota
	kwCurrentDate
	kwCurrentTime
	kwCurrentTimestamp
	kwDefault
	kwCustom
)

// Keyword is a bare SQL keyword usable in expression position.
type Keyword struct {
	kind   keywordKind
	custom string
}

// Built-in keywords.
var (
	KeywordNull             = Keyword{kind: kwNull}
	KeywordCurrentDate      = Keyword{kind: kwCurrentDate}
	KeywordCurrentTime      = Keyword{kind: kwCurrentTime}
	KeywordCurrentTimestamp = Keyword{kind: kwCurrentTimestamp}
	KeywordDefault          = Keyword{kind: kwDefault}
)

// CustomKeyword admits an arbitrary keyword spelling, emitted unquoted.
func CustomKeyword(s string) Keyword {
	return Keyword{kind: kwCustom, custom: s}
}

// Spelling returns the keyword's SQL spelling.
func (k Keyword) Spelling() string {
	switch k.kind {
	case kwNull:
		return "NULL"
	case kwCurrentDate:
		return "CURRENT_DATE"
	case kwCurrentTime:
		return "CURRENT_TIME"
	case kwCurrentTimestamp:
		return "CURRENT_TIMESTAMP"
	case kwDefault:
		return "DEFAULT"
	}
	return k.custom
}

type caseWhen struct {
	cond Condition
	then Expr
}

// CaseStatement is a searched CASE expression: WHEN conditions with
// results and an optional ELSE.
type CaseStatement struct {
	whens []caseWhen
	els   *Expr
}

// Case starts a searched CASE expression.
func Case() *CaseStatement {
	return &CaseStatement{}
}

// When appends a WHEN arm. A bare Expr condition is wrapped in an
// all-of-one condition.
func (c *CaseStatement) When(cond ConditionExpression, then any) *CaseStatement {
	var cnd Condition
	switch x := cond.(type) {
	case Condition:
		cnd = x
	case Expr:
		cnd = CondAll().Add(x)
	}
	c.whens = append(c.whens, caseWhen{cond: cnd, then: toExpr(then)})
	return c
}

// Finally sets the ELSE result.
func (c *CaseStatement) Finally(v any) *CaseStatement {
	e := toExpr(v)
	c.els = &e
	return c
}

// Expr wraps the CASE statement as an expression.
func (c *CaseStatement) Expr() Expr {
	return Expr{kind: exprCase, cases: c}
}
