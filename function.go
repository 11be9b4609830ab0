package quarry

type funcKind uint8

const (
	funcMax funcKind = iota
	funcMin
	funcSum
	funcAvg
	funcAbs
	funcCount
	funcIfNull
	funcGreatest
	funcLeast
	funcCharLength
	funcCast
	funcLower
	funcUpper
	funcBitAnd
	funcBitOr
	funcRandom
	funcRound
	funcMd5
	funcCoalesce
	funcCustom
)

// FuncIden names a SQL function. The built-in set maps to per-dialect
// spellings at render time; custom functions render their name verbatim.
type FuncIden struct {
	kind   funcKind
	custom string
}

// funcCall is a function application with an optional DISTINCT modifier
// on the first argument.
type funcCall struct {
	fn       FuncIden
	args     []Expr
	distinct bool
}

func fnExpr(kind funcKind, args ...Expr) Expr {
	return Expr{kind: exprFunctionCall, fn: &funcCall{fn: FuncIden{kind: kind}, args: args}}
}

// Max renders MAX(e).
func Max(e Expr) Expr { return fnExpr(funcMax, e) }

// Min renders MIN(e).
func Min(e Expr) Expr { return fnExpr(funcMin, e) }

// Sum renders SUM(e).
func Sum(e Expr) Expr { return fnExpr(funcSum, e) }

// Avg renders AVG(e).
func Avg(e Expr) Expr { return fnExpr(funcAvg, e) }

// Abs renders ABS(e).
func Abs(e Expr) Expr { return fnExpr(funcAbs, e) }

// Count renders COUNT(e).
func Count(e Expr) Expr { return fnExpr(funcCount, e) }

// CountDistinct renders COUNT(DISTINCT e).
func CountDistinct(e Expr) Expr {
	return Expr{kind: exprFunctionCall, fn: &funcCall{fn: FuncIden{kind: funcCount}, args: []Expr{e}, distinct: true}}
}

// IfNull renders the dialect's two-argument null-coalescing function:
// IFNULL on MySQL and SQLite, COALESCE on Postgres.
func IfNull(a, b Expr) Expr { return fnExpr(funcIfNull, a, b) }

// Coalesce renders COALESCE(e1, e2, ...).
func Coalesce(exprs ...Expr) Expr { return fnExpr(funcCoalesce, exprs...) }

// Greatest renders GREATEST(e1, e2, ...); SQLite spells it MAX.
func Greatest(exprs ...Expr) Expr { return fnExpr(funcGreatest, exprs...) }

// Least renders LEAST(e1, e2, ...); SQLite spells it MIN.
func Least(exprs ...Expr) Expr { return fnExpr(funcLeast, exprs...) }

// CharLength renders CHAR_LENGTH(e); SQLite spells it LENGTH.
func CharLength(e Expr) Expr { return fnExpr(funcCharLength, e) }

// Lower renders LOWER(e).
func Lower(e Expr) Expr { return fnExpr(funcLower, e) }

// Upper renders UPPER(e).
func Upper(e Expr) Expr { return fnExpr(funcUpper, e) }

// BitAnd renders the BIT_AND aggregate.
func BitAnd(e Expr) Expr { return fnExpr(funcBitAnd, e) }

// BitOr renders the BIT_OR aggregate.
func BitOr(e Expr) Expr { return fnExpr(funcBitOr, e) }

// Random renders the dialect's random function: RAND() on MySQL,
// RANDOM() elsewhere.
func Random() Expr { return fnExpr(funcRandom) }

// Round renders ROUND(e[, precision]).
func Round(exprs ...Expr) Expr { return fnExpr(funcRound, exprs...) }

// Md5 renders MD5(e).
func Md5(e Expr) Expr { return fnExpr(funcMd5, e) }

// CustomFunc renders an arbitrary function by name.
func CustomFunc(name string, args ...Expr) Expr {
	return Expr{kind: exprFunctionCall, fn: &funcCall{fn: FuncIden{kind: funcCustom, custom: name}, args: args}}
}
