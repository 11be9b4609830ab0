package quarry

// binOper enumerates the built-in binary operators.
type binOper uint8

const (
	opNone binOper = iota
	opAnd
	opOr
	opLike
	opNotLike
	opIs
	opIsNot
	opIn
	opNotIn
	opBetween
	opNotBetween
	opEq
	opNe
	opLt
	opGt
	opLte
	opGte
	opAdd
	opSub
	opMul
	opDiv
	opMod
	opLShift
	opRShift
	opAs
	opEscape
	opCustom
	// Postgres extensions.
	opConcatenate
	opILike
	opNotILike
	opMatches
	opContains
	opContained
	opSimilarity
	opWordSimilarity
	// SQLite extensions.
	opGlob
	opMatch
	opGetJsonField
	opCastJsonField
)

// BinOp is a binary operator. The built-in set is closed; CustomBinOp
// admits arbitrary operator spellings.
type BinOp struct {
	op     binOper
	custom string
}

// Built-in binary operators.
var (
	OpAnd        = BinOp{op: opAnd}
	OpOr         = BinOp{op: opOr}
	OpLike       = BinOp{op: opLike}
	OpNotLike    = BinOp{op: opNotLike}
	OpIs         = BinOp{op: opIs}
	OpIsNot      = BinOp{op: opIsNot}
	OpIn         = BinOp{op: opIn}
	OpNotIn      = BinOp{op: opNotIn}
	OpBetween    = BinOp{op: opBetween}
	OpNotBetween = BinOp{op: opNotBetween}
	OpEq         = BinOp{op: opEq}
	OpNe         = BinOp{op: opNe}
	OpLt         = BinOp{op: opLt}
	OpGt         = BinOp{op: opGt}
	OpLte        = BinOp{op: opLte}
	OpGte        = BinOp{op: opGte}
	OpAdd        = BinOp{op: opAdd}
	OpSub        = BinOp{op: opSub}
	OpMul        = BinOp{op: opMul}
	OpDiv        = BinOp{op: opDiv}
	OpMod        = BinOp{op: opMod}
	OpLShift     = BinOp{op: opLShift}
	OpRShift     = BinOp{op: opRShift}
	OpAs         = BinOp{op: opAs}
	OpEscape     = BinOp{op: opEscape}
)

// Postgres-only binary operators.
var (
	OpConcatenate    = BinOp{op: opConcatenate}
	OpILike          = BinOp{op: opILike}
	OpNotILike       = BinOp{op: opNotILike}
	OpMatches        = BinOp{op: opMatches}
	OpContains       = BinOp{op: opContains}
	OpContained      = BinOp{op: opContained}
	OpSimilarity     = BinOp{op: opSimilarity}
	OpWordSimilarity = BinOp{op: opWordSimilarity}
)

// SQLite-only binary operators.
var (
	OpGlob          = BinOp{op: opGlob}
	OpMatch         = BinOp{op: opMatch}
	OpGetJsonField  = BinOp{op: opGetJsonField}
	OpCastJsonField = BinOp{op: opCastJsonField}
)

// CustomBinOp builds an operator with an arbitrary spelling.
func CustomBinOp(spelling string) BinOp {
	return BinOp{op: opCustom, custom: spelling}
}

var binOpSpellings = map[binOper]string{
	opAnd:            "AND",
	opOr:             "OR",
	opLike:           "LIKE",
	opNotLike:        "NOT LIKE",
	opIs:             "IS",
	opIsNot:          "IS NOT",
	opIn:             "IN",
	opNotIn:          "NOT IN",
	opBetween:        "BETWEEN",
	opNotBetween:     "NOT BETWEEN",
	opEq:             "=",
	opNe:             "<>",
	opLt:             "<",
	opGt:             ">",
	opLte:            "<=",
	opGte:            ">=",
	opAdd:            "+",
	opSub:            "-",
	opMul:            "*",
	opDiv:            "/",
	opMod:            "%",
	opLShift:         "<<",
	opRShift:         ">>",
	opAs:             "AS",
	opEscape:         "ESCAPE",
	opConcatenate:    "||",
	opILike:          "ILIKE",
	opNotILike:       "NOT ILIKE",
	opMatches:        "@@",
	opContains:       "@>",
	opContained:      "<@",
	opSimilarity:     "%",
	opWordSimilarity: "<%",
	opGlob:           "GLOB",
	opMatch:          "MATCH",
	opGetJsonField:   "->",
	opCastJsonField:  "->>",
}

// Spelling returns the operator's SQL spelling.
func (o BinOp) Spelling() string {
	if o.op == opCustom {
		return o.custom
	}
	return binOpSpellings[o.op]
}

// opClass partitions binary operators into precedence classes, higher
// classes binding tighter. Operators in the same class never drop
// parentheses against each other.
type opClass uint8

const (
	classOther opClass = iota
	classLogical
	classBetween
	classLike
	classIn
	classIs
	classComparison
	classArith
)

func (o BinOp) class() opClass {
	switch o.op {
	case opAdd, opSub, opMul, opDiv, opMod, opLShift, opRShift:
		return classArith
	case opEq, opNe, opLt, opGt, opLte, opGte:
		return classComparison
	case opIs, opIsNot:
		return classIs
	case opIn, opNotIn:
		return classIn
	case opLike, opNotLike, opILike, opNotILike, opGlob, opMatch:
		return classLike
	case opBetween, opNotBetween:
		return classBetween
	case opAnd, opOr:
		return classLogical
	default:
		return classOther
	}
}

// isLeftAssoc reports whether same-operator left nesting may drop its
// parentheses.
func (o BinOp) isLeftAssoc() bool {
	switch o.op {
	case opAnd, opOr, opAdd, opSub, opMul, opMod:
		return true
	}
	return false
}

// isAssociative reports whether same-operator right nesting may drop its
// parentheses; regrouping these never changes the result.
func (o BinOp) isAssociative() bool {
	switch o.op {
	case opAnd, opOr, opAdd, opMul:
		return true
	}
	return false
}

// UnOp is a unary operator.
type UnOp uint8

// Unary operators.
const (
	UnOpNot UnOp = iota
)

// Spelling returns the operator's SQL spelling.
func (o UnOp) Spelling() string { return "NOT" }

// SubQueryOp prefixes a parenthesised sub-select.
type SubQueryOp uint8

// Sub-query operators.
const (
	SubQueryExists SubQueryOp = iota
	SubQueryNotExists
	SubQueryAny
	SubQuerySome
	SubQueryAll
)

// Spelling returns the operator's SQL spelling.
func (o SubQueryOp) Spelling() string {
	switch o {
	case SubQueryExists:
		return "EXISTS"
	case SubQueryNotExists:
		return "NOT EXISTS"
	case SubQueryAny:
		return "ANY"
	case SubQuerySome:
		return "SOME"
	case SubQueryAll:
		return "ALL"
	}
	return ""
}

// logicalChainOper tags one entry of the legacy flat WHERE chain.
type logicalChainOper struct {
	expr Expr
	or   bool
}
