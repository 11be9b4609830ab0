package quarry

import (
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PrepareExpr renders one expression node.
func (c *CommonQueryBuilder) PrepareExpr(e Expr, w SqlWriter) {
	switch e.kind {
	case exprColumn:
		c.self.PrepareColumnRef(e.col, w)
	case exprValue:
		c.self.PrepareValue(e.val, w)
	case exprConstant:
		w.WriteString(c.self.ValueToString(e.val))
	case exprTuple:
		w.WriteString("(")
		for i, x := range e.list {
			if i > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareExpr(x, w)
		}
		w.WriteString(")")
	case exprValues:
		w.WriteString("(")
		for i, v := range e.vals {
			if i > 0 {
				w.WriteString(", ")
			}
			c.self.PrepareValue(v, w)
		}
		w.WriteString(")")
	case exprUnary:
		c.prepareUnaryExpr(e, w)
	case exprBinary:
		c.prepareBinaryExpr(e, w)
	case exprFunctionCall:
		c.prepareFunctionCall(e.fn, w)
	case exprSubQuery:
		c.prepareSubQueryExpr(e, w)
	case exprCase:
		c.prepareCaseStatement(e.cases, w)
	case exprKeyword:
		w.WriteString(e.keyword.Spelling())
	case exprCustom:
		w.WriteString(e.custom)
	case exprCustomWithExpr:
		c.prepareCustomWithExpr(e, w)
	case exprAsEnum:
		c.self.PrepareAsEnum(e.typeName, *e.left, w)
	case exprTypeName:
		if e.typeName.Schema != "" {
			c.self.PrepareIden(Name(e.typeName.Schema), w)
			w.WriteString(".")
		}
		c.self.PrepareIden(Name(e.typeName.Name), w)
	}
}

// exprAtomic reports whether an expression never needs parentheses as an
// operand: everything that is not an operator application.
func exprAtomic(e Expr) bool {
	switch e.kind {
	case exprBinary, exprUnary:
		return false
	}
	return true
}

// wellKnownGreater reports whether the inner expression is known to bind
// tighter than the outer operator, so its parentheses can be dropped.
// Only cross-class relationships that hold in every target dialect are
// admitted; same-class nesting keeps its parentheses unless associativity
// says otherwise.
func wellKnownGreater(inner Expr, outer BinOp) bool {
	if exprAtomic(inner) {
		return true
	}
	if inner.kind != exprBinary {
		return false
	}
	ic := inner.op.class()
	oc := outer.class()
	if ic == classArith {
		switch oc {
		case classComparison, classBetween, classIn, classLike, classLogical:
			return true
		}
	}
	switch ic {
	case classComparison, classIn, classLike, classIs:
		return oc == classLogical
	}
	return false
}

func (c *CommonQueryBuilder) prepareBinaryExpr(e Expr, w SqlWriter) {
	left, right, op := *e.left, *e.right, e.op

	// IN over a literal value or expression list; an empty list
	// degenerates to a constant predicate so the statement stays valid.
	if op == OpIn || op == OpNotIn {
		empty := (right.kind == exprValues && len(right.vals) == 0) ||
			(right.kind == exprTuple && len(right.list) == 0)
		if empty {
			if op == OpIn {
				w.WriteString("1 = 2")
			} else {
				w.WriteString("1 = 1")
			}
			return
		}
	}

	c.prepareOperand(left, c.dropLeft(left, op), w)
	sp := op.Spelling()
	w.WriteString(" " + sp + " ")
	c.prepareOperand(right, c.dropRight(right, op), w)
}

func (c *CommonQueryBuilder) dropLeft(left Expr, op BinOp) bool {
	if wellKnownGreater(left, op) {
		return true
	}
	return left.kind == exprBinary && left.op == op && op.isLeftAssoc()
}

func (c *CommonQueryBuilder) dropRight(right Expr, op BinOp) bool {
	if wellKnownGreater(right, op) {
		return true
	}
	if right.kind == exprBinary {
		if right.op == op && op.isAssociative() {
			return true
		}
		// Structural right operands that are part of the outer
		// operator's own grammar.
		switch op.op {
		case opBetween, opNotBetween:
			return right.op == OpAnd
		case opLike, opNotLike, opILike, opNotILike:
			return right.op == OpEscape
		}
	}
	return false
}

func (c *CommonQueryBuilder) prepareOperand(e Expr, drop bool, w SqlWriter) {
	if drop {
		c.self.PrepareExpr(e, w)
		return
	}
	w.WriteString("(")
	c.self.PrepareExpr(e, w)
	w.WriteString(")")
}

func (c *CommonQueryBuilder) prepareUnaryExpr(e Expr, w SqlWriter) {
	w.WriteString(e.un.Spelling() + " ")
	operand := *e.left
	drop := exprAtomic(operand)
	if !drop && operand.kind == exprBinary {
		switch operand.op.class() {
		case classArith, classComparison, classIs, classIn, classLike, classBetween:
			drop = true
		}
	}
	c.prepareOperand(operand, drop, w)
}

func (c *CommonQueryBuilder) prepareFunctionCall(fn *funcCall, w SqlWriter) {
	w.WriteString(c.self.FunctionName(fn.fn) + "(")
	if fn.distinct {
		w.WriteString("DISTINCT ")
	}
	for i, a := range fn.args {
		if i > 0 {
			w.WriteString(", ")
		}
		c.self.PrepareExpr(a, w)
	}
	w.WriteString(")")
}

func (c *CommonQueryBuilder) prepareSubQueryExpr(e Expr, w SqlWriter) {
	if e.subOp != nil {
		op := *e.subOp
		switch op {
		case SubQueryAny, SubQuerySome, SubQueryAll:
			if !c.self.Capabilities().AnySubQueryOp {
				panic(c.unsupported(op.Spelling() + " sub-queries"))
			}
		}
		w.WriteString(op.Spelling())
	}
	w.WriteString("(")
	c.self.PrepareQueryStatement(e.sub, w)
	w.WriteString(")")
}

func (c *CommonQueryBuilder) prepareCaseStatement(cs *CaseStatement, w SqlWriter) {
	w.WriteString("(CASE")
	for _, wh := range cs.whens {
		w.WriteString(" WHEN (")
		c.self.PrepareConditionWhere(wh.cond, w)
		w.WriteString(") THEN ")
		c.self.PrepareExpr(wh.then, w)
	}
	if cs.els != nil {
		w.WriteString(" ELSE ")
		c.self.PrepareExpr(*cs.els, w)
	}
	w.WriteString(" END)")
}

// prepareCustomWithExpr substitutes the template's placeholder markers
// with its attached expressions. The template is tokenised so markers
// inside quoted runs survive, and a doubled marker escapes to a literal
// one.
func (c *CommonQueryBuilder) prepareCustomWithExpr(e Expr, w SqlWriter) {
	ph, numbered := c.self.Placeholder()
	tokens := Tokenize(e.custom)
	next := 0
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if t.Kind != TokenPunctuation || t.Text != ph {
			w.WriteString(t.Text)
			continue
		}
		if i+1 < len(tokens) && tokens[i+1].Kind == TokenPunctuation && tokens[i+1].Text == ph {
			w.WriteString(ph)
			i++
			continue
		}
		if numbered {
			if i+1 < len(tokens) && tokens[i+1].Kind == TokenUnquoted && allDigits(tokens[i+1].Text) {
				n, _ := strconv.Atoi(tokens[i+1].Text)
				if n >= 1 && n <= len(e.list) {
					c.self.PrepareExpr(e.list[n-1], w)
					i++
					continue
				}
			}
			w.WriteString(t.Text)
			continue
		}
		if next < len(e.list) {
			c.self.PrepareExpr(e.list[next], w)
			next++
		} else {
			w.WriteString(t.Text)
		}
	}
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// PrepareCondition renders a WHERE/HAVING/ON clause with its keyword, or
// nothing when the holder is empty.
func (c *CommonQueryBuilder) PrepareCondition(h *ConditionHolder, keyword string, w SqlWriter) {
	if h.IsEmpty() {
		return
	}
	w.WriteString(" " + keyword + " ")
	if h.contents == holderChain {
		for i, link := range h.chain {
			if i > 0 {
				if link.or {
					w.WriteString(" OR ")
				} else {
					w.WriteString(" AND ")
				}
			}
			// A chained comparison whose right side is itself binary
			// keeps parentheses so the flat chain reads unambiguously.
			paren := len(h.chain) > 1 &&
				link.expr.kind == exprBinary && link.expr.right.kind == exprBinary
			c.prepareOperand(link.expr, !paren, w)
		}
		return
	}
	c.self.PrepareConditionWhere(h.cond, w)
}

// PrepareConditionWhere renders a condition tree by lowering it to an
// expression, so the precedence engine decides all parenthesisation.
func (c *CommonQueryBuilder) PrepareConditionWhere(cond Condition, w SqlWriter) {
	c.self.PrepareExpr(conditionToExpr(cond), w)
}

// conditionToExpr lowers a condition tree into an expression: empty
// all-of is TRUE, empty any-of is FALSE, children fold left under the
// tree's connective, and negation wraps the result in NOT.
func conditionToExpr(cond Condition) Expr {
	op := OpAnd
	if cond.typ == condAny {
		op = OpOr
	}
	var out Expr
	switch len(cond.children) {
	case 0:
		if cond.typ == condAll {
			out = Cust("TRUE")
		} else {
			out = Cust("FALSE")
		}
	default:
		out = childToExpr(cond.children[0])
		for _, ch := range cond.children[1:] {
			out = out.Binary(op, childToExpr(ch))
		}
	}
	if cond.negated {
		out = Not(out)
	}
	return out
}

func childToExpr(x ConditionExpression) Expr {
	switch t := x.(type) {
	case Expr:
		return t
	case Condition:
		return conditionToExpr(t)
	}
	panic("quarry: unknown condition child")
}

// EscapeString doubles single quotes; the ANSI escape shared by Postgres
// and SQLite. MySQL overrides with backslash escapes.
func (c *CommonQueryBuilder) EscapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// QuotedString renders a complete string literal.
func (c *CommonQueryBuilder) QuotedString(s string) string {
	return "'" + c.self.EscapeString(s) + "'"
}

// FunctionName returns the shared spelling of a built-in function.
// Dialects override the handful that diverge.
func (c *CommonQueryBuilder) FunctionName(f FuncIden) string {
	switch f.kind {
	case funcMax:
		return "MAX"
	case funcMin:
		return "MIN"
	case funcSum:
		return "SUM"
	case funcAvg:
		return "AVG"
	case funcAbs:
		return "ABS"
	case funcCount:
		return "COUNT"
	case funcIfNull:
		return "IFNULL"
	case funcGreatest:
		return "GREATEST"
	case funcLeast:
		return "LEAST"
	case funcCharLength:
		return "CHAR_LENGTH"
	case funcCast:
		return "CAST"
	case funcLower:
		return "LOWER"
	case funcUpper:
		return "UPPER"
	case funcBitAnd:
		return "BIT_AND"
	case funcBitOr:
		return "BIT_OR"
	case funcRandom:
		return "RANDOM"
	case funcRound:
		return "ROUND"
	case funcMd5:
		return "MD5"
	case funcCoalesce:
		return "COALESCE"
	}
	return f.custom
}

// ValueToString renders a value as an inline SQL literal.
func (c *CommonQueryBuilder) ValueToString(v Value) string {
	if v.IsNull() {
		return "NULL"
	}
	switch v.typ {
	case TypeBool:
		if v.v.(bool) {
			return "TRUE"
		}
		return "FALSE"
	case TypeTinyInt:
		return strconv.FormatInt(int64(v.v.(int8)), 10)
	case TypeSmallInt:
		return strconv.FormatInt(int64(v.v.(int16)), 10)
	case TypeInt:
		return strconv.FormatInt(int64(v.v.(int32)), 10)
	case TypeBigInt:
		return strconv.FormatInt(v.v.(int64), 10)
	case TypeTinyUnsigned:
		return strconv.FormatUint(uint64(v.v.(uint8)), 10)
	case TypeSmallUnsigned:
		return strconv.FormatUint(uint64(v.v.(uint16)), 10)
	case TypeUnsigned:
		return strconv.FormatUint(uint64(v.v.(uint32)), 10)
	case TypeBigUnsigned:
		return strconv.FormatUint(v.v.(uint64), 10)
	case TypeFloat:
		return strconv.FormatFloat(float64(v.v.(float32)), 'f', -1, 32)
	case TypeDouble:
		return strconv.FormatFloat(v.v.(float64), 'f', -1, 64)
	case TypeString:
		return c.self.QuotedString(v.v.(string))
	case TypeChar:
		return c.self.QuotedString(string(v.v.(rune)))
	case TypeBytes:
		return "x'" + strings.ToUpper(hex.EncodeToString(v.v.([]byte))) + "'"
	case TypeJson:
		return c.self.QuotedString(string(v.v.(json.RawMessage)))
	case TypeUuid:
		return "'" + v.v.(uuid.UUID).String() + "'"
	case TypeDecimal:
		return v.v.(decimal.Decimal).String()
	case TypeDate:
		return "'" + v.v.(time.Time).Format("2006-01-02") + "'"
	case TypeTime:
		return "'" + v.v.(time.Time).Format("15:04:05.000000") + "'"
	case TypeDateTime:
		return "'" + v.v.(time.Time).Format("2006-01-02 15:04:05.000000") + "'"
	case TypeDateTimeTz:
		return "'" + v.v.(time.Time).Format("2006-01-02 15:04:05.000000 -07:00") + "'"
	case TypeEnum:
		return c.self.QuotedString(v.v.(string))
	case TypeArray:
		return c.arrayToString(v)
	}
	panic("quarry: unrenderable value")
}

func (c *CommonQueryBuilder) arrayToString(v Value) string {
	if !c.self.Capabilities().ArrayLiterals {
		panic(c.unsupported("array literals"))
	}
	items := v.v.([]Value)
	if len(items) == 0 {
		return "'{}'"
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, c.self.ValueToString(it))
	}
	return "ARRAY [" + strings.Join(parts, ",") + "]"
}
