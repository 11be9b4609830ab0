package quarry

// ConditionExpression is either a Condition tree or a bare Expr; both
// can appear under WHERE, HAVING and JOIN ON, and both nest inside a
// Condition.
type ConditionExpression interface {
	isConditionExpression()
}

type condType uint8

const (
	condAll condType = iota
	condAny
)

// Condition is a tree of conjunctions and disjunctions. An empty all-of
// is TRUE, an empty any-of is FALSE, and Not flips the whole subtree.
// Conditions are values; methods return modified copies.
type Condition struct {
	typ      condType
	negated  bool
	children []ConditionExpression
}

func (Condition) isConditionExpression() {}

// CondAll starts an AND-joined condition.
func CondAll() Condition {
	return Condition{typ: condAll}
}

// CondAny starts an OR-joined condition.
func CondAny() Condition {
	return Condition{typ: condAny}
}

// Add appends a child condition or expression.
func (c Condition) Add(x ConditionExpression) Condition {
	children := make([]ConditionExpression, len(c.children), len(c.children)+1)
	copy(children, c.children)
	c.children = append(children, x)
	return c
}

// AddIf appends the child only when ok is true.
func (c Condition) AddIf(ok bool, x ConditionExpression) Condition {
	if !ok {
		return c
	}
	return c.Add(x)
}

// Not toggles negation of the whole condition.
func (c Condition) Not() Condition {
	c.negated = !c.negated
	return c
}

// IsEmpty reports whether the condition has no children.
func (c Condition) IsEmpty() bool { return len(c.children) == 0 }

// holderContents distinguishes the three states of a ConditionHolder.
type holderContents uint8

const (
	holderEmpty holderContents = iota
	holderChain
	holderCondition
)

// ConditionHolder backs a WHERE or HAVING clause. It is empty, a legacy
// flat chain of AND/OR-tagged expressions, or a Condition tree; the two
// non-empty forms render identically under left-to-right folding.
type ConditionHolder struct {
	contents holderContents
	chain    []logicalChainOper
	cond     Condition
}

// IsEmpty reports whether the holder renders nothing. An un-negated
// childless condition tree is vacuous and renders nothing; a negated one
// still renders NOT TRUE / NOT FALSE.
func (h *ConditionHolder) IsEmpty() bool {
	switch h.contents {
	case holderChain:
		return len(h.chain) == 0
	case holderCondition:
		return h.cond.IsEmpty() && !h.cond.negated
	}
	return true
}

func (h *ConditionHolder) addChain(e Expr, or bool) {
	switch h.contents {
	case holderEmpty, holderChain:
		h.contents = holderChain
		h.chain = append(h.chain, logicalChainOper{expr: e, or: or})
	case holderCondition:
		// Once a tree is installed, fold chained additions into it.
		if or {
			h.cond = CondAny().Add(h.cond).Add(e)
		} else {
			h.addCondition(CondAll().Add(e))
		}
	}
}

func (h *ConditionHolder) addCondition(c Condition) {
	switch h.contents {
	case holderEmpty:
		h.contents = holderCondition
		h.cond = c
	case holderChain:
		merged := CondAll()
		for _, link := range h.chain {
			merged = merged.Add(link.expr)
		}
		h.chain = nil
		h.contents = holderCondition
		h.cond = merged.Add(c)
	case holderCondition:
		if h.cond.typ == condAll && !h.cond.negated {
			h.cond = h.cond.Add(c)
		} else {
			h.cond = CondAll().Add(h.cond).Add(c)
		}
	}
}

func (h *ConditionHolder) addConditionExpression(x ConditionExpression) {
	switch t := x.(type) {
	case Condition:
		h.addCondition(t)
	case Expr:
		h.addChain(t, false)
	}
}
