package quarry

// FrameType selects the unit of a window frame.
type FrameType uint8

// Frame types.
const (
	FrameRange FrameType = iota
	FrameRows
)

type frameBoundKind uint8

const (
	frameCurrentRow frameBoundKind = iota
	framePreceding
	frameFollowing
	frameUnboundedPreceding
	frameUnboundedFollowing
)

// FrameBound is one edge of a window frame.
type FrameBound struct {
	kind   frameBoundKind
	offset Value
}

// CurrentRow is the CURRENT ROW frame bound.
func CurrentRow() FrameBound { return FrameBound{kind: frameCurrentRow} }

// Preceding is the `<v> PRECEDING` frame bound.
func Preceding(v uint32) FrameBound {
	return FrameBound{kind: framePreceding, offset: ValueOf(v)}
}

// Following is the `<v> FOLLOWING` frame bound.
func Following(v uint32) FrameBound {
	return FrameBound{kind: frameFollowing, offset: ValueOf(v)}
}

// UnboundedPreceding is the UNBOUNDED PRECEDING frame bound.
func UnboundedPreceding() FrameBound { return FrameBound{kind: frameUnboundedPreceding} }

// UnboundedFollowing is the UNBOUNDED FOLLOWING frame bound.
func UnboundedFollowing() FrameBound { return FrameBound{kind: frameUnboundedFollowing} }

type frameClause struct {
	typ   FrameType
	start FrameBound
	end   *FrameBound
}

// WindowStatement is the body of an OVER ( ... ) clause or a named
// WINDOW definition: partitioning, ordering and an optional frame.
type WindowStatement struct {
	partitionBy []Expr
	orderBy     []OrderExpr
	frame       *frameClause
}

// NewWindow starts an empty window definition.
func NewWindow() *WindowStatement {
	return &WindowStatement{}
}

// PartitionBy appends partitioning expressions.
func (w *WindowStatement) PartitionBy(exprs ...Expr) *WindowStatement {
	w.partitionBy = append(w.partitionBy, exprs...)
	return w
}

// PartitionByColumns appends bare column partitions.
func (w *WindowStatement) PartitionByColumns(cols ...string) *WindowStatement {
	for _, c := range cols {
		w.partitionBy = append(w.partitionBy, Col(c))
	}
	return w
}

// OrderBy appends an ordering on a column.
func (w *WindowStatement) OrderBy(col string, ord Order) *WindowStatement {
	w.orderBy = append(w.orderBy, OrderExpr{expr: Col(col), order: ord})
	return w
}

// OrderByExpr appends an ordering on an expression.
func (w *WindowStatement) OrderByExpr(e Expr, ord Order) *WindowStatement {
	w.orderBy = append(w.orderBy, OrderExpr{expr: e, order: ord})
	return w
}

// Frame sets a single-bound frame: `ROWS|RANGE <bound>`.
func (w *WindowStatement) Frame(t FrameType, start FrameBound) *WindowStatement {
	w.frame = &frameClause{typ: t, start: start}
	return w
}

// FrameBetween sets a two-bound frame: `ROWS|RANGE BETWEEN <a> AND <b>`.
func (w *WindowStatement) FrameBetween(t FrameType, start, end FrameBound) *WindowStatement {
	w.frame = &frameClause{typ: t, start: start, end: &end}
	return w
}

// windowRef attaches a select item to a window, by name or inline.
type windowRef struct {
	name   Name
	inline *WindowStatement
}

// namedWindow is one WINDOW <name> AS ( ... ) declaration.
type namedWindow struct {
	name Name
	stmt WindowStatement
}
