package quarry

import (
	"fmt"
	"strings"
)

// SqlWriter is the output sink a build call renders into. The traversal
// writes keywords and fragments through WriteString and hands bind values
// to PushValue; the sink decides whether a value becomes a placeholder or
// an inline literal.
type SqlWriter interface {
	WriteString(s string)
	Writef(format string, args ...any)
	PushValue(v Value)
	Result() string
}

// sqlBuf accumulates SQL text. A write whose first character is a space
// is collapsed against a trailing space already in the buffer, so
// optional clauses can be emitted with uniform leading spaces.
type sqlBuf struct {
	sb   strings.Builder
	last byte
}

func (b *sqlBuf) WriteString(s string) {
	if s == "" {
		return
	}
	if b.last == ' ' && s[0] == ' ' {
		s = s[1:]
		if s == "" {
			return
		}
	}
	b.sb.WriteString(s)
	b.last = s[len(s)-1]
}

func (b *sqlBuf) Writef(format string, args ...any) {
	b.WriteString(fmt.Sprintf(format, args...))
}

func (b *sqlBuf) Result() string { return b.sb.String() }

// SqlWriterValues collects bind values and writes dialect placeholders in
// their place. The 1-based counter for numbered placeholders lives here,
// so builders stay stateless and each build call starts at $1.
type SqlWriterValues struct {
	sqlBuf
	placeholder string
	numbered    bool
	counter     int
	values      Values
}

// NewSqlWriterValues returns a collecting writer for the given
// placeholder convention.
func NewSqlWriterValues(placeholder string, numbered bool) *SqlWriterValues {
	return &SqlWriterValues{placeholder: placeholder, numbered: numbered}
}

// PushValue appends v to the collected values and writes its placeholder.
func (w *SqlWriterValues) PushValue(v Value) {
	w.counter++
	if w.numbered {
		w.Writef("%s%d", w.placeholder, w.counter)
	} else {
		w.WriteString(w.placeholder)
	}
	w.values = append(w.values, v)
}

// IntoParts returns the rendered SQL and the collected bind values.
func (w *SqlWriterValues) IntoParts() (string, Values) {
	return w.Result(), w.values
}

// SqlWriterString inlines every value as a dialect literal. Debug path:
// the output is readable SQL with no binds.
type SqlWriterString struct {
	sqlBuf
	qb QueryBuilder
}

// NewSqlWriterString returns an inlining writer for the given dialect.
func NewSqlWriterString(qb QueryBuilder) *SqlWriterString {
	return &SqlWriterString{qb: qb}
}

// PushValue writes v as an inline literal.
func (w *SqlWriterString) PushValue(v Value) {
	w.WriteString(w.qb.ValueToString(v))
}
