package quarry

import "strings"

// PostgresQueryBuilder renders statements in PostgreSQL syntax.
type PostgresQueryBuilder struct {
	CommonQueryBuilder
}

// NewPostgresQueryBuilder returns a Postgres builder.
func NewPostgresQueryBuilder() *PostgresQueryBuilder {
	b := &PostgresQueryBuilder{}
	b.self = b
	return b
}

// Dialect returns "Postgres".
func (b *PostgresQueryBuilder) Dialect() string { return "Postgres" }

// Capabilities returns the Postgres feature surface.
func (b *PostgresQueryBuilder) Capabilities() Capabilities {
	return Capabilities{
		Returning:            true,
		MaterializedCte:      true,
		RecursiveSearchCycle: true,
		RowLocking:           true,
		ParenthesizedUnion:   true,
		AnySubQueryOp:        true,
		FullOuterJoin:        true,
		ArrayLiterals:        true,
	}
}

// Placeholder returns numbered $N placeholders.
func (b *PostgresQueryBuilder) Placeholder() (string, bool) { return "$", true }

// EscapeString doubles single quotes and backslashes.
func (b *PostgresQueryBuilder) EscapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", "''")
}

// QuotedString renders a string literal, switching to the E'' form when
// escaping produced backslashes; plain literals treat them as ordinary
// characters.
func (b *PostgresQueryBuilder) QuotedString(s string) string {
	esc := b.self.EscapeString(s)
	if strings.Contains(esc, `\`) {
		return "E'" + esc + "'"
	}
	return "'" + esc + "'"
}

// FunctionName spells the null-coalescing function COALESCE; Postgres
// has no two-argument IFNULL.
func (b *PostgresQueryBuilder) FunctionName(f FuncIden) string {
	if f.kind == funcIfNull {
		return "COALESCE"
	}
	return b.CommonQueryBuilder.FunctionName(f)
}

// PrepareAsEnum renders an explicit cast to the enum type.
func (b *PostgresQueryBuilder) PrepareAsEnum(typeName TableName, inner Expr, w SqlWriter) {
	w.WriteString("CAST(")
	b.self.PrepareExpr(inner, w)
	w.WriteString(" AS ")
	if typeName.Schema != "" {
		b.self.PrepareIden(Name(typeName.Schema), w)
		w.WriteString(".")
	}
	b.self.PrepareIden(Name(typeName.Name), w)
	w.WriteString(")")
}
