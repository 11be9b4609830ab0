// Package benchmarks measures query rendering performance.
package benchmarks

import (
	"testing"

	quarry "github.com/quarrydb/quarry"
)

// BenchmarkSimpleSelect measures simple SELECT query rendering.
func BenchmarkSimpleSelect(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Select().Column("id").From("users")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkSelectWithColumns measures SELECT with an explicit column list.
func BenchmarkSelectWithColumns(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Select().
		Columns("id", "username", "email", "age").
		From("users")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkSelectWithWhere measures SELECT with a WHERE clause.
func BenchmarkSelectWithWhere(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Select().
		Column("id").
		From("users").
		AndWhere(quarry.Col("active").Eq(true))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkSelectWithMultipleConditions measures SELECT with a nested condition tree.
func BenchmarkSelectWithMultipleConditions(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Select().
		Column("id").
		From("users").
		CondWhere(quarry.CondAll().
			Add(quarry.Col("active").Eq(true)).
			Add(quarry.CondAny().
				Add(quarry.Col("age").Gt(21)).
				Add(quarry.Col("username").Like("a%"))))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkSelectWithJoin measures SELECT with a JOIN.
func BenchmarkSelectWithJoin(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Select().
		Column("u", "username").
		FromRef(quarry.T("users", "u")).
		InnerJoin(quarry.T("posts", "p"),
			quarry.Col("u", "id").Eq(quarry.Col("p", "user_id")))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkSelectWithOrderByLimit measures SELECT with ORDER BY, LIMIT and OFFSET.
func BenchmarkSelectWithOrderByLimit(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Select().
		Column("id").
		From("users").
		OrderBy("created_at", quarry.Desc).
		Limit(10).
		Offset(20)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkSelectWithAggregates measures GROUP BY with aggregate functions.
func BenchmarkSelectWithAggregates(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Select().
		Column("user_id").
		ExprAs(quarry.Sum(quarry.Col("total")), "total_spent").
		ExprAs(quarry.Count(quarry.Col("id")), "order_count").
		From("orders").
		GroupByColumns("user_id")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkInsert measures INSERT query rendering.
func BenchmarkInsert(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Insert().
		Into("users").
		Columns("username", "email", "age").
		ValuesPanic("alice", "alice@example.com", 30)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkInsertOnConflict measures upsert rendering.
func BenchmarkInsertOnConflict(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Insert().
		Into("users").
		Columns("id", "username").
		ValuesPanic(1, "alice").
		OnConflict(quarry.OnConflictColumn("id").UpdateColumn("username")).
		ReturningColumn("id")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkUpdate measures UPDATE query rendering.
func BenchmarkUpdate(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Update().
		Table(quarry.T("users")).
		Value("username", "bob").
		Value("email", "bob@example.com").
		AndWhere(quarry.Col("id").Eq(1))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkDelete measures DELETE query rendering.
func BenchmarkDelete(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Delete().
		FromTable(quarry.T("users")).
		AndWhere(quarry.Col("id").Eq(1))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkCaseExpression measures CASE expression rendering.
func BenchmarkCaseExpression(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Select().
		Column("username").
		ExprAs(quarry.Case().
			When(quarry.Col("age").Lt(18), "young").
			When(quarry.Col("age").Lt(65), "adult").
			Finally("senior").
			Expr(), "age_group").
		From("users")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkWindowFunction measures inline window rendering.
func BenchmarkWindowFunction(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Select().
		Columns("id", "total").
		ExprWindow(quarry.CustomFunc("ROW_NUMBER"),
			quarry.NewWindow().
				PartitionByColumns("user_id").
				OrderBy("total", quarry.Desc)).
		From("orders")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkBetween measures BETWEEN condition rendering.
func BenchmarkBetween(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Select().
		Column("id").
		From("users").
		AndWhere(quarry.Col("age").Between(18, 65))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkSubquery measures sub-query rendering.
func BenchmarkSubquery(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Select().
		Column("id").
		From("users").
		AndWhere(quarry.Col("id").InSubQuery(
			quarry.Select().Column("user_id").From("posts").
				AndWhere(quarry.Col("published").Eq(true))))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkComplexQuery measures a join-group-having-order query.
func BenchmarkComplexQuery(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Select().
		Column("u", "id").
		Column("u", "username").
		ExprAs(quarry.Sum(quarry.Col("o", "total")), "total_spent").
		ExprAs(quarry.Count(quarry.Col("o", "id")), "order_count").
		FromRef(quarry.T("users", "u")).
		InnerJoin(quarry.T("orders", "o"),
			quarry.Col("u", "id").Eq(quarry.Col("o", "user_id"))).
		AndWhere(quarry.Col("u", "active").Eq(true)).
		AndWhere(quarry.Col("o", "status").Eq("paid")).
		GroupBy(quarry.Col("u", "id"), quarry.Col("u", "username")).
		AndHaving(quarry.Sum(quarry.Col("o", "total")).Gt(100)).
		OrderByTableColumn("u", "username", quarry.Asc).
		Limit(10)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkWithCte measures WITH clause rendering.
func BenchmarkWithCte(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	with := quarry.NewWithClause().
		CTE(quarry.NewCTE("active_users").
			Query(quarry.Select().Column("id").From("users").AndWhere(quarry.Col("active").Eq(true))))
	stmt := quarry.Select().With(with).Column("id").From("active_users")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkForUpdate measures row-locking rendering.
func BenchmarkForUpdate(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Select().
		Column("id").
		From("users").
		AndWhere(quarry.Col("id").Eq(1)).
		Lock(quarry.LockUpdate)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkNullsOrdering measures NULLS FIRST/LAST rendering.
func BenchmarkNullsOrdering(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Select().
		Column("id").
		From("users").
		OrderByWithNulls("age", quarry.Asc, quarry.NullsFirst)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkTypeCast measures CAST rendering.
func BenchmarkTypeCast(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	stmt := quarry.Select().
		ExprAs(quarry.Col("age").CastAs("TEXT"), "age_text").
		From("users")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Build(qb)
	}
}

// BenchmarkInjectParameters measures placeholder splicing.
func BenchmarkInjectParameters(b *testing.B) {
	qb := quarry.NewPostgresQueryBuilder()
	sql, values := quarry.Select().
		Column("id").
		From("users").
		AndWhere(quarry.Col("username").Like("a%")).
		AndWhere(quarry.Col("age").In(21, 22, 23)).
		Build(qb)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = quarry.InjectParameters(sql, values, qb)
	}
}

// BenchmarkAudit measures table-access auditing.
func BenchmarkAudit(b *testing.B) {
	stmt := quarry.Select().
		Column("u", "username").
		FromRef(quarry.T("users", "u")).
		InnerJoin(quarry.T("posts", "p"),
			quarry.Col("u", "id").Eq(quarry.Col("p", "user_id")))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = stmt.Audit()
	}
}
