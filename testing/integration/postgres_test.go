//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	quarry "github.com/quarrydb/quarry"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	container *postgres.PostgresContainer
	conn      *pgx.Conn
	connStr   string
}

// Exec executes a SQL statement.
func (pc *PostgresContainer) Exec(ctx context.Context, t *testing.T, sql string, args ...any) {
	t.Helper()
	_, err := pc.conn.Exec(ctx, sql, args...)
	if err != nil {
		t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, sql)
	}
}

// QueryRow executes a query and scans a single row.
func (pc *PostgresContainer) QueryRow(ctx context.Context, t *testing.T, sql string, args ...any) pgx.Row {
	t.Helper()
	return pc.conn.QueryRow(ctx, sql, args...)
}

// setupPostgresSchema creates and seeds the test tables.
func setupPostgresSchema(ctx context.Context, t *testing.T, pc *PostgresContainer) {
	t.Helper()

	pc.Exec(ctx, t, `DROP TABLE IF EXISTS glyph`)
	pc.Exec(ctx, t, `DROP TABLE IF EXISTS font`)
	pc.Exec(ctx, t, `
		CREATE TABLE font (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE
		)
	`)
	pc.Exec(ctx, t, `
		CREATE TABLE glyph (
			id BIGSERIAL PRIMARY KEY,
			font_id BIGINT REFERENCES font(id) ON DELETE CASCADE,
			image VARCHAR(255) NOT NULL,
			aspect DOUBLE PRECISION NOT NULL DEFAULT 0
		)
	`)

	pc.Exec(ctx, t, `INSERT INTO font (id, name) VALUES (1, 'serif'), (2, 'mono')`)
	pc.Exec(ctx, t, `
		INSERT INTO glyph (font_id, image, aspect) VALUES
		(1, 'A', 1.5), (1, 'B', 1.2), (2, 'A', 0.8)
	`)
}

func TestPostgresSelectWithPlaceholders(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pc := getPostgresContainer(t)
	setupPostgresSchema(ctx, t, pc)
	qb := quarry.NewPostgresQueryBuilder()

	sql, values := quarry.Select().
		Column("glyph", "image").
		From("glyph").
		InnerJoin(quarry.T("font"), quarry.Col("glyph", "font_id").Eq(quarry.Col("font", "id"))).
		AndWhere(quarry.Col("font", "name").Eq("serif")).
		AndWhere(quarry.Col("aspect").Gt(1.0)).
		OrderBy("image", quarry.Asc).
		Build(qb)

	rows, err := pc.conn.Query(ctx, sql, args(values)...)
	if err != nil {
		t.Fatalf("Query failed: %v\nSQL: %s", err, sql)
	}
	defer rows.Close()

	var images []string
	for rows.Next() {
		var img string
		if err := rows.Scan(&img); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		images = append(images, img)
	}
	if len(images) != 2 || images[0] != "A" || images[1] != "B" {
		t.Errorf("Unexpected result: %v", images)
	}
}

func TestPostgresInsertOnConflictReturning(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pc := getPostgresContainer(t)
	setupPostgresSchema(ctx, t, pc)
	qb := quarry.NewPostgresQueryBuilder()

	stmt := quarry.Insert().
		Into("font").
		Columns("id", "name").
		ValuesPanic(1, "sans").
		OnConflict(quarry.OnConflictColumn("id").UpdateColumn("name")).
		ReturningColumn("name")

	sql, values := stmt.Build(qb)

	var name string
	if err := pc.QueryRow(ctx, t, sql, args(values)...).Scan(&name); err != nil {
		t.Fatalf("Upsert failed: %v\nSQL: %s", err, sql)
	}
	if name != "sans" {
		t.Errorf("Expected updated name 'sans', got %q", name)
	}
}

func TestPostgresCteQuery(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pc := getPostgresContainer(t)
	setupPostgresSchema(ctx, t, pc)
	qb := quarry.NewPostgresQueryBuilder()

	with := quarry.NewWithClause().
		CTE(quarry.NewCTE("wide").
			Query(quarry.Select().Column("id").From("glyph").AndWhere(quarry.Col("aspect").Gt(1.0))))

	sql, values := quarry.Select().
		With(with).
		Expr(quarry.Count(quarry.Col("id"))).
		From("wide").
		Build(qb)

	var n int64
	if err := pc.QueryRow(ctx, t, sql, args(values)...).Scan(&n); err != nil {
		t.Fatalf("CTE query failed: %v\nSQL: %s", err, sql)
	}
	if n != 2 {
		t.Errorf("Expected 2 wide glyphs, got %d", n)
	}
}

func TestPostgresInjectedSQLIsExecutable(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pc := getPostgresContainer(t)
	setupPostgresSchema(ctx, t, pc)
	qb := quarry.NewPostgresQueryBuilder()

	// ToString inlines every value; the result must run as-is.
	sql := quarry.Select().
		Expr(quarry.Count(quarry.Col("id"))).
		From("glyph").
		AndWhere(quarry.Col("image").Like("A%")).
		AndWhere(quarry.Col("font_id").In(1, 2)).
		ToString(qb)

	var n int64
	if err := pc.QueryRow(ctx, t, sql).Scan(&n); err != nil {
		t.Fatalf("Inlined query failed: %v\nSQL: %s", err, sql)
	}
	if n != 2 {
		t.Errorf("Expected 2 rows, got %d", n)
	}
}
