package quarry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	quarry "github.com/quarrydb/quarry"
)

func TestInjectParametersMatchesToString(t *testing.T) {
	stmt := quarry.Select().
		Column("id").
		From("glyph").
		AndWhere(quarry.Col("image").Like("A%")).
		AndWhere(quarry.Col("id").In(3, 4, 5)).
		Limit(7)

	for _, qb := range []quarry.QueryBuilder{mysql(), postgres(), sqlite()} {
		sql, values := stmt.Build(qb)
		require.Equal(t, stmt.ToString(qb), quarry.InjectParameters(sql, values, qb), qb.Dialect())
	}
}

func TestInjectParametersLeavesQuotedMarkersAlone(t *testing.T) {
	got := quarry.InjectParameters("SELECT 'a ?' FROM t WHERE x = ?",
		quarry.Values{quarry.ValueOf(1)}, mysql())
	require.Equal(t, "SELECT 'a ?' FROM t WHERE x = 1", got)
}

func TestInjectParametersNumbered(t *testing.T) {
	got := quarry.InjectParameters(`SELECT $2, $1`,
		quarry.Values{quarry.ValueOf("first"), quarry.ValueOf(2)}, postgres())
	require.Equal(t, `SELECT 2, 'first'`, got)
}

func TestInjectParametersDoubledMarker(t *testing.T) {
	got := quarry.InjectParameters("SELECT x ?? y, ?",
		quarry.Values{quarry.ValueOf(9)}, mysql())
	require.Equal(t, "SELECT x ? y, 9", got)
}
