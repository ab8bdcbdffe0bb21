package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/planora/server/internal/api/pagination"
)

func TestWhereBuilderEmpty(t *testing.T) {
	var where whereBuilder
	require.Equal(t, "", where.SQL())
	require.Empty(t, where.args)
}

func TestWhereBuilderCombinesClauses(t *testing.T) {
	var where whereBuilder
	where.Search("gala", "name", "description")
	where.Eq("city", "Toronto")
	active := true
	where.Status(&active)

	require.Equal(t,
		" WHERE (name ILIKE $1 OR description ILIKE $1) AND city = $2 AND status = $3",
		where.SQL())
	require.Equal(t, []any{"%gala%", "Toronto", true}, where.args)
}

func TestWhereBuilderIgnoresBlankSearch(t *testing.T) {
	var where whereBuilder
	where.Search("   ", "name")
	require.Equal(t, "", where.SQL())
}

func TestOrderBy(t *testing.T) {
	params := pagination.Params{Page: 3, Limit: 10, SortBy: "name", SortOrder: pagination.SortAsc}
	got := orderBy(params, map[string]string{"name": "name"})
	require.Equal(t, " ORDER BY name ASC LIMIT 10 OFFSET 20", got)
}

func TestOrderByDefaultsToDescending(t *testing.T) {
	params := pagination.Params{Page: 1, Limit: 25, SortBy: "created_at", SortOrder: pagination.SortDesc}
	got := orderBy(params, map[string]string{"created_at": "created_at"})
	require.Equal(t, " ORDER BY created_at DESC LIMIT 25 OFFSET 0", got)
}

func TestSetBuilder(t *testing.T) {
	var set setBuilder
	set.Set("name", "Gala")
	set.Set("updated_by", int64(7))

	require.Equal(t, " SET name = $1, updated_by = $2, updated_at = now()", set.SQL())
	require.Equal(t, "$3", set.arg(int64(42)))
	require.Equal(t, []any{"Gala", int64(7), int64(42)}, set.args)
}

func TestNullableString(t *testing.T) {
	require.Nil(t, nullableString(""))
	value := nullableString("x")
	require.NotNil(t, value)
	require.Equal(t, "x", *value)
}
