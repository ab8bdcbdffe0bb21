package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

var sortable = []string{"created_at", "name", "price"}

func TestParseDefaults(t *testing.T) {
	params, err := Parse(url.Values{}, sortable)
	require.NoError(t, err)
	require.Equal(t, 1, params.Page)
	require.Equal(t, 10, params.Limit)
	require.Equal(t, "created_at", params.SortBy)
	require.Equal(t, "desc", params.SortOrder)
	require.Nil(t, params.Status)
	require.Equal(t, 0, params.Offset())
}

func TestParseExplicitValues(t *testing.T) {
	values := url.Values{
		"page":      {"3"},
		"limit":     {"25"},
		"sortBy":    {"price"},
		"sortOrder": {"ASC"},
		"status":    {"true"},
	}
	params, err := Parse(values, sortable)
	require.NoError(t, err)
	require.Equal(t, 3, params.Page)
	require.Equal(t, 25, params.Limit)
	require.Equal(t, "price", params.SortBy)
	require.Equal(t, "asc", params.SortOrder)
	require.NotNil(t, params.Status)
	require.True(t, *params.Status)
	require.Equal(t, 50, params.Offset())
}

func TestParseRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		values url.Values
		field  string
	}{
		{"page not a number", url.Values{"page": {"abc"}}, "page"},
		{"page zero", url.Values{"page": {"0"}}, "page"},
		{"page negative", url.Values{"page": {"-1"}}, "page"},
		{"limit not a number", url.Values{"limit": {"ten"}}, "limit"},
		{"limit zero", url.Values{"limit": {"0"}}, "limit"},
		{"limit too large", url.Values{"limit": {"101"}}, "limit"},
		{"sortBy not whitelisted", url.Values{"sortBy": {"password"}}, "sortBy"},
		{"sortOrder invalid", url.Values{"sortOrder": {"sideways"}}, "sortOrder"},
		{"status not boolean", url.Values{"status": {"active"}}, "status"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.values, sortable)
			require.Error(t, err)
			var paramErr ParamError
			require.ErrorAs(t, err, &paramErr)
			require.Equal(t, tc.field, paramErr.Field)
		})
	}
}

func TestParseStatusTriState(t *testing.T) {
	status, err := ParseStatus("")
	require.NoError(t, err)
	require.Nil(t, status)

	status, err = ParseStatus("true")
	require.NoError(t, err)
	require.True(t, *status)

	// "false" means soft-deleted only, never "active only".
	status, err = ParseStatus("false")
	require.NoError(t, err)
	require.False(t, *status)
}

func TestBuildPage(t *testing.T) {
	page := BuildPage(Params{Page: 2, Limit: 10}, 35)
	require.Equal(t, 2, page.CurrentPage)
	require.Equal(t, 4, page.TotalPages)
	require.Equal(t, 35, page.TotalItems)
	require.Equal(t, 10, page.ItemsPerPage)
	require.True(t, page.HasNextPage)
	require.True(t, page.HasPrevPage)
}

func TestBuildPageEdges(t *testing.T) {
	// Empty collection: zero pages, no navigation.
	page := BuildPage(Params{Page: 1, Limit: 10}, 0)
	require.Equal(t, 0, page.TotalPages)
	require.False(t, page.HasNextPage)
	require.False(t, page.HasPrevPage)

	// Exact multiple of limit.
	page = BuildPage(Params{Page: 3, Limit: 10}, 30)
	require.Equal(t, 3, page.TotalPages)
	require.False(t, page.HasNextPage)
	require.True(t, page.HasPrevPage)

	// Page past the end still reports consistent flags.
	page = BuildPage(Params{Page: 9, Limit: 10}, 30)
	require.False(t, page.HasNextPage)
	require.True(t, page.HasPrevPage)
}
