package events

import (
	"context"
	"net/url"
	"testing"

	"github.com/planora/server/internal/api/pagination"
	"github.com/stretchr/testify/require"
)

func TestParseFiltersDefaults(t *testing.T) {
	filters, params, err := ParseFilters(url.Values{})
	require.NoError(t, err)
	require.Empty(t, filters.Search)
	require.Nil(t, filters.EventTypeID)
	require.Equal(t, 1, params.Page)
	require.Equal(t, 10, params.Limit)
	require.Equal(t, "created_at", params.SortBy)
}

func TestParseFiltersEventType(t *testing.T) {
	values := url.Values{"event_type_id": {"7"}, "search": {" gala "}, "city": {"Lisbon"}}
	filters, _, err := ParseFilters(values)
	require.NoError(t, err)
	require.NotNil(t, filters.EventTypeID)
	require.Equal(t, int64(7), *filters.EventTypeID)
	require.Equal(t, "gala", filters.Search)
	require.Equal(t, "Lisbon", filters.City)
}

func TestParseFiltersRejectsBadEventType(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3"} {
		_, _, err := ParseFilters(url.Values{"event_type_id": {raw}})
		var paramErr pagination.ParamError
		require.ErrorAs(t, err, &paramErr)
		require.Equal(t, "event_type_id", paramErr.Field)
	}
}

func TestParseFiltersRejectsUnknownSortKey(t *testing.T) {
	_, _, err := ParseFilters(url.Values{"sortBy": {"venue"}})
	require.Error(t, err)
}

type stubRepo struct {
	Repository
	created CreateParams
	updated UpdateParams
}

func (s *stubRepo) Create(_ context.Context, params CreateParams) (*Event, error) {
	s.created = params
	return &Event{EventID: 1, Name: params.Name, Description: params.Description}, nil
}

func (s *stubRepo) Update(_ context.Context, eventID int64, params UpdateParams) (*Event, error) {
	s.updated = params
	return &Event{EventID: eventID}, nil
}

func TestCreateSanitizesUserText(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateParams{
		Name:        "<b>Summer</b> Fest",
		Description: `<p onclick="x()">Fun<script>alert(1)</script></p>`,
		Venue:       "<i>Main Hall</i>",
		CreatedBy:   1,
	})
	require.NoError(t, err)
	require.Equal(t, "Summer Fest", repo.created.Name)
	require.Equal(t, "<p>Fun</p>", repo.created.Description)
	require.Equal(t, "Main Hall", repo.created.Venue)
}

func TestUpdateSanitizesOnlyProvidedFields(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	name := "<b>New</b> Name"
	_, err := svc.Update(context.Background(), 5, UpdateParams{Name: &name, UpdatedBy: 2})
	require.NoError(t, err)
	require.NotNil(t, repo.updated.Name)
	require.Equal(t, "New Name", *repo.updated.Name)
	require.Nil(t, repo.updated.Description)
}
