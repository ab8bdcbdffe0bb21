package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name     string  `validate:"required,max=255"`
	Email    string  `validate:"omitempty,email"`
	Price    float64 `validate:"gte=0"`
	RSVP     string  `validate:"omitempty,oneof=pending accepted declined"`
	MinOrder float64 `validate:"omitempty,gt=0"`
}

func TestStructValid(t *testing.T) {
	fields, err := Struct(sampleRequest{Name: "Gala Dinner", Email: "host@example.com", Price: 10})
	require.NoError(t, err)
	require.Nil(t, fields)
}

func TestStructReportsFieldMessages(t *testing.T) {
	fields, err := Struct(sampleRequest{Email: "nope", Price: -1, RSVP: "maybe"})
	require.ErrorIs(t, err, ErrInvalidBody)

	require.Equal(t, "is required", fields["name"])
	require.Equal(t, "must be a valid email address", fields["email"])
	require.Equal(t, "must be at least 0", fields["price"])
	require.Equal(t, "must be one of: pending, accepted, declined", fields["rsvp"])
}

func TestFieldNamesAreSnakeCased(t *testing.T) {
	type req struct {
		EventTypeID int64 `validate:"required"`
	}
	fields, err := Struct(req{})
	require.ErrorIs(t, err, ErrInvalidBody)
	require.Contains(t, fields, "event_type_id")
}
