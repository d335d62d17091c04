package queries_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery(t *testing.T) {
	query, err := queries.NewListOrdersQuery(10, 25)
	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.Equal(t, 10, query.Skip())
	assert.Equal(t, 25, query.Take())
}

func TestNewListOrdersQuery_Validation(t *testing.T) {
	testCases := []struct {
		name string
		skip int
		take int
		want error
	}{
		{name: "negative skip", skip: -1, take: 10, want: queries.ErrSkipIsInvalid},
		{name: "zero take", skip: 0, take: 0, want: queries.ErrTakeIsInvalid},
		{name: "negative take", skip: 0, take: -5, want: queries.ErrTakeIsInvalid},
		{name: "take above page cap", skip: 0, take: 101, want: queries.ErrTakeIsInvalid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := queries.NewListOrdersQuery(tc.skip, tc.take)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestListOrdersQuery_ZeroValueIsNotConstructed(t *testing.T) {
	var query queries.ListOrdersQuery
	require.ErrorIs(t, query.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
}
