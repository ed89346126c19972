package list_bookings

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

func TestToServiceRequest_Defaults(t *testing.T) {
	req, err := ToServiceRequest(url.Values{})

	require.NoError(t, err)
	require.NotNil(t, req.Archived)
	assert.False(t, *req.Archived)
	assert.Empty(t, req.Statuses)
	assert.Nil(t, req.Search)
	assert.Zero(t, req.Limit)
}

func TestToServiceRequest_AllParams(t *testing.T) {
	query, err := url.ParseQuery("status=QuoteSent,Confirmed&status=Inquiry&archived=all&search=+Santos+&from=2025-01-01&to=2025-12-31&limit=50&offset=100")
	require.NoError(t, err)

	req, err := ToServiceRequest(query)

	require.NoError(t, err)
	assert.Equal(t, []string{"QuoteSent", "Confirmed", "Inquiry"}, req.Statuses)
	assert.Nil(t, req.Archived)
	assert.Equal(t, "Santos", *req.Search)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *req.EventFrom)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), *req.EventTo)
	assert.Equal(t, uint64(50), req.Limit)
	assert.Equal(t, uint64(100), req.Offset)
}

func TestToServiceRequest_Archived(t *testing.T) {
	req, err := ToServiceRequest(url.Values{"archived": {"TRUE"}})

	require.NoError(t, err)
	assert.True(t, *req.Archived)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	tests := map[string]url.Values{
		"archived": {"archived": {"maybe"}},
		"from":     {"from": {"01/01/2025"}},
		"limit":    {"limit": {"-1"}},
		"offset":   {"offset": {"x"}},
	}

	for field, query := range tests {
		t.Run(field, func(t *testing.T) {
			_, err := ToServiceRequest(query)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, field, vErr.Field)
		})
	}

	_, err := ToServiceRequest(url.Values{"limit": {"501"}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
