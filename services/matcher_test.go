package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight-connection/models"
)

func arrivalAt(actual int64) models.Flight {
	return models.Flight{Arrival: models.Time{Scheduled: actual, Actual: actual}}
}

func departureAt(actual int64) models.Flight {
	return models.Flight{Departure: models.Time{Scheduled: actual, Actual: actual}}
}

func lengths(conns []models.Connection) []int64 {
	out := make([]int64, len(conns))
	for i, c := range conns {
		out[i] = c.Length()
	}
	return out
}

func TestMatch_NearestDeparture(t *testing.T) {
	leg1 := []models.Flight{arrivalAt(1000), arrivalAt(90000)}
	leg2 := []models.Flight{departureAt(4600), departureAt(93600)}

	conns, err := Match(leg1, leg2)

	require.NoError(t, err)
	assert.Equal(t, []int64{3600, 3600}, lengths(conns))
	assert.Equal(t, int64(1000), conns[0].Start.Actual)
	assert.Equal(t, int64(93600), conns[1].End.Actual)
}

func TestMatch_DepartureBeforeArrivalIsDropped(t *testing.T) {
	leg1 := []models.Flight{arrivalAt(5000)}
	leg2 := []models.Flight{departureAt(4000), departureAt(20000)}

	conns, err := Match(leg1, leg2)

	require.NoError(t, err)
	assert.Empty(t, conns)
}

func TestMatch_ExhaustedPool(t *testing.T) {
	leg1 := []models.Flight{arrivalAt(1000), arrivalAt(2000)}
	leg2 := []models.Flight{departureAt(1500)}

	_, err := Match(leg1, leg2)

	require.ErrorIs(t, err, models.ErrExhaustedPool)
	assert.Contains(t, err.Error(), "occurrence 2 of 2")
}

func TestMatch_EmptyPoolFromStart(t *testing.T) {
	_, err := Match([]models.Flight{arrivalAt(1000)}, nil)
	assert.ErrorIs(t, err, models.ErrExhaustedPool)

	conns, err := Match(nil, []models.Flight{departureAt(1000)})
	require.NoError(t, err)
	assert.Empty(t, conns)
}

func TestMatchWithPolicy_SkipReturnsPartial(t *testing.T) {
	leg1 := []models.Flight{arrivalAt(1000), arrivalAt(2000), arrivalAt(3000)}
	leg2 := []models.Flight{departureAt(1500)}

	conns, err := MatchWithPolicy(leg1, leg2, ExhaustedSkip)

	require.NoError(t, err)
	assert.Equal(t, []int64{500}, lengths(conns))
}

func TestMatch_DepartureUsedAtMostOnce(t *testing.T) {
	leg1 := []models.Flight{arrivalAt(1000), arrivalAt(1100), arrivalAt(1200)}
	leg2 := []models.Flight{departureAt(1300), departureAt(5000), departureAt(9000)}

	conns, err := Match(leg1, leg2)

	require.NoError(t, err)
	seen := map[int64]bool{}
	for _, c := range conns {
		assert.False(t, seen[c.End.Actual], "departure %d matched twice", c.End.Actual)
		seen[c.End.Actual] = true
	}
	assert.Equal(t, []int64{300, 3900, 7800}, lengths(conns))
}

func TestMatch_LengthBound(t *testing.T) {
	// a day and a second is too long for the first arrival, exactly a day
	// is still fine for the second
	leg1 := []models.Flight{arrivalAt(0), arrivalAt(1)}
	leg2 := []models.Flight{departureAt(MaxConnectionSec + 1)}

	conns, err := Match(leg1, leg2)

	require.NoError(t, err)
	assert.Equal(t, []int64{MaxConnectionSec}, lengths(conns))
}

func TestMatch_TieKeepsFirstCandidate(t *testing.T) {
	leg1 := []models.Flight{arrivalAt(1000)}
	first := models.Flight{Departure: models.Time{Scheduled: 1400, Actual: 1500}}
	second := models.Flight{Departure: models.Time{Scheduled: 1500, Actual: 1500}}

	conns, err := Match(leg1, []models.Flight{first, second})

	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, int64(1400), conns[0].End.Scheduled)
}

func TestMatch_OrderFollowsLeg1(t *testing.T) {
	leg1 := []models.Flight{arrivalAt(50000), arrivalAt(1000)}
	leg2 := []models.Flight{departureAt(2000), departureAt(51000)}

	conns, err := Match(leg1, leg2)

	require.NoError(t, err)
	require.Len(t, conns, 2)
	assert.Equal(t, int64(50000), conns[0].Start.Actual)
	assert.Equal(t, int64(1000), conns[1].Start.Actual)
}

func TestMatch_DoesNotModifyInputs(t *testing.T) {
	leg1 := []models.Flight{arrivalAt(1000), arrivalAt(2000)}
	leg2 := []models.Flight{departureAt(3000), departureAt(1500), departureAt(2500)}
	leg2Copy := append([]models.Flight(nil), leg2...)

	first, err := Match(leg1, leg2)
	require.NoError(t, err)
	second, err := Match(leg1, leg2)
	require.NoError(t, err)

	assert.Equal(t, leg2Copy, leg2)
	assert.Equal(t, first, second)
}

func TestCheckRoute(t *testing.T) {
	jfkSfo := &models.FlightRecord{Origin: models.Airport{Code: "JFK"}, Destination: models.Airport{Code: "SFO"}}
	sfoLax := &models.FlightRecord{Origin: models.Airport{Code: "SFO"}, Destination: models.Airport{Code: "LAX"}}

	assert.NoError(t, CheckRoute(jfkSfo, sfoLax))

	err := CheckRoute(sfoLax, jfkSfo)
	require.ErrorIs(t, err, models.ErrRouteMismatch)
	assert.Contains(t, err.Error(), "flight 1 arrives in LAX, flight 2 departs from JFK")
}

func TestMatch_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		leg1    []models.Flight
		leg2    []models.Flight
		want    []int64
		wantErr error
	}{
		{
			name: "single pair",
			leg1: []models.Flight{arrivalAt(1000)},
			leg2: []models.Flight{departureAt(1500)},
			want: []int64{500},
		},
		{
			name: "departure a day before arrival",
			leg1: []models.Flight{arrivalAt(1000)},
			leg2: []models.Flight{departureAt(1000 - 90000)},
			want: []int64{},
		},
		{
			name:    "second arrival finds an empty pool",
			leg1:    []models.Flight{arrivalAt(100), arrivalAt(200)},
			leg2:    []models.Flight{departureAt(150)},
			wantErr: models.ErrExhaustedPool,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conns, err := Match(tt.leg1, tt.leg2)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, lengths(conns))
			assert.LessOrEqual(t, len(conns), min(len(tt.leg1), len(tt.leg2)))
		})
	}
}
