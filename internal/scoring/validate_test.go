package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.NotEmpty(t, verr.Reason)
}

func TestCarbonValidate(t *testing.T) {
	requireValidationError(t, (&CarbonPayload{}).Validate())
	requireValidationError(t, (&CarbonPayload{Trips: []Trip{{Mode: "rocket"}}}).Validate())
	requireValidationError(t, (&CarbonPayload{Trips: []Trip{{Mode: ModeCar, DistanceKm: -1}}}).Validate())
	assert.NoError(t, (&CarbonPayload{Trips: []Trip{{Mode: ModeWalk}}}).Validate())
}

func TestFoodValidate(t *testing.T) {
	requireValidationError(t, (&FoodPayload{}).Validate())
	requireValidationError(t, (&FoodPayload{Items: []FoodItem{{Category: "meat", Quantity: 0}}}).Validate())
	assert.NoError(t, (&FoodPayload{Items: []FoodItem{{Category: "meat", Quantity: 1}}}).Validate())
}

func TestRecyclingValidate(t *testing.T) {
	requireValidationError(t, (&RecyclingPayload{}).Validate())
	// items present but total count is zero
	requireValidationError(t, (&RecyclingPayload{Items: []RecyclingItem{{Category: "paper", Quantity: 0}}}).Validate())
	requireValidationError(t, (&RecyclingPayload{Items: []RecyclingItem{{Category: "paper", Quantity: -3}}}).Validate())
	assert.NoError(t, (&RecyclingPayload{Items: []RecyclingItem{{Category: "paper", Quantity: 1}}}).Validate())
}

func TestShowerValidate(t *testing.T) {
	requireValidationError(t, (&ShowerPayload{}).Validate())
	requireValidationError(t, (&ShowerPayload{Entries: []ShowerEntry{{DurationMinutes: 0}}}).Validate())
	assert.NoError(t, (&ShowerPayload{Entries: []ShowerEntry{{Skipped: true}}}).Validate())
	assert.NoError(t, (&ShowerPayload{Entries: []ShowerEntry{{DurationMinutes: 7.5}}}).Validate())

	four := make([]ShowerEntry, 4)
	for i := range four {
		four[i] = ShowerEntry{DurationMinutes: 5}
	}
	requireValidationError(t, (&ShowerPayload{Entries: four}).Validate())

	twoSkips := []ShowerEntry{{Skipped: true}, {Skipped: true}}
	requireValidationError(t, (&ShowerPayload{Entries: twoSkips}).Validate())

	full := []ShowerEntry{
		{DurationMinutes: 5}, {DurationMinutes: 8}, {DurationMinutes: 12}, {Skipped: true},
	}
	assert.NoError(t, (&ShowerPayload{Entries: full}).Validate())
}

func TestValidationErrorSurfacedVerbatim(t *testing.T) {
	err := (&CarbonPayload{}).Validate()
	assert.Equal(t, "at least one trip is required", err.Error())
}
