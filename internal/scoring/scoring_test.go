package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarbonScoreGreenTrips(t *testing.T) {
	p := &CarbonPayload{Trips: []Trip{
		{Mode: ModeBike, DistanceKm: 2},
		{Mode: ModeWalk, DistanceKm: 0.5},
		{Mode: ModeBike, DistanceKm: 12},
	}}
	// bike/walk are a flat +10 regardless of distance
	assert.Equal(t, 30.0, p.Score())
}

func TestCarbonScorePublicTransit(t *testing.T) {
	p := &CarbonPayload{Trips: []Trip{
		{Mode: ModePublic, DistanceKm: 8},
		{Mode: ModePublic, DistanceKm: 40},
	}}
	assert.Equal(t, 16.0, p.Score())
}

func TestCarbonScoreCarTrips(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"short trip stays positive", 4, 3},
		{"break-even at 10km", 10, 0},
		{"long trip goes negative", 20, -5},
		{"floored at -10", 100, -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &CarbonPayload{Trips: []Trip{{Mode: ModeCar, DistanceKm: tt.distance}}}
			assert.Equal(t, tt.want, p.Score())
		})
	}
}

func TestCarbonScoreMixedUnclamped(t *testing.T) {
	p := &CarbonPayload{Trips: []Trip{
		{Mode: ModeBike},
		{Mode: ModeCar, DistanceKm: 100},
		{Mode: ModeCar, DistanceKm: 100},
	}}
	// 10 - 10 - 10: the sum is not clamped at zero
	assert.Equal(t, -10.0, p.Score())
}

func TestFoodFootprint(t *testing.T) {
	p := &FoodPayload{Items: []FoodItem{
		{Category: "meat", Quantity: 2},
		{Category: "dairy", Quantity: 1},
		{Category: "vegetables", Quantity: 4},
		{Category: "fruits", Quantity: 10},
	}}
	assert.InDelta(t, 2*2.5+1*1.5+4*0.5+10*0.3, p.Footprint(), 1e-9)
}

func TestFoodScoreClamped(t *testing.T) {
	// way over baseline: floored at 0
	heavy := &FoodPayload{Items: []FoodItem{{Category: "meat", Quantity: 50}}}
	assert.Equal(t, 0.0, heavy.Score())

	// at baseline exactly: zero points
	baseline := &FoodPayload{Items: []FoodItem{{Category: "meat", Quantity: 8}}}
	assert.Equal(t, 0.0, baseline.Score())

	// light diet scores 5 points per kg under baseline
	light := &FoodPayload{Items: []FoodItem{{Category: "vegetables", Quantity: 4}}}
	assert.Equal(t, (20.0-2.0)*5, light.Score())

	// near-zero footprint is capped at 100
	tiny := &FoodPayload{Items: []FoodItem{{Category: "fruits", Quantity: 0.1}}}
	assert.Equal(t, 100.0, tiny.Score())
}

func TestFoodScoreUnknownCategoryContributesZero(t *testing.T) {
	p := &FoodPayload{Items: []FoodItem{
		{Category: "vegetables", Quantity: 2},
		{Category: "mystery", Quantity: 1000},
	}}
	assert.InDelta(t, 1.0, p.Footprint(), 1e-9)
}

func TestFoodScoreBounds(t *testing.T) {
	payloads := []*FoodPayload{
		{Items: []FoodItem{{Category: "meat", Quantity: 0.001}}},
		{Items: []FoodItem{{Category: "meat", Quantity: 7.9}}},
		{Items: []FoodItem{{Category: "meat", Quantity: 8.1}}},
		{Items: []FoodItem{{Category: "dairy", Quantity: 100}}},
		{Items: []FoodItem{{Category: "fruits", Quantity: 0.0001}}},
	}
	for _, p := range payloads {
		s := p.Score()
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 100.0)
	}
}

func TestRecyclingScore(t *testing.T) {
	p := &RecyclingPayload{Items: []RecyclingItem{
		{Category: "metal", Quantity: 2},
		{Category: "plastic", Quantity: 3},
		{Category: "paper", Quantity: 1},
		{Category: "glass", Quantity: 4},
	}}
	assert.Equal(t, 2*6.0+3*5.0+1*4.0+4*3.0, p.Score())
}

func TestRecyclingScoreUnknownCategory(t *testing.T) {
	p := &RecyclingPayload{Items: []RecyclingItem{
		{Category: "styrofoam", Quantity: 99},
		{Category: "paper", Quantity: 1},
	}}
	assert.Equal(t, 4.0, p.Score())
}

func TestRecyclingScoreUncapped(t *testing.T) {
	// the raw accumulator exceeds the cap; clamping happens at persistence
	p := &RecyclingPayload{Items: []RecyclingItem{{Category: "metal", Quantity: 100}}}
	assert.Equal(t, 600.0, p.Score())
}

func TestRecyclingScoreMonotonic(t *testing.T) {
	base := &RecyclingPayload{Items: []RecyclingItem{
		{Category: "plastic", Quantity: 2},
		{Category: "glass", Quantity: 1},
	}}
	before := base.Score()
	for i := range base.Items {
		bumped := &RecyclingPayload{Items: append([]RecyclingItem(nil), base.Items...)}
		bumped.Items[i].Quantity++
		assert.GreaterOrEqual(t, bumped.Score(), before)
	}
}

func TestShowerEntryScoreBoundaries(t *testing.T) {
	assert.Equal(t, 10.0, EntryScore(ShowerEntry{DurationMinutes: 5}))
	assert.Equal(t, 8.0, EntryScore(ShowerEntry{DurationMinutes: 10}))
	assert.Equal(t, 5.0, EntryScore(ShowerEntry{DurationMinutes: 15}))
	assert.Equal(t, 3.0, EntryScore(ShowerEntry{DurationMinutes: 20}))
	assert.Equal(t, 3.0, EntryScore(ShowerEntry{Skipped: true}))
}

func TestShowerScoreSumsEntries(t *testing.T) {
	p := &ShowerPayload{Entries: []ShowerEntry{
		{DurationMinutes: 4},
		{DurationMinutes: 12},
		{Skipped: true},
	}}
	assert.Equal(t, 10.0+5.0+3.0, p.Score())
}

func TestScoreDeterminism(t *testing.T) {
	payloads := []Payload{
		&CarbonPayload{Trips: []Trip{{Mode: ModeCar, DistanceKm: 13.7}, {Mode: ModeBike}}},
		&FoodPayload{Items: []FoodItem{{Category: "meat", Quantity: 1.5}}},
		&RecyclingPayload{Items: []RecyclingItem{{Category: "glass", Quantity: 7}}},
		&ShowerPayload{Entries: []ShowerEntry{{DurationMinutes: 9.99}}},
	}
	for _, p := range payloads {
		assert.Equal(t, p.Score(), p.Score())
	}
}

func TestParsePayload(t *testing.T) {
	p, err := ParsePayload(TypeCarbon, []byte(`{"trips":[{"mode":"bike","distance_km":3}]}`))
	require.NoError(t, err)
	carbon, ok := p.(*CarbonPayload)
	require.True(t, ok)
	require.Len(t, carbon.Trips, 1)
	assert.Equal(t, ModeBike, carbon.Trips[0].Mode)

	_, err = ParsePayload(ChallengeType("lawn-mowing"), []byte(`{}`))
	assert.Error(t, err)

	_, err = ParsePayload(TypeFood, []byte(`{"items":`))
	assert.Error(t, err)
}
