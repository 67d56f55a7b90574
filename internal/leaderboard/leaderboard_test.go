package leaderboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapResolver map[string]string

func (r mapResolver) ResolveNames(userIDs []string) (map[string]string, error) {
	return r, nil
}

type failingResolver struct{}

func (failingResolver) ResolveNames(userIDs []string) (map[string]string, error) {
	return nil, errors.New("lookup service down")
}

func TestAggregateGroupsAndSums(t *testing.T) {
	subs := []ScoredSubmission{
		{UserID: "u1", Score: 50},
		{UserID: "u2", Score: 50},
		{UserID: "u1", Score: 10},
	}
	got := Aggregate(subs, mapResolver{"u1": "Alice", "u2": "Bob"}, false)

	require.Len(t, got, 2)
	assert.Equal(t, "u1", got[0].UserID)
	assert.Equal(t, 60.0, got[0].Score)
	assert.Equal(t, 1, got[0].Position)
	assert.Equal(t, "u2", got[1].UserID)
	assert.Equal(t, 50.0, got[1].Score)
	assert.Equal(t, 2, got[1].Position)
	assert.Zero(t, got[0].TiedWith)
}

func TestAggregateCompetitionRanking(t *testing.T) {
	subs := []ScoredSubmission{
		{UserID: "u1", Score: 50},
		{UserID: "u2", Score: 50},
		{UserID: "u3", Score: 40},
	}
	got := Aggregate(subs, mapResolver{}, false)

	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Position)
	assert.Equal(t, 1, got[1].Position)
	assert.Equal(t, 2, got[0].TiedWith)
	assert.Equal(t, 2, got[1].TiedWith)
	// next distinct score skips by the tie-group size
	assert.Equal(t, 3, got[2].Position)
	assert.Zero(t, got[2].TiedWith)
}

func TestAggregateTwoWayTie(t *testing.T) {
	subs := []ScoredSubmission{
		{UserID: "u1", Score: 50},
		{UserID: "u2", Score: 50},
	}
	got := Aggregate(subs, mapResolver{}, false)
	require.Len(t, got, 2)
	for _, e := range got {
		assert.Equal(t, 1, e.Position)
		assert.Equal(t, 2, e.TiedWith)
	}
}

func TestAggregateLowerScoreIsBetter(t *testing.T) {
	subs := []ScoredSubmission{
		{UserID: "u1", Score: 10},
		{UserID: "u2", Score: 5},
	}
	got := Aggregate(subs, mapResolver{}, true)
	require.Len(t, got, 2)
	assert.Equal(t, "u2", got[0].UserID)
	assert.Equal(t, 1, got[0].Position)
	assert.Equal(t, "u1", got[1].UserID)
}

func TestAggregateEmptyInput(t *testing.T) {
	got := Aggregate(nil, mapResolver{}, false)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAggregatePlaceholderNames(t *testing.T) {
	subs := []ScoredSubmission{
		{UserID: "u1", Score: 10},
		{UserID: "u2", Score: 5},
	}
	got := Aggregate(subs, mapResolver{"u1": "Alice"}, false)
	require.Len(t, got, 2)
	assert.Equal(t, "Alice", got[0].DisplayName)
	assert.Equal(t, PlaceholderName, got[1].DisplayName)
}

func TestAggregateResolverFailureDoesNotAbort(t *testing.T) {
	subs := []ScoredSubmission{{UserID: "u1", Score: 10}}
	got := Aggregate(subs, failingResolver{}, false)
	require.Len(t, got, 1)
	assert.Equal(t, PlaceholderName, got[0].DisplayName)
	assert.Equal(t, 10.0, got[0].Score)
}

func TestAggregateKeepsCrewID(t *testing.T) {
	subs := []ScoredSubmission{
		{UserID: "u1", CrewID: "", Score: 1},
		{UserID: "u1", CrewID: "crew-9", Score: 2},
	}
	got := Aggregate(subs, mapResolver{}, false)
	require.Len(t, got, 1)
	assert.Equal(t, "crew-9", got[0].CrewID)
}
