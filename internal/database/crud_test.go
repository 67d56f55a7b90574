package database

import (
	"fmt"
	"testing"

	"github.com/ecorank/ecorank-server/internal/database/models"
	"github.com/ecorank/ecorank-server/internal/scoring"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Init(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.NewString(),
		Username: username,
		Nickname: username,
		Level:    1,
	}
	require.NoError(t, CreateUser(db, user))
	return user
}

func seedSubmission(user *models.User, score float64) *models.Submission {
	return &models.Submission{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		ChallengeID: "challenge-1",
		CrewID:      user.CrewID,
		Type:        scoring.TypeCarbon,
		Payload:     models.JSONPayload(`{"trips":[]}`),
		Score:       score,
		IsValid:     true,
	}
}

func TestApplySubmissionRefreshesUserTotals(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")

	require.NoError(t, ApplySubmission(db, seedSubmission(user, 60)))
	require.NoError(t, ApplySubmission(db, seedSubmission(user, 50)))

	got, err := GetUserByID(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 110.0, got.TotalScore)
	assert.Equal(t, scoring.Level(110), got.Level)
	assert.InDelta(t, scoring.LevelProgress(110), got.LevelProgress, 1e-9)

	history, err := GetScoreHistoryForUser(db, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 60.0, history[0].TotalScoreAfterChange)
	assert.Equal(t, 110.0, history[1].TotalScoreAfterChange)
}

func TestApplySubmissionUpdatesCrewScore(t *testing.T) {
	db := testDB(t)
	leader := seedUser(t, db, "leader")

	crew := &models.Crew{
		ID:       uuid.NewString(),
		Name:     "green-team",
		LeaderID: leader.ID,
		JoinCode: "ABCD2345",
	}
	require.NoError(t, CreateCrew(db, crew))

	// CreateCrew enrolls the leader
	leader, err := GetUserByID(db, leader.ID)
	require.NoError(t, err)
	require.Equal(t, crew.ID, leader.CrewID)

	require.NoError(t, ApplySubmission(db, seedSubmission(leader, 42)))

	got, err := GetCrewByID(db, crew.ID)
	require.NoError(t, err)
	assert.Equal(t, 42.0, got.Score)
}

func TestInvalidatingSubmissionRecomputesTotals(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "bob")

	sub := seedSubmission(user, 80)
	require.NoError(t, ApplySubmission(db, sub))
	require.NoError(t, ApplySubmission(db, seedSubmission(user, 20)))

	require.NoError(t, UpdateSubmissionValidity(db, sub.ID, false))
	require.NoError(t, RecalculateUserScore(db, user.ID, sub.ChallengeID, sub.ID))

	got, err := GetUserByID(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.TotalScore)
	assert.Equal(t, scoring.Level(20), got.Level)

	// invalid submissions disappear from the leaderboard snapshot
	valid, err := GetValidSubmissionsByChallenge(db, "challenge-1")
	require.NoError(t, err)
	assert.Len(t, valid, 1)
}

func TestRemoveSubmissionRollsBackScore(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "carol")

	sub := seedSubmission(user, 10)
	require.NoError(t, ApplySubmission(db, sub))
	require.NoError(t, RemoveSubmission(db, sub))

	got, err := GetUserByID(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.TotalScore)
	assert.Equal(t, 1, got.Level)
}

func TestDisbandCrewDetachesMembers(t *testing.T) {
	db := testDB(t)
	leader := seedUser(t, db, "dave")
	member := seedUser(t, db, "erin")

	crew := &models.Crew{
		ID:       uuid.NewString(),
		Name:     "breakup",
		LeaderID: leader.ID,
		JoinCode: "WXYZ7890",
	}
	require.NoError(t, CreateCrew(db, crew))
	require.NoError(t, SetUserCrew(db, member.ID, crew.ID))

	require.NoError(t, DisbandCrew(db, crew.ID))

	_, err := GetCrewByID(db, crew.ID)
	assert.True(t, IsNotFound(err))

	for _, id := range []string{leader.ID, member.ID} {
		u, err := GetUserByID(db, id)
		require.NoError(t, err)
		assert.Empty(t, u.CrewID)
	}
}

func TestGetVisibleChallengesScoping(t *testing.T) {
	db := testDB(t)

	global := &models.Challenge{ID: uuid.NewString(), Name: "global", Type: scoring.TypeCarbon}
	crewOnly := &models.Challenge{ID: uuid.NewString(), Name: "crew-only", Type: scoring.TypeShower, CrewID: "crew-9"}
	require.NoError(t, CreateChallenge(db, global))
	require.NoError(t, CreateChallenge(db, crewOnly))

	visible, err := GetVisibleChallenges(db, "")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "global", visible[0].Name)

	visible, err = GetVisibleChallenges(db, "crew-9")
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	visible, err = GetVisibleChallenges(db, "other-crew")
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}

func TestDisplayNameResolverPrefersNickname(t *testing.T) {
	db := testDB(t)

	withNick := seedUser(t, db, "frank")
	withNick.Nickname = "Frankie"
	require.NoError(t, UpdateUser(db, withNick))

	noNick := &models.User{ID: uuid.NewString(), Username: "grace", Level: 1}
	require.NoError(t, CreateUser(db, noNick))

	names, err := DisplayNameResolver{DB: db}.ResolveNames([]string{withNick.ID, noNick.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, "Frankie", names[withNick.ID])
	assert.Equal(t, "grace", names[noNick.ID])
	_, found := names["missing"]
	assert.False(t, found)
}

func TestGetUserSubmissionStats(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "heidi")

	stats, err := GetUserSubmissionStats(db, user.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.Count)
	assert.Nil(t, stats.LastSubmission)

	require.NoError(t, ApplySubmission(db, seedSubmission(user, 30)))
	require.NoError(t, ApplySubmission(db, seedSubmission(user, 70)))

	stats, err = GetUserSubmissionStats(db, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Count)
	assert.Equal(t, 50.0, stats.AverageScore)
	assert.Equal(t, 70.0, stats.BestScore)
	assert.NotNil(t, stats.LastSubmission)
}
