package database

import (
	"errors"
	"time"

	"github.com/ecorank/ecorank-server/internal/database/models"
	"github.com/ecorank/ecorank-server/internal/leaderboard"
	"github.com/ecorank/ecorank-server/internal/scoring"
	"gorm.io/gorm"
)

// User CRUD
func CreateUser(db *gorm.DB, user *models.User) error {
	return db.Create(user).Error
}

func GetUserByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByOIDCSubject(db *gorm.DB, subject string) (*models.User, error) {
	var user models.User
	if err := db.Where("oidc_subject = ?", subject).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetAllUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func UpdateUser(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}

func DeleteUser(db *gorm.DB, userID string) error {
	return db.Delete(&models.User{}, "id = ?", userID).Error
}

// DisplayNameResolver resolves user IDs to nicknames for the
// leaderboard aggregator. A missing user simply stays absent from the
// returned map; the aggregator substitutes its placeholder.
type DisplayNameResolver struct {
	DB *gorm.DB
}

func (r DisplayNameResolver) ResolveNames(userIDs []string) (map[string]string, error) {
	if len(userIDs) == 0 {
		return map[string]string{}, nil
	}
	var users []models.User
	if err := r.DB.Select("id, nickname, username").Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		if u.Nickname != "" {
			names[u.ID] = u.Nickname
		} else {
			names[u.ID] = u.Username
		}
	}
	return names, nil
}

// Submission CRUD
func GetSubmission(db *gorm.DB, id string) (*models.Submission, error) {
	var sub models.Submission
	if err := db.Preload("User").Where("id = ?", id).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func GetSubmissionsByUserID(db *gorm.DB, userID string) ([]models.Submission, error) {
	var subs []models.Submission
	if err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func GetAllSubmissions(db *gorm.DB) ([]models.Submission, error) {
	var subs []models.Submission
	if err := db.Preload("User").Order("created_at desc").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// GetValidSubmissionsByChallenge returns the input snapshot for a
// challenge leaderboard.
func GetValidSubmissionsByChallenge(db *gorm.DB, challengeID string) ([]models.Submission, error) {
	var subs []models.Submission
	if err := db.Where("challenge_id = ? AND is_valid = ?", challengeID, true).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// GetValidSubmissionsByCrew returns the input snapshot for a crew
// leaderboard.
func GetValidSubmissionsByCrew(db *gorm.DB, crewID string) ([]models.Submission, error) {
	var subs []models.Submission
	if err := db.Where("crew_id = ? AND is_valid = ?", crewID, true).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// ScoredSubmissions converts stored submissions into the aggregator's
// input shape.
func ScoredSubmissions(subs []models.Submission) []leaderboard.ScoredSubmission {
	scored := make([]leaderboard.ScoredSubmission, 0, len(subs))
	for _, s := range subs {
		scored = append(scored, leaderboard.ScoredSubmission{
			UserID: s.UserID,
			CrewID: s.CrewID,
			Score:  s.Score,
		})
	}
	return scored
}

// GetUserSubmissionsForDay returns a user's submissions of one type
// within [dayStart, dayStart+24h). Used for the per-day shower caps.
func GetUserSubmissionsForDay(db *gorm.DB, userID string, t scoring.ChallengeType, dayStart time.Time) ([]models.Submission, error) {
	var subs []models.Submission
	end := dayStart.Add(24 * time.Hour)
	err := db.Where("user_id = ? AND type = ? AND is_valid = ? AND created_at >= ? AND created_at < ?",
		userID, t, true, dayStart, end).Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// CountSubmissionsSince counts a user's valid submissions of one type
// newer than the given time. Used for the recycling window cap.
func CountSubmissionsSince(db *gorm.DB, userID string, t scoring.ChallengeType, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Submission{}).
		Where("user_id = ? AND type = ? AND is_valid = ? AND created_at >= ?", userID, t, true, since).
		Count(&count).Error
	return count, err
}

func UpdateSubmissionValidity(db *gorm.DB, id string, isValid bool) error {
	return db.Model(&models.Submission{}).Where("id = ?", id).Update("is_valid", isValid).Error
}

// ApplySubmission persists a scored submission and restores every
// derived value that depends on it: the owner's cached totals and
// level, the score history log, and the crew score. All or nothing.
func ApplySubmission(db *gorm.DB, sub *models.Submission) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		if err := refreshUserTotals(tx, sub.UserID, sub.ChallengeID, sub.ID, true); err != nil {
			return err
		}
		if sub.CrewID != "" {
			return refreshCrewScore(tx, sub.CrewID)
		}
		return nil
	})
}

// RemoveSubmission deletes a submission (recycling and shower history
// rows only; the handler enforces the type restriction) and recomputes
// the owner's and crew's totals.
func RemoveSubmission(db *gorm.DB, sub *models.Submission) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Submission{}, "id = ?", sub.ID).Error; err != nil {
			return err
		}
		if err := refreshUserTotals(tx, sub.UserID, sub.ChallengeID, sub.ID, false); err != nil {
			return err
		}
		if sub.CrewID != "" {
			return refreshCrewScore(tx, sub.CrewID)
		}
		return nil
	})
}

// RecalculateUserScore re-derives a user's cached totals from their
// valid submissions. Called after a submission is invalidated; a
// history row is written only when the total actually changed.
func RecalculateUserScore(db *gorm.DB, userID, challengeID, sourceSubmissionID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return refreshUserTotals(tx, userID, challengeID, sourceSubmissionID, false)
	})
}

// RecalculateCrewScore re-derives a crew's cached score.
func RecalculateCrewScore(db *gorm.DB, crewID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return refreshCrewScore(tx, crewID)
	})
}

// refreshUserTotals restores the invariant that a user's cached
// TotalScore is the sum of their valid submissions' scores and that
// Level/LevelProgress are pure functions of that total. When
// alwaysLog is false a history row is only appended on change.
func refreshUserTotals(tx *gorm.DB, userID, challengeID, sourceSubmissionID string, alwaysLog bool) error {
	user, err := GetUserByID(tx, userID)
	if err != nil {
		return err
	}

	var total float64
	if err := tx.Model(&models.Submission{}).
		Select("COALESCE(SUM(score), 0)").
		Where("user_id = ? AND is_valid = ?", userID, true).
		Scan(&total).Error; err != nil {
		return err
	}

	changed := total != user.TotalScore
	user.TotalScore = total
	user.Level = scoring.Level(total)
	user.LevelProgress = scoring.LevelProgress(total)
	if err := tx.Save(user).Error; err != nil {
		return err
	}

	if alwaysLog || changed {
		history := models.ScoreHistory{
			UserID:                userID,
			ChallengeID:           challengeID,
			SubmissionID:          sourceSubmissionID,
			TotalScoreAfterChange: total,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
	}
	return nil
}

func refreshCrewScore(tx *gorm.DB, crewID string) error {
	var total float64
	if err := tx.Model(&models.Submission{}).
		Select("COALESCE(SUM(score), 0)").
		Where("crew_id = ? AND is_valid = ?", crewID, true).
		Scan(&total).Error; err != nil {
		return err
	}
	return tx.Model(&models.Crew{}).Where("id = ?", crewID).Update("score", total).Error
}

// SubmissionStats are the derived profile numbers; they are computed on
// demand, never stored.
type SubmissionStats struct {
	Count          int64      `json:"submissions_count"`
	AverageScore   float64    `json:"average_score"`
	BestScore      float64    `json:"best_score"`
	LastSubmission *time.Time `json:"last_submission"`
}

func GetUserSubmissionStats(db *gorm.DB, userID string) (*SubmissionStats, error) {
	var stats SubmissionStats
	if err := db.Model(&models.Submission{}).
		Where("user_id = ? AND is_valid = ?", userID, true).
		Count(&stats.Count).Error; err != nil {
		return nil, err
	}
	if stats.Count == 0 {
		return &stats, nil
	}

	row := struct {
		Avg  float64
		Best float64
		Last time.Time
	}{}
	err := db.Model(&models.Submission{}).
		Select("AVG(score) as avg, MAX(score) as best, MAX(created_at) as last").
		Where("user_id = ? AND is_valid = ?", userID, true).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	stats.AverageScore = row.Avg
	stats.BestScore = row.Best
	stats.LastSubmission = &row.Last
	return &stats, nil
}

// Score history
func GetScoreHistoryForUser(db *gorm.DB, userID string) ([]models.ScoreHistory, error) {
	var history []models.ScoreHistory
	if err := db.Where("user_id = ?", userID).Order("created_at asc").Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

// Crew CRUD

// CreateCrew creates the crew and enrolls the leader in one
// transaction, so the leader-is-a-member invariant holds from the
// first row.
func CreateCrew(db *gorm.DB, crew *models.Crew) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(crew).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", crew.LeaderID).Update("crew_id", crew.ID).Error
	})
}

func GetCrewByID(db *gorm.DB, id string) (*models.Crew, error) {
	var crew models.Crew
	if err := db.Preload("Members").Where("id = ?", id).First(&crew).Error; err != nil {
		return nil, err
	}
	return &crew, nil
}

func GetCrewByName(db *gorm.DB, name string) (*models.Crew, error) {
	var crew models.Crew
	if err := db.Where("name = ?", name).First(&crew).Error; err != nil {
		return nil, err
	}
	return &crew, nil
}

func GetCrewByJoinCode(db *gorm.DB, joinCode string) (*models.Crew, error) {
	var crew models.Crew
	if err := db.Where("join_code = ?", joinCode).First(&crew).Error; err != nil {
		return nil, err
	}
	return &crew, nil
}

func GetAllCrews(db *gorm.DB) ([]models.Crew, error) {
	var crews []models.Crew
	if err := db.Order("score desc").Find(&crews).Error; err != nil {
		return nil, err
	}
	return crews, nil
}

func UpdateCrew(db *gorm.DB, crew *models.Crew) error {
	return db.Save(crew).Error
}

// SetUserCrew moves a user in or out of a crew ("" leaves).
func SetUserCrew(db *gorm.DB, userID, crewID string) error {
	return db.Model(&models.User{}).Where("id = ?", userID).Update("crew_id", crewID).Error
}

// DisbandCrew removes the crew and detaches all members.
func DisbandCrew(db *gorm.DB, crewID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("crew_id = ?", crewID).Update("crew_id", "").Error; err != nil {
			return err
		}
		return tx.Delete(&models.Crew{}, "id = ?", crewID).Error
	})
}

// Challenge CRUD
func CreateChallenge(db *gorm.DB, challenge *models.Challenge) error {
	return db.Create(challenge).Error
}

func GetChallengeByID(db *gorm.DB, id string) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := db.Where("id = ?", id).First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

// GetVisibleChallenges returns global challenges plus those scoped to
// the given crew. An empty crewID returns global challenges only.
func GetVisibleChallenges(db *gorm.DB, crewID string) ([]models.Challenge, error) {
	var challenges []models.Challenge
	q := db.Order("start_time desc")
	if crewID == "" {
		q = q.Where("crew_id = ?", "")
	} else {
		q = q.Where("crew_id = ? OR crew_id = ?", "", crewID)
	}
	if err := q.Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func GetAllChallenges(db *gorm.DB) ([]models.Challenge, error) {
	var challenges []models.Challenge
	if err := db.Order("start_time desc").Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func UpdateChallenge(db *gorm.DB, challenge *models.Challenge) error {
	return db.Save(challenge).Error
}

func DeleteChallenge(db *gorm.DB, id string) error {
	return db.Delete(&models.Challenge{}, "id = ?", id).Error
}

// IsNotFound reports whether err is the record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
