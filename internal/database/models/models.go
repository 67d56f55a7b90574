package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/ecorank/ecorank-server/internal/scoring"
	"gorm.io/gorm"
)

// JSONPayload stores a submission's type-specific payload as raw JSON
// in a text column. The bytes round-trip unchanged so the payload can
// always be re-parsed with scoring.ParsePayload.
type JSONPayload json.RawMessage

func (p JSONPayload) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "{}", nil
	}
	return string(p), nil
}

func (p *JSONPayload) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		*p = append((*p)[0:0], v...)
	case string:
		*p = JSONPayload(v)
	default:
		return errors.New("unsupported payload column type")
	}
	return nil
}

func (p JSONPayload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

func (p *JSONPayload) UnmarshalJSON(data []byte) error {
	*p = append((*p)[0:0], data...)
	return nil
}

type User struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	OIDCSubject  *string    `gorm:"uniqueIndex" json:"-"`
	Username     string     `gorm:"uniqueIndex" json:"username"`
	PasswordHash string     `json:"-"`
	Nickname     string     `json:"nickname"`
	AvatarURL    string     `json:"avatar_url"`
	CrewID       string     `gorm:"index" json:"crew_id"`
	BannedUntil  *time.Time `json:"banned_until"`
	BanReason    string     `json:"ban_reason"`

	// Derived cache of the scoring functions; restored after every
	// score-affecting write so Level == f(TotalScore) always holds.
	TotalScore    float64 `json:"total_score"`
	Level         int     `json:"level"`
	LevelProgress float64 `json:"level_progress"`
}

// Submission is one logged activity instance. Records are append-only:
// admin moderation flips IsValid and recomputes the owner's totals but
// never rewrites the stored score.
type Submission struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID      string `gorm:"index" json:"user_id"`
	User        User   `json:"user"`
	ChallengeID string `gorm:"index" json:"challenge_id"`
	CrewID      string `gorm:"index" json:"crew_id"`

	Type    scoring.ChallengeType `gorm:"index" json:"type"`
	Payload JSONPayload           `gorm:"type:text" json:"payload"`
	Score   float64               `json:"score"`
	IsValid bool                  `json:"is_valid"`
}

// Crew is a team of users sharing a leaderboard and a join code.
// Membership lives on User.CrewID; the leader is always a member.
type Crew struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name     string  `gorm:"uniqueIndex" json:"name"`
	LeaderID string  `json:"leader_id"`
	JoinCode string  `gorm:"uniqueIndex" json:"join_code"`
	Score    float64 `json:"score"`

	Members []User `gorm:"foreignKey:CrewID" json:"members,omitempty"`
}

type ChallengeStatus string

const (
	ChallengeUpcoming ChallengeStatus = "upcoming"
	ChallengeActive   ChallengeStatus = "active"
	ChallengeEnded    ChallengeStatus = "ended"
)

// Challenge is a time-boxed activity of one type. A challenge with an
// empty CrewID is global. LowerScoreIsBetter flips the leaderboard
// comparator (a carbon-footprint duel ranks ascending).
type Challenge struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name               string                `json:"name"`
	Type               scoring.ChallengeType `gorm:"index" json:"type"`
	StartTime          time.Time             `json:"start_time"`
	EndTime            time.Time             `json:"end_time"`
	LowerScoreIsBetter bool                  `json:"lower_score_is_better"`
	CrewID             string                `gorm:"index" json:"crew_id"`
}

// Status derives the lifecycle phase from the clock; it is never stored.
func (c *Challenge) Status(now time.Time) ChallengeStatus {
	switch {
	case now.Before(c.StartTime):
		return ChallengeUpcoming
	case now.After(c.EndTime):
		return ChallengeEnded
	default:
		return ChallengeActive
	}
}

// ScoreHistory is an append-only log of a user's total score after each
// score-affecting write. It backs the trend endpoint.
type ScoreHistory struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID                string `gorm:"index"`
	ChallengeID           string
	SubmissionID          string
	TotalScoreAfterChange float64
}
