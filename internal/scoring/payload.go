package scoring

import (
	"encoding/json"
	"fmt"
	"time"
)

// ChallengeType selects the scoring rule and the payload variant a
// submission must carry.
type ChallengeType string

const (
	TypeCarbon    ChallengeType = "carbon"
	TypeFood      ChallengeType = "food"
	TypeRecycling ChallengeType = "recycling"
	TypeShower    ChallengeType = "shower"
)

func (t ChallengeType) Valid() bool {
	switch t {
	case TypeCarbon, TypeFood, TypeRecycling, TypeShower:
		return true
	}
	return false
}

// TripMode is the means of transport for a single logged trip.
type TripMode string

const (
	ModeBike   TripMode = "bike"
	ModeWalk   TripMode = "walk"
	ModePublic TripMode = "public"
	ModeCar    TripMode = "car"
)

// Payload is the tagged variant carried by a submission. Each challenge
// type has exactly one payload shape; a shower submission can never hold
// food items.
type Payload interface {
	// Type reports which challenge type this payload belongs to.
	Type() ChallengeType
	// Validate rejects payloads that do not meet the minimum content
	// requirements for their type. Scoring is never run on an invalid
	// payload.
	Validate() error
	// Score computes the raw score for this payload. It is pure and
	// deterministic; no rounding or capping is applied here.
	Score() float64
}

type Trip struct {
	Mode       TripMode `json:"mode"`
	DistanceKm float64  `json:"distance_km"`
}

type CarbonPayload struct {
	Trips []Trip `json:"trips"`
}

func (p *CarbonPayload) Type() ChallengeType { return TypeCarbon }

type FoodItem struct {
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Quantity float64   `json:"quantity"`
	MealType string    `json:"meal_type,omitempty"`
	LoggedAt time.Time `json:"logged_at,omitempty"`
}

type FoodPayload struct {
	Items []FoodItem `json:"items"`
}

func (p *FoodPayload) Type() ChallengeType { return TypeFood }

type RecyclingItem struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

type RecyclingPayload struct {
	Items []RecyclingItem `json:"items"`
}

func (p *RecyclingPayload) Type() ChallengeType { return TypeRecycling }

type ShowerEntry struct {
	DurationMinutes float64 `json:"duration_minutes"`
	Skipped         bool    `json:"skipped"`
}

type ShowerPayload struct {
	Entries []ShowerEntry `json:"entries"`
}

func (p *ShowerPayload) Type() ChallengeType { return TypeShower }

// ParsePayload decodes raw JSON into the payload variant for the given
// challenge type. Unknown types are an error, not a zero score.
func ParsePayload(t ChallengeType, data []byte) (Payload, error) {
	var p Payload
	switch t {
	case TypeCarbon:
		p = &CarbonPayload{}
	case TypeFood:
		p = &FoodPayload{}
	case TypeRecycling:
		p = &RecyclingPayload{}
	case TypeShower:
		p = &ShowerPayload{}
	default:
		return nil, fmt.Errorf("unknown challenge type: %q", t)
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", t, err)
	}
	return p, nil
}
