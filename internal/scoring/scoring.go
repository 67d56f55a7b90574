// Package scoring implements the EcoRank scoring policy: pure functions
// that map a submission payload to a score, plus leveling and payload
// validation. Nothing in this package touches the database or the clock.
package scoring

// Per-trip contributions for the carbon score.
const (
	greenTripPoints   = 10.0
	publicTripPoints  = 8.0
	carTripBase       = 5.0
	carPerKmPenalty   = 0.5
	carTripFloor      = -10.0
	foodBaselineKg    = 20.0
	foodPointsPerKg   = 5.0
	foodScoreMax      = 100.0
	showerSkipPoints  = 3.0
	showerShortPoints = 10.0
	showerMidPoints   = 8.0
	showerLongPoints  = 5.0
	showerOverPoints  = 3.0
)

// MaxRecyclingScore is the per-submission cap. It is applied once, at
// the point the score is persisted, so the raw accumulator returned by
// RecyclingPayload.Score stays auditable.
const MaxRecyclingScore = 100.0

// foodFootprintWeights maps a food category to its kg-CO2e weight per
// unit quantity. Unrecognized categories contribute zero rather than
// failing the whole submission.
var foodFootprintWeights = map[string]float64{
	"meat":       2.5,
	"dairy":      1.5,
	"vegetables": 0.5,
	"fruits":     0.3,
}

// recyclingPoints maps a recycling category to points per item.
var recyclingPoints = map[string]float64{
	"metal":   6,
	"plastic": 5,
	"paper":   4,
	"glass":   3,
}

// Score accumulates over all trips: bike and walk earn a flat bonus,
// public transit slightly less, and car trips lose half a point per
// kilometre below a 5-point base, floored at -10 per trip. The sum is
// unclamped; heavy car use can go negative.
func (p *CarbonPayload) Score() float64 {
	var total float64
	for _, trip := range p.Trips {
		switch trip.Mode {
		case ModeBike, ModeWalk:
			total += greenTripPoints
		case ModePublic:
			total += publicTripPoints
		case ModeCar:
			points := carTripBase - trip.DistanceKm*carPerKmPenalty
			if points < carTripFloor {
				points = carTripFloor
			}
			total += points
		}
	}
	return total
}

// Footprint returns the total kg-CO2e of the logged items.
func (p *FoodPayload) Footprint() float64 {
	var total float64
	for _, item := range p.Items {
		total += item.Quantity * foodFootprintWeights[item.Category]
	}
	return total
}

// Score rewards diets under an implicit 20 kg baseline at 5 points per
// kg saved, clamped to [0, 100].
func (p *FoodPayload) Score() float64 {
	score := (foodBaselineKg - p.Footprint()) * foodPointsPerKg
	if score < 0 {
		return 0
	}
	if score > foodScoreMax {
		return foodScoreMax
	}
	return score
}

// Score returns the raw, uncapped accumulation of quantity times
// per-category points. The caller clamps to MaxRecyclingScore when the
// score is persisted.
func (p *RecyclingPayload) Score() float64 {
	var total float64
	for _, item := range p.Items {
		total += float64(item.Quantity) * recyclingPoints[item.Category]
	}
	return total
}

// EntryScore is the step function for a single shower entry.
func EntryScore(e ShowerEntry) float64 {
	if e.Skipped {
		return showerSkipPoints
	}
	switch {
	case e.DurationMinutes <= 5:
		return showerShortPoints
	case e.DurationMinutes <= 10:
		return showerMidPoints
	case e.DurationMinutes <= 15:
		return showerLongPoints
	default:
		return showerOverPoints
	}
}

// Score sums the entry scores for the day.
func (p *ShowerPayload) Score() float64 {
	var total float64
	for _, e := range p.Entries {
		total += EntryScore(e)
	}
	return total
}
