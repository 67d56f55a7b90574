package scoring

import "fmt"

// Per-payload entry caps for the shower log. The cross-submission daily
// caps are enforced at the submission handler with counting queries.
const (
	MaxShowersPerDay = 3
	MaxSkipsPerDay   = 1
)

// ValidationError reports a submission payload that fails its type's
// minimum content rule. The reason is meant to be surfaced verbatim to
// the caller.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func (p *CarbonPayload) Validate() error {
	if len(p.Trips) == 0 {
		return invalid("at least one trip is required")
	}
	for i, trip := range p.Trips {
		switch trip.Mode {
		case ModeBike, ModeWalk, ModePublic, ModeCar:
		default:
			return invalid("trip %d has unknown mode %q", i+1, trip.Mode)
		}
		if trip.DistanceKm < 0 {
			return invalid("trip %d has negative distance", i+1)
		}
	}
	return nil
}

func (p *FoodPayload) Validate() error {
	if len(p.Items) == 0 {
		return invalid("at least one food item is required")
	}
	for i, item := range p.Items {
		if item.Quantity <= 0 {
			return invalid("food item %d must have a positive quantity", i+1)
		}
	}
	return nil
}

func (p *RecyclingPayload) Validate() error {
	var total int
	for i, item := range p.Items {
		if item.Quantity < 0 {
			return invalid("recycling item %d has negative quantity", i+1)
		}
		total += item.Quantity
	}
	if total <= 0 {
		return invalid("at least one recycled item is required")
	}
	return nil
}

func (p *ShowerPayload) Validate() error {
	if len(p.Entries) == 0 {
		return invalid("at least one shower entry is required")
	}
	var showers, skips int
	for i, e := range p.Entries {
		if e.Skipped {
			skips++
			continue
		}
		if e.DurationMinutes <= 0 {
			return invalid("shower entry %d must be skipped or have a positive duration", i+1)
		}
		showers++
	}
	if showers > MaxShowersPerDay {
		return invalid("at most %d showers can be logged per day", MaxShowersPerDay)
	}
	if skips > MaxSkipsPerDay {
		return invalid("at most %d skipped shower can be logged per day", MaxSkipsPerDay)
	}
	return nil
}
