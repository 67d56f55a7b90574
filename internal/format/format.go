// Package format renders scores and measurements as compact display
// strings. Every function is total over finite inputs and deterministic;
// this is the only place any rounding happens.
package format

import (
	"fmt"
	"math"
	"strconv"
)

// Score abbreviates large scores: >= 1e6 as "<x>M", >= 1e3 as "<x>K"
// with one decimal place, everything else as an integer string.
func Score(score float64) string {
	abs := math.Abs(score)
	switch {
	case abs >= 1e6:
		return strconv.FormatFloat(score/1e6, 'f', 1, 64) + "M"
	case abs >= 1e3:
		return strconv.FormatFloat(score/1e3, 'f', 1, 64) + "K"
	default:
		return strconv.Itoa(int(math.Round(score)))
	}
}

// Duration renders a duration in minutes, switching to hours at the
// 60-minute boundary.
func Duration(minutes float64) string {
	if minutes < 60 {
		return strconv.Itoa(int(math.Round(minutes))) + " min"
	}
	hours := int(minutes) / 60
	rem := int(math.Round(minutes)) % 60
	if rem == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %d min", hours, rem)
}

// Distance renders a distance in metres below the 1 km boundary and in
// kilometres with one decimal above it.
func Distance(km float64) string {
	if km < 1 {
		return strconv.Itoa(int(math.Round(km*1000))) + " m"
	}
	return strconv.FormatFloat(km, 'f', 1, 64) + " km"
}

// CarbonFootprint renders a CO2-equivalent mass in grams below the
// 1 kg boundary and in kilograms with one decimal above it.
func CarbonFootprint(kg float64) string {
	if kg < 1 {
		return strconv.Itoa(int(math.Round(kg*1000))) + " g CO2e"
	}
	return strconv.FormatFloat(kg, 'f', 1, 64) + " kg CO2e"
}
