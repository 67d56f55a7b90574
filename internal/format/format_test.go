package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	assert.Equal(t, "42", Score(42))
	assert.Equal(t, "1.5K", Score(1500))
	assert.Equal(t, "2.5M", Score(2500000))
	assert.Equal(t, "0", Score(0))
	assert.Equal(t, "999", Score(999))
	assert.Equal(t, "1.0K", Score(1000))
	assert.Equal(t, "43", Score(42.6))
	assert.Equal(t, "-12", Score(-12))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "5 min", Duration(5))
	assert.Equal(t, "59 min", Duration(59))
	assert.Equal(t, "1 h", Duration(60))
	assert.Equal(t, "1 h 30 min", Duration(90))
	assert.Equal(t, "2 h", Duration(120))
	assert.Equal(t, "0 min", Duration(0))
}

func TestDistance(t *testing.T) {
	assert.Equal(t, "950 m", Distance(0.95))
	assert.Equal(t, "1.0 km", Distance(1))
	assert.Equal(t, "1.2 km", Distance(1.23))
	assert.Equal(t, "0 m", Distance(0))
}

func TestCarbonFootprint(t *testing.T) {
	assert.Equal(t, "500 g CO2e", CarbonFootprint(0.5))
	assert.Equal(t, "1.0 kg CO2e", CarbonFootprint(1))
	assert.Equal(t, "12.3 kg CO2e", CarbonFootprint(12.34))
}
