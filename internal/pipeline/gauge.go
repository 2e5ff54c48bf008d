package pipeline

import "github.com/theirongolddev/lifeclock/internal/model"

// bandMarks are the band edges as fractions of the lifespan.
var bandMarks = [5]float64{0, 0.25, 0.5, 0.75, 1}

// GaugeBands splits [0, lifespanYears] into four contiguous bands at the
// 25/50/75% marks. Every band is half-open except the last, which is
// closed so the lifespan itself is covered.
func GaugeBands(lifespanYears int) [4]model.Band {
	l := float64(lifespanYears)
	var bands [4]model.Band
	for i := range bands {
		bands[i] = model.Band{
			Low:           bandMarks[i] * l,
			High:          bandMarks[i+1] * l,
			HighInclusive: i == len(bands)-1,
			Severity:      model.Severity(i),
		}
	}
	return bands
}

// BandFor returns the index of the band containing v, or -1 when v lies
// outside every band (negative, or past the lifespan).
func BandFor(v float64, bands [4]model.Band) int {
	for i, b := range bands {
		if b.Contains(v) {
			return i
		}
	}
	return -1
}
