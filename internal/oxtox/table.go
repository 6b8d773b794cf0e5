package oxtox

// cnsCoefficient is one row of the NOAA-derived piecewise-linear CNS
// oxygen toxicity time limit table: for a pO2 in [Low, High], the CNS time
// limit in minutes is Slope*pO2 + Intercept.
type cnsCoefficient struct {
	Low, High        float64
	Slope, Intercept float64
}

// cnsTable is the NOAA single-exposure CNS oxygen toxicity time limits,
// linearised into seven pO2 bands.
var cnsTable = []cnsCoefficient{
	{0.5, 0.6, -1800, 1800},
	{0.6, 0.7, -1500, 1620},
	{0.7, 0.8, -1200, 1410},
	{0.8, 0.9, -900, 1170},
	{0.9, 1.1, -600, 900},
	{1.1, 1.5, -300, 570},
	{1.5, 1.6, -750, 1245},
}

// cnsTimeLimitMinutes returns the NOAA CNS single-exposure time limit for
// the given pO2, and whether a table row matched. Bands are inclusive on
// both ends and checked in table order, so a pO2 sitting exactly on a
// shared boundary (e.g. 0.6) resolves to the earlier row.
func cnsTimeLimitMinutes(po2 float64) (float64, bool) {
	for _, row := range cnsTable {
		if po2 >= row.Low && po2 <= row.High {
			return row.Slope*po2 + row.Intercept, true
		}
	}
	return 0, false
}
