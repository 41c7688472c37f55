package strategy

import "math/rand"

// sampleExitYear draws an exit year in [2, fundLife] with triangular weights
// peaking around 60% of fund life. Venture exits cluster mid-to-late life;
// a uniform draw would front-load distributions unrealistically.
func sampleExitYear(rng *rand.Rand, fundLife int) int {
	if fundLife <= 2 {
		return fundLife
	}

	peak := float64(fundLife) * 0.6
	weights := make([]float64, 0, fundLife-1)
	total := 0.0
	for year := 2; year <= fundLife; year++ {
		d := float64(year) - peak
		if d < 0 {
			d = -d
		}
		w := float64(fundLife) - d
		if w < 0.5 {
			w = 0.5
		}
		weights = append(weights, w)
		total += w
	}

	draw := rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if draw <= cum {
			return 2 + i
		}
	}
	return fundLife
}

// sampleEarlyExitYear draws a year in [1, min(maxYear, fundLife)] uniformly.
// Used for revenue-share collection, which completes in the first half of
// fund life.
func sampleEarlyExitYear(rng *rand.Rand, fundLife, maxYear int) int {
	upper := maxYear
	if fundLife < upper {
		upper = fundLife
	}
	if upper <= 1 {
		return 1
	}
	return 1 + rng.Intn(upper)
}
