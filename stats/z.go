package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	return dist.Quantile(area)
}

// WinRate is a win fraction with a confidence interval around it. Ties
// count as half a win.
type WinRate struct {
	Rate float64 `yaml:"rate"`
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// WinRateInterval computes the Wilson score interval for wins and ties out
// of n games at the given confidence (0-100).
func WinRateInterval(wins, ties, n int, confidenceInterval float64) WinRate {
	if n == 0 {
		return WinRate{}
	}
	p := (float64(wins) + float64(ties)/2) / float64(n)
	z := ZVal(confidenceInterval)
	nf := float64(n)
	denom := 1 + z*z/nf
	center := (p + z*z/(2*nf)) / denom
	half := z * math.Sqrt(p*(1-p)/nf+z*z/(4*nf*nf)) / denom
	return WinRate{
		Rate: p,
		Low:  math.Max(0, center-half),
		High: math.Min(1, center+half),
	}
}
