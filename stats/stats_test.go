package stats

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
	}
}

func TestMerge(t *testing.T) {
	is := is.New(t)
	scores := []float64{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}
	whole := &Statistic{}
	a, b := &Statistic{}, &Statistic{}
	for i, sc := range scores {
		whole.Push(sc)
		if i < 4 {
			a.Push(sc)
		} else {
			b.Push(sc)
		}
	}
	a.Merge(b)
	is.Equal(a.Iterations(), 10)
	is.True(FuzzyEqual(a.Mean(), whole.Mean()))
	is.True(FuzzyEqual(a.Variance(), whole.Variance()))
	is.Equal(a.Min(), 10.0)
	is.Equal(a.Max(), 124.0)

	empty := &Statistic{}
	empty.Merge(whole)
	is.True(FuzzyEqual(empty.Mean(), 47.2))
	whole.Merge(&Statistic{})
	is.Equal(whole.Iterations(), 10)
}

func TestZVal(t *testing.T) {
	assert.InDelta(t, 1.959964, ZVal(95), 1e-5)
	assert.InDelta(t, 2.575829, ZVal(99), 1e-5)
}

func TestWinRateInterval(t *testing.T) {
	is := is.New(t)
	wr := WinRateInterval(60, 0, 100, 95)
	assert.InDelta(t, 0.6, wr.Rate, 1e-9)
	is.True(wr.Low < 0.6 && wr.Low > 0.49)
	is.True(wr.High > 0.6 && wr.High < 0.7)

	wr = WinRateInterval(0, 10, 10, 95)
	assert.InDelta(t, 0.5, wr.Rate, 1e-9)

	wr = WinRateInterval(10, 0, 10, 95)
	assert.InDelta(t, 1.0, wr.High, 1e-9)
	is.Equal(WinRateInterval(0, 0, 0, 95), WinRate{})
}
