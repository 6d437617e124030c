package randengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/junction-sim/utils/randengine"
)

func TestEngineDeterministic(t *testing.T) {
	a := randengine.New(42)
	b := randengine.New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestPTrueBounds(t *testing.T) {
	e := randengine.New(1)
	for i := 0; i < 100; i++ {
		assert.False(t, e.PTrue(0))
		assert.True(t, e.PTrue(1))
	}
}

func TestDiscreteDistribution(t *testing.T) {
	e := randengine.New(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, int32(1), e.DiscreteDistribution([]float64{0, 1, 0}))
	}
	counts := make([]int, 2)
	for i := 0; i < 1000; i++ {
		counts[e.DiscreteDistribution([]float64{1, 1})]++
	}
	assert.Greater(t, counts[0], 300)
	assert.Greater(t, counts[1], 300)
}

func TestIntRange(t *testing.T) {
	e := randengine.New(3)
	for i := 0; i < 200; i++ {
		v := e.IntRange(12, 20)
		assert.GreaterOrEqual(t, v, 12)
		assert.LessOrEqual(t, v, 20)
	}
	assert.Equal(t, 5, e.IntRange(5, 5))
	u := e.Uniform(1, 4)
	assert.GreaterOrEqual(t, u, 1.)
	assert.Less(t, u, 4.)
}
