package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/utils/input"
)

func defaultOptions() Options {
	return Options{
		Seed:             7,
		PriorityWeight:   0.6,
		BurstProbability: 0.15,
		BurstMin:         12,
		BurstMax:         20,
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(defaultOptions())
	b := NewGenerator(defaultOptions())
	for i := 0; i < 200; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestGeneratorWeighting(t *testing.T) {
	opts := defaultOptions()
	opts.BurstProbability = 0
	g := NewGenerator(opts)
	n, priority := 10000, 0
	for i := 0; i < n; i++ {
		keys := g.Next()
		require.Len(t, keys, 1)
		if keys[0] == priorityLane {
			priority++
		} else {
			assert.Contains(t, otherLanes, keys[0])
		}
	}
	share := float64(priority) / float64(n)
	assert.InDelta(t, 0.6, share, 0.05)
}

func TestGeneratorWeightBounds(t *testing.T) {
	opts := defaultOptions()
	opts.BurstProbability = 0
	opts.PriorityWeight = 1
	all := NewGenerator(opts)
	opts.PriorityWeight = 0
	none := NewGenerator(opts)
	seen := make(map[entity.LaneKey]bool)
	for i := 0; i < 2000; i++ {
		assert.Equal(t, []entity.LaneKey{priorityLane}, all.Next())
		k := none.Next()[0]
		assert.NotEqual(t, priorityLane, k)
		seen[k] = true
	}
	// 其余车道均分权重，都会出现
	assert.Len(t, seen, len(otherLanes))
}

func TestGeneratorBurst(t *testing.T) {
	opts := defaultOptions()
	opts.BurstProbability = 1
	g := NewGenerator(opts)
	for i := 0; i < 50; i++ {
		keys := g.Next()
		assert.GreaterOrEqual(t, len(keys), 12)
		assert.LessOrEqual(t, len(keys), 20)
		for _, k := range keys {
			assert.Equal(t, priorityLane, k)
		}
	}
}

func TestGeneratorRunCount(t *testing.T) {
	g := NewGenerator(defaultOptions())
	var buf bytes.Buffer
	sent, err := g.Run(context.Background(), 100, lineEmitter(&buf))
	require.NoError(t, err)
	assert.Equal(t, 100, sent)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 100)
	for _, line := range lines {
		_, _, err := input.ParseToken(line)
		assert.NoError(t, err, line)
	}
}

func TestGeneratorRunEmitError(t *testing.T) {
	g := NewGenerator(defaultOptions())
	boom := errors.New("boom")
	sent, err := g.Run(context.Background(), 0, func(entity.LaneKey) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, sent)
}

func TestFileEmitter(t *testing.T) {
	dir := t.TempDir()
	emit := fileEmitter(dir)
	require.NoError(t, emit(entity.LaneKey{Road: entity.RoadA, Lane: entity.LaneSecondary}))
	require.NoError(t, emit(entity.LaneKey{Road: entity.RoadA, Lane: entity.LaneFreeLeft}))
	require.NoError(t, emit(entity.LaneKey{Road: entity.RoadD, Lane: entity.LaneThrough}))

	data, err := os.ReadFile(filepath.Join(dir, input.RoadFile(entity.RoadA)))
	require.NoError(t, err)
	assert.Equal(t, "L2\nL3\n", string(data))
	data, err = os.ReadFile(filepath.Join(dir, input.RoadFile(entity.RoadD)))
	require.NoError(t, err)
	road, lane, err := input.ParseRoadLine(entity.RoadD, strings.TrimSpace(string(data)))
	require.NoError(t, err)
	assert.Equal(t, entity.RoadD, road)
	assert.Equal(t, entity.LaneThrough, lane)
}
