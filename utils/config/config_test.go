package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/junction-sim/utils/config"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	rc, err := config.NewRuntimeConfig(config.Config{})
	require.NoError(t, err)
	assert.Equal(t, "A", rc.I.InitialRoad)
	assert.Equal(t, config.DisciplineRoundRobin, rc.I.Discipline)
	assert.Equal(t, int32(180), rc.I.DefaultDuration)
	assert.Equal(t, int32(120), rc.I.MinDuration)
	assert.Equal(t, int32(600), rc.I.MaxDuration)
	assert.Equal(t, int32(20), rc.I.VehicleTime)
	assert.Equal(t, "A", rc.I.Priority.Road)
	assert.Equal(t, int32(2), rc.I.Priority.Lane)
	assert.Equal(t, 10, rc.I.Priority.Enter)
	assert.Equal(t, 5, rc.I.Priority.Exit)
	assert.Equal(t, int32(20), rc.R.GatedInterval)
	assert.Equal(t, int32(20), rc.R.FreeLeftInterval)
	assert.Equal(t, 0.5, rc.All.Input.PollInterval)
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
control:
  step:
    start: 0
    total: 3600
    interval: 0.0166
intersection:
  discipline: longest_queue
  min_duration: 60
  max_duration: 300
  vehicle_time: 10
  priority:
    enter: 8
    exit: 3
release:
  gated_interval: 5
  probability: 0.05
  seed: 11
input:
  socket: ":5000"
  dir: data/
output:
  sqlite: events
  sample_interval: 60
`)
	c, err := config.Parse(data)
	require.NoError(t, err)
	rc, err := config.NewRuntimeConfig(c)
	require.NoError(t, err)
	assert.Equal(t, int32(3600), rc.C.Step.Total)
	assert.Equal(t, config.DisciplineLongestQueue, rc.I.Discipline)
	assert.Equal(t, int32(60), rc.I.MinDuration)
	assert.Equal(t, int32(300), rc.I.MaxDuration)
	assert.Equal(t, 8, rc.I.Priority.Enter)
	assert.Equal(t, 3, rc.I.Priority.Exit)
	assert.Equal(t, int32(5), rc.R.GatedInterval)
	assert.Equal(t, int32(20), rc.R.FreeLeftInterval)
	assert.Equal(t, 0.05, rc.R.Probability)
	assert.Equal(t, uint64(11), rc.R.Seed)
	assert.Equal(t, ":5000", rc.All.Input.Socket)
	assert.Equal(t, "events", rc.All.Output.SQLite)
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := config.Parse([]byte("control:\n  step:\n    totl: 3\n"))
	assert.Error(t, err)
}

func TestRuntimeConfigValidation(t *testing.T) {
	cases := map[string]config.Config{
		"discipline":  {Intersection: config.Intersection{Discipline: "random"}},
		"band":        {Intersection: config.Intersection{MinDuration: 300, MaxDuration: 100}},
		"hysteresis":  {Intersection: config.Intersection{Priority: config.Priority{Enter: 3, Exit: 6}}},
		"probability": {Release: config.Release{Probability: 1.5}},
		"step":        {Control: config.Control{Step: config.ControlStep{Total: -1}}},
	}
	for name, c := range cases {
		_, err := config.NewRuntimeConfig(c)
		assert.Error(t, err, name)
	}
}
