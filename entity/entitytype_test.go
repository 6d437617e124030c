package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/junction-sim/entity"
)

func TestParseRoad(t *testing.T) {
	for s, want := range map[string]entity.RoadID{
		"A": entity.RoadA, "b": entity.RoadB, "C": entity.RoadC, "d": entity.RoadD,
	} {
		got, err := entity.ParseRoad(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, s := range []string{"", "E", "AB", "1"} {
		_, err := entity.ParseRoad(s)
		assert.ErrorIs(t, err, entity.ErrInvalidRoad)
	}
}

func TestTurnMapping(t *testing.T) {
	straight := map[entity.RoadID]entity.RoadID{
		entity.RoadA: entity.RoadC, entity.RoadB: entity.RoadD,
		entity.RoadC: entity.RoadA, entity.RoadD: entity.RoadB,
	}
	left := map[entity.RoadID]entity.RoadID{
		entity.RoadA: entity.RoadB, entity.RoadB: entity.RoadC,
		entity.RoadC: entity.RoadD, entity.RoadD: entity.RoadA,
	}
	for _, r := range entity.Roads {
		assert.Equal(t, straight[r], entity.Destination(r, entity.LaneThrough))
		assert.Equal(t, straight[r], entity.Destination(r, entity.LaneSecondary))
		assert.Equal(t, left[r], entity.Destination(r, entity.LaneFreeLeft))
	}
}

func TestLaneNumbers(t *testing.T) {
	k, err := entity.LaneKeyFromNumber(2)
	require.NoError(t, err)
	assert.Equal(t, entity.LaneKey{Road: entity.RoadA, Lane: entity.LaneSecondary}, k)
	k, err = entity.LaneKeyFromNumber(12)
	require.NoError(t, err)
	assert.Equal(t, entity.LaneKey{Road: entity.RoadD, Lane: entity.LaneFreeLeft}, k)
	assert.Equal(t, int32(12), k.Number())
	assert.Equal(t, "DL3", k.String())

	for n := int32(1); n <= 12; n++ {
		k, err := entity.LaneKeyFromNumber(n)
		require.NoError(t, err)
		assert.Equal(t, n, k.Number())
	}
	_, err = entity.LaneKeyFromNumber(0)
	assert.ErrorIs(t, err, entity.ErrInvalidLane)
	_, err = entity.LaneKeyFromNumber(13)
	assert.ErrorIs(t, err, entity.ErrInvalidLane)
}

func TestRoles(t *testing.T) {
	assert.True(t, entity.LaneThrough.Role().Gated())
	assert.True(t, entity.LaneSecondary.Role().Gated())
	assert.False(t, entity.LaneFreeLeft.Role().Gated())
	assert.Equal(t, entity.RoleUnspecified, entity.LaneID(4).Role())
	assert.False(t, entity.LaneID(0).Valid())
}

func TestEventJSON(t *testing.T) {
	b, err := json.Marshal(entity.ReleaseEvent{
		Tick: 3, VehicleID: "v", Road: entity.RoadB, Lane: entity.LaneFreeLeft, Destination: entity.RoadC,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tick":3,"vehicle_id":"v","road":"B","lane":3,"destination":"C","waited":0}`, string(b))

	var r entity.RoadID
	require.NoError(t, json.Unmarshal([]byte(`"d"`), &r))
	assert.Equal(t, entity.RoadD, r)
}
