package road_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/entity/road"
)

func TestNewRoad(t *testing.T) {
	r := road.NewRoad(entity.RoadB)
	assert.Equal(t, entity.RoadB, r.ID())
	assert.Equal(t, entity.LightRed, r.Light())
	assert.Len(t, r.Lanes(), entity.LaneCount)
	for i, l := range r.Lanes() {
		assert.Equal(t, entity.LaneKey{Road: entity.RoadB, Lane: entity.Lanes[i]}, l.Key())
		assert.Equal(t, 0, l.Count())
	}
	assert.Nil(t, r.Lane(0))
	assert.Nil(t, r.Lane(4))
	assert.Panics(t, func() { road.NewRoad(entity.RoadID(9)) })
}

func TestRoadWaitingCount(t *testing.T) {
	r := road.NewRoad(entity.RoadA)
	for i := 0; i < 3; i++ {
		r.Lane(entity.LaneThrough).Enqueue(&entity.Vehicle{})
	}
	for i := 0; i < 2; i++ {
		r.Lane(entity.LaneSecondary).Enqueue(&entity.Vehicle{})
	}
	for i := 0; i < 7; i++ {
		r.Lane(entity.LaneFreeLeft).Enqueue(&entity.Vehicle{})
	}
	assert.Equal(t, 5, r.WaitingCount())
}

func TestRoadLight(t *testing.T) {
	r := road.NewRoad(entity.RoadD)
	r.SetLightState(entity.LightGreen)
	assert.Equal(t, entity.LightGreen, r.Light())
	r.SetLightState(entity.LightRed)
	assert.Equal(t, entity.LightRed, r.Light())
	assert.Contains(t, r.String(), "Road D(RED")
}

func TestRoadImplementsInterface(t *testing.T) {
	var _ entity.IRoad = road.NewRoad(entity.RoadA)
}
