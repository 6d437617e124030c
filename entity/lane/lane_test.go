package lane_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/entity/lane"
)

func newVehicle(id int) *entity.Vehicle {
	return &entity.Vehicle{ID: fmt.Sprint(id), Road: entity.RoadA, Lane: entity.LaneThrough, ArrivalTick: int64(id)}
}

func TestLaneFIFO(t *testing.T) {
	l := lane.NewLane(entity.LaneKey{Road: entity.RoadA, Lane: entity.LaneThrough})
	for i := 1; i <= 3; i++ {
		l.Enqueue(newVehicle(i))
	}
	assert.Equal(t, 3, l.Count())

	head, ok := l.Peek()
	assert.True(t, ok)
	assert.Equal(t, "1", head.ID)
	assert.Equal(t, 3, l.Count())

	for i := 1; i <= 3; i++ {
		v, ok := l.Dequeue()
		assert.True(t, ok)
		assert.Equal(t, fmt.Sprint(i), v.ID)
	}
	assert.Equal(t, 0, l.Count())
}

func TestLaneEmptyDequeue(t *testing.T) {
	l := lane.NewLane(entity.LaneKey{Road: entity.RoadC, Lane: entity.LaneFreeLeft})
	v, ok := l.Dequeue()
	assert.False(t, ok)
	assert.Nil(t, v)
	_, ok = l.Peek()
	assert.False(t, ok)
	assert.Equal(t, 0, l.Count())

	// 空队列出队后计数不会变为负数
	l.Enqueue(newVehicle(1))
	assert.Equal(t, 1, l.Count())
}

func TestLaneInterleaved(t *testing.T) {
	l := lane.NewLane(entity.LaneKey{Road: entity.RoadB, Lane: entity.LaneSecondary})
	l.Enqueue(newVehicle(1))
	l.Enqueue(newVehicle(2))
	v, _ := l.Dequeue()
	assert.Equal(t, "1", v.ID)
	l.Enqueue(newVehicle(3))
	ids := make([]string, 0)
	for _, v := range l.Vehicles() {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"2", "3"}, ids)
}

func TestLaneRole(t *testing.T) {
	assert.Equal(t, entity.RoleThrough, lane.NewLane(entity.LaneKey{Lane: entity.LaneThrough}).Role())
	assert.Equal(t, entity.RoleSecondary, lane.NewLane(entity.LaneKey{Lane: entity.LaneSecondary}).Role())
	assert.Equal(t, entity.RoleFreeLeft, lane.NewLane(entity.LaneKey{Lane: entity.LaneFreeLeft}).Role())
	assert.Panics(t, func() { lane.NewLane(entity.LaneKey{Lane: 7}) })
}

func TestLaneImplementsInterface(t *testing.T) {
	var _ entity.ILane = lane.NewLane(entity.LaneKey{Lane: entity.LaneThrough})
}
