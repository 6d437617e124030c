package trafficlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/junction-sim/entity/road"
	"github.com/tsinghua-fib-lab/junction-sim/utils/config"
)

func newRoads() []entity.IRoad {
	roads := make([]entity.IRoad, 0, entity.RoadCount)
	for _, id := range entity.Roads {
		roads = append(roads, road.NewRoad(id))
	}
	return roads
}

func fill(r entity.IRoad, lane entity.LaneID, n int) {
	for i := 0; i < n; i++ {
		r.Lane(lane).Enqueue(&entity.Vehicle{Road: r.ID(), Lane: lane})
	}
}

func intersection(discipline string) config.Intersection {
	rc, err := config.NewRuntimeConfig(config.Config{
		Intersection: config.Intersection{Discipline: discipline},
	})
	if err != nil {
		panic(err)
	}
	return rc.I
}

func TestGreenDurationBounds(t *testing.T) {
	for w := 0; w <= 200; w++ {
		d := trafficlight.GreenDuration(w, 20, 120, 600)
		assert.GreaterOrEqual(t, d, int32(120))
		assert.LessOrEqual(t, d, int32(600))
		want := int32(w / 2 * 20)
		if w%2 == 1 {
			want += 10
		}
		if want < 120 {
			want = 120
		}
		if want > 600 {
			want = 600
		}
		assert.Equal(t, want, d, "waiting %d", w)
	}
	assert.Equal(t, int32(300), trafficlight.GreenDuration(30, 20, 120, 600))
	assert.Equal(t, int32(600), trafficlight.GreenDuration(60, 20, 120, 600))
}

func TestNewDiscipline(t *testing.T) {
	d, err := trafficlight.NewDiscipline(config.DisciplineRoundRobin)
	require.NoError(t, err)
	assert.Equal(t, config.DisciplineRoundRobin, d.Name())
	d, err = trafficlight.NewDiscipline(config.DisciplineLongestQueue)
	require.NoError(t, err)
	assert.Equal(t, config.DisciplineLongestQueue, d.Name())
	_, err = trafficlight.NewDiscipline("random")
	assert.Error(t, err)
}

func TestRoundRobinIgnoresCounts(t *testing.T) {
	roads := newRoads()
	fill(roads[entity.RoadC], entity.LaneThrough, 10)
	fill(roads[entity.RoadB], entity.LaneThrough, 5)
	d, _ := trafficlight.NewDiscipline(config.DisciplineRoundRobin)
	assert.Equal(t, entity.RoadB, d.Next(entity.RoadA, roads))
	assert.Equal(t, entity.RoadA, d.Next(entity.RoadD, roads))
}

func TestLongestQueuePicksBusiest(t *testing.T) {
	roads := newRoads()
	fill(roads[entity.RoadC], entity.LaneThrough, 6)
	fill(roads[entity.RoadC], entity.LaneSecondary, 4)
	fill(roads[entity.RoadB], entity.LaneThrough, 5)
	// 自由左转车道不计入排队数
	fill(roads[entity.RoadD], entity.LaneFreeLeft, 50)
	d, _ := trafficlight.NewDiscipline(config.DisciplineLongestQueue)
	assert.Equal(t, entity.RoadC, d.Next(entity.RoadA, roads))
}

func TestLongestQueueTies(t *testing.T) {
	roads := newRoads()
	d, _ := trafficlight.NewDiscipline(config.DisciplineLongestQueue)
	// 全部为空时退化为轮转顺序
	assert.Equal(t, entity.RoadB, d.Next(entity.RoadA, roads))
	assert.Equal(t, entity.RoadA, d.Next(entity.RoadD, roads))

	fill(roads[entity.RoadA], entity.LaneThrough, 3)
	fill(roads[entity.RoadC], entity.LaneThrough, 3)
	assert.Equal(t, entity.RoadC, d.Next(entity.RoadB, roads))
	assert.Equal(t, entity.RoadA, d.Next(entity.RoadC, roads))
}

func TestTrafficLightCountdown(t *testing.T) {
	roads := newRoads()
	ic := intersection(config.DisciplineRoundRobin)
	ic.DefaultDuration = 3
	l, err := trafficlight.NewTrafficLight(ic, roads)
	require.NoError(t, err)
	assert.Equal(t, entity.RoadA, l.Green())
	assert.Equal(t, int32(3), l.RemainingTicks())

	l.Prepare()
	assert.False(t, l.Update())
	assert.False(t, l.Update())
	assert.Equal(t, int32(1), l.RemainingTicks())
	assert.True(t, l.Update())
	assert.Equal(t, entity.RoadB, l.Green())
	assert.Equal(t, int32(120), l.Duration())
	assert.Equal(t, int32(120), l.RemainingTicks())
}

func TestTrafficLightDurationFromDemand(t *testing.T) {
	roads := newRoads()
	fill(roads[entity.RoadB], entity.LaneThrough, 60)
	l, err := trafficlight.NewTrafficLight(intersection(config.DisciplineRoundRobin), roads)
	require.NoError(t, err)
	l.Prepare()
	l.Expire()
	assert.True(t, l.Update())
	assert.Equal(t, entity.RoadB, l.Green())
	assert.Equal(t, trafficlight.GreenDuration(60, 20, 120, 600), l.Duration())
	assert.Equal(t, int32(600), l.Duration())
}

func TestTrafficLightApply(t *testing.T) {
	roads := newRoads()
	l, err := trafficlight.NewTrafficLight(intersection(""), roads)
	require.NoError(t, err)
	l.Prepare()
	l.Apply(entity.RoadC)
	for _, r := range roads {
		if r.ID() == entity.RoadC {
			assert.Equal(t, entity.LightGreen, r.Light())
		} else {
			assert.Equal(t, entity.LightRed, r.Light())
		}
	}

	l.SetOk(false)
	assert.True(t, l.Ok())
	l.Prepare()
	assert.False(t, l.Ok())
	assert.False(t, l.Update())
	l.Apply(entity.RoadC)
	for _, r := range roads {
		assert.Equal(t, entity.LightRed, r.Light())
	}
}

func TestNewTrafficLightErrors(t *testing.T) {
	roads := newRoads()
	_, err := trafficlight.NewTrafficLight(intersection(""), roads[:3])
	assert.Error(t, err)

	ic := intersection("")
	ic.InitialRoad = "E"
	_, err = trafficlight.NewTrafficLight(ic, roads)
	assert.ErrorIs(t, err, entity.ErrInvalidRoad)

	swapped := []entity.IRoad{roads[1], roads[0], roads[2], roads[3]}
	_, err = trafficlight.NewTrafficLight(intersection(""), swapped)
	assert.Error(t, err)
}
