package junction

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/entity/road"
)

// LaneSnapshot 车道快照
type LaneSnapshot struct {
	Key      string        `json:"key"`
	Road     entity.RoadID `json:"road"`
	Lane     entity.LaneID `json:"lane"`
	Role     string        `json:"role"`
	Count    int           `json:"count"`
	Vehicles []string      `json:"vehicles,omitempty"` // 按到达顺序的车辆id
}

// RoadSnapshot 道路快照
type RoadSnapshot struct {
	Road    entity.RoadID     `json:"road"`
	Light   entity.LightState `json:"light"`
	Waiting int               `json:"waiting"`
	Lanes   []LaneSnapshot    `json:"lanes"`
}

// Snapshot 控制器状态的不可变拷贝，供渲染与诊断读取
type Snapshot struct {
	Tick       int64          `json:"tick"` // 下一次Update的步数
	Mode       entity.Mode    `json:"mode"`
	Pinned     *entity.RoadID `json:"pinned,omitempty"`
	GreenRoad  entity.RoadID  `json:"green_road"`
	Remaining  int32          `json:"remaining"`
	Duration   int32          `json:"duration"`
	Discipline string         `json:"discipline"`
	Ok         bool           `json:"ok"`
	Roads      []RoadSnapshot `json:"roads"`
}

// Snapshot 获取控制器状态快照
// 参数：withVehicles-是否包含每条车道的车辆id列表
func (c *Controller) Snapshot(withVehicles bool) Snapshot {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return Snapshot{
		Tick:       c.tick,
		Mode:       c.priority.mode,
		Pinned:     c.pinnedRoad(),
		GreenRoad:  c.greenRoad(),
		Remaining:  c.trafficLight.RemainingTicks(),
		Duration:   c.trafficLight.Duration(),
		Discipline: c.trafficLight.Discipline(),
		Ok:         c.trafficLight.Ok(),
		Roads: lo.Map(c.roads[:], func(r *road.Road, _ int) RoadSnapshot {
			return RoadSnapshot{
				Road:    r.ID(),
				Light:   r.Light(),
				Waiting: r.WaitingCount(),
				Lanes: lo.Map(r.Lanes(), func(l entity.ILane, _ int) LaneSnapshot {
					return laneSnapshot(l, withVehicles)
				}),
			}
		}),
	}
}

func laneSnapshot(l entity.ILane, withVehicles bool) LaneSnapshot {
	s := LaneSnapshot{
		Key:   l.Key().String(),
		Road:  l.Key().Road,
		Lane:  l.Key().Lane,
		Role:  l.Role().String(),
		Count: l.Count(),
	}
	if withVehicles {
		s.Vehicles = lo.Map(l.Vehicles(), func(v *entity.Vehicle, _ int) string { return v.ID })
	}
	return s
}

// Lane 获取单条车道快照
func (c *Controller) Lane(roadID entity.RoadID, laneID entity.LaneID, withVehicles bool) (LaneSnapshot, error) {
	l, err := c.lane(roadID, laneID)
	if err != nil {
		return LaneSnapshot{}, err
	}
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return laneSnapshot(l, withVehicles), nil
}

func (c *Controller) lane(roadID entity.RoadID, laneID entity.LaneID) (entity.ILane, error) {
	if !roadID.Valid() {
		return nil, fmt.Errorf("%w: %d", entity.ErrInvalidRoad, int32(roadID))
	}
	if !laneID.Valid() {
		return nil, fmt.Errorf("%w: %d", entity.ErrInvalidLane, int32(laneID))
	}
	return c.roads[roadID].Lane(laneID), nil
}

// LaneCount 车道排队车辆数
func (c *Controller) LaneCount(roadID entity.RoadID, laneID entity.LaneID) (int, error) {
	l, err := c.lane(roadID, laneID)
	if err != nil {
		return 0, err
	}
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return l.Count(), nil
}

// LightState 道路受控车道的信号灯状态
func (c *Controller) LightState(roadID entity.RoadID) (entity.LightState, error) {
	if !roadID.Valid() {
		return entity.LightRed, fmt.Errorf("%w: %d", entity.ErrInvalidRoad, int32(roadID))
	}
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return c.roads[roadID].Light(), nil
}

// Mode 控制器模式
func (c *Controller) Mode() entity.Mode {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return c.priority.mode
}

// GreenRoad 当前绿灯道路（优先模式下为固定道路）
func (c *Controller) GreenRoad() entity.RoadID {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return c.greenRoad()
}

// PinnedRoad 优先模式下固定绿灯的道路
// 返回：正常模式下第二个返回值为false
func (c *Controller) PinnedRoad() (entity.RoadID, bool) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	if p := c.pinnedRoad(); p != nil {
		return *p, true
	}
	return 0, false
}

// RemainingTicks 当前相位剩余时长（步）
func (c *Controller) RemainingTicks() int32 {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return c.trafficLight.RemainingTicks()
}

// Duration 当前相位总时长（步）
func (c *Controller) Duration() int32 {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return c.trafficLight.Duration()
}

// Tick 下一次Update的步数
func (c *Controller) Tick() int64 {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return c.tick
}
