package road

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/entity/lane"
)

// Road 道路实体
// 功能：路口的一个进口道，包含直行、第二直行、自由左转三条车道
// 说明：两条受控车道共享同一个信号灯，自由左转车道不受信号灯控制
type Road struct {
	id    entity.RoadID
	lanes [entity.LaneCount]*lane.Lane // 按车道编号1..3排列
	light entity.LightState
}

// NewRoad 创建并初始化一个新的Road实例
// 参数：id-道路标识
// 返回：三条车道均为空、信号灯为红灯的道路
func NewRoad(id entity.RoadID) *Road {
	if !id.Valid() {
		log.Panicf("bad road id %d", id)
	}
	r := &Road{id: id, light: entity.LightRed}
	for i, laneID := range entity.Lanes {
		r.lanes[i] = lane.NewLane(entity.LaneKey{Road: id, Lane: laneID})
	}
	return r
}

func (r *Road) String() string {
	return fmt.Sprintf("Road %v(%v, L1=%d L2=%d L3=%d)",
		r.id, r.light, r.lanes[0].Count(), r.lanes[1].Count(), r.lanes[2].Count())
}

// ID 道路标识
func (r *Road) ID() entity.RoadID {
	return r.id
}

// Lane 获取车道
// 返回：车道编号非法时返回nil
func (r *Road) Lane(id entity.LaneID) entity.ILane {
	if !id.Valid() {
		return nil
	}
	return r.lanes[id-1]
}

// Lanes 按编号顺序返回三条车道
func (r *Road) Lanes() []entity.ILane {
	return lo.Map(r.lanes[:], func(l *lane.Lane, _ int) entity.ILane { return l })
}

// WaitingCount 受控车道排队车辆数之和
// 说明：自由左转车道不参与绿灯时长计算与贪心选路
func (r *Road) WaitingCount() int {
	n := 0
	for _, l := range r.lanes {
		if l.Role().Gated() {
			n += l.Count()
		}
	}
	return n
}

// Light 受控车道的信号灯状态
func (r *Road) Light() entity.LightState {
	return r.light
}

// SetLightState 设置受控车道的信号灯状态
func (r *Road) SetLightState(s entity.LightState) {
	r.light = s
}
