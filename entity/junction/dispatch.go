package junction

import (
	"fmt"

	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/utils/config"
)

// gatedOrder 受控车道的放行顺序，直行车道优先于第二直行车道
var gatedOrder = [...]entity.LaneID{entity.LaneThrough, entity.LaneSecondary}

// releasePolicy 放行节流策略
// 功能：决定每一步每个放行位（每条道路的受控车道组、每条自由左转车道）是否放行一辆车
// 说明：
// 1. 默认按固定间隔节流：同一放行位两次放行至少间隔interval步，初始即可放行
// 2. probability>0时改为每步对有车的放行位做一次伯努利抽样
// 3. 每个放行位每步最多放行一辆车
type releasePolicy struct {
	gatedInterval    int64
	freeLeftInterval int64
	probability      float64
	random           IRandom

	nextGated    [entity.RoadCount]int64 // 受控车道组下一次可放行的步数
	nextFreeLeft [entity.RoadCount]int64 // 自由左转车道下一次可放行的步数
}

func newReleasePolicy(cfg config.Release) *releasePolicy {
	return &releasePolicy{
		gatedInterval:    int64(cfg.GatedInterval),
		freeLeftInterval: int64(cfg.FreeLeftInterval),
		probability:      cfg.Probability,
	}
}

func (r *releasePolicy) String() string {
	if r.probability > 0 {
		return fmt.Sprintf("bernoulli(p=%g)", r.probability)
	}
	return fmt.Sprintf("interval(gated=%d, free-left=%d)", r.gatedInterval, r.freeLeftInterval)
}

// ready 放行位在tick是否可以放行，可以放行时记录下一次可放行的步数
func (r *releasePolicy) ready(next *int64, interval int64, tick int64) bool {
	if r.probability > 0 && r.random != nil {
		return r.random.PTrue(r.probability)
	}
	if tick < *next {
		return false
	}
	*next = tick + interval
	return true
}

// dispatch 按放行策略出队（需持有锁）
// 算法说明：
// 1. 按A..D依次处理每条道路
// 2. 绿灯时取第一条非空受控车道（直行优先）的队首车辆
// 3. 自由左转车道非空时即可放行，与信号灯无关
func (c *Controller) dispatch(tick int64) []entity.ReleaseEvent {
	events := make([]entity.ReleaseEvent, 0)
	for i, r := range c.roads {
		if r.Light() == entity.LightGreen {
			for _, laneID := range gatedOrder {
				lane := r.Lane(laneID)
				if lane.Count() == 0 {
					continue
				}
				if c.release.ready(&c.release.nextGated[i], c.release.gatedInterval, tick) {
					events = append(events, release(lane, tick))
				}
				break
			}
		}
		if lane := r.Lane(entity.LaneFreeLeft); lane.Count() > 0 {
			if c.release.ready(&c.release.nextFreeLeft[i], c.release.freeLeftInterval, tick) {
				events = append(events, release(lane, tick))
			}
		}
	}
	return events
}

// release 车道队首出队并生成放行事件，调用前须确认车道非空
func release(lane entity.ILane, tick int64) entity.ReleaseEvent {
	v, ok := lane.Dequeue()
	if !ok {
		log.Panicf("release from empty lane %v", lane.Key())
	}
	return entity.ReleaseEvent{
		Tick:        tick,
		VehicleID:   v.ID,
		Road:        v.Road,
		Lane:        v.Lane,
		Destination: entity.Destination(v.Road, v.Lane),
		Waited:      tick - v.ArrivalTick,
	}
}
