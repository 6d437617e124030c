package junction

import (
	"fmt"

	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/utils/config"
)

// priorityMonitor 优先模式状态机
// 功能：监控一条车道的排队数，按双阈值迟滞在NORMAL与PRIORITY之间切换
// 说明：NORMAL且排队数 > enter 时进入PRIORITY，PRIORITY且排队数 < exit 时退出；
// 排队数位于[exit, enter]之间时保持当前模式
type priorityMonitor struct {
	disabled bool
	road     entity.RoadID // 被监控车道所在道路，即优先模式下固定绿灯的道路
	lane     entity.ILane  // 被监控车道
	enter    int
	exit     int

	mode      entity.Mode
	enteredAt int64 // 最近一次进入优先模式的步数
}

func newPriorityMonitor(cfg config.Priority, roads []entity.IRoad) (*priorityMonitor, error) {
	roadID, err := entity.ParseRoad(cfg.Road)
	if err != nil {
		return nil, fmt.Errorf("priority road: %w", err)
	}
	laneID := entity.LaneID(cfg.Lane)
	if !laneID.Valid() {
		return nil, fmt.Errorf("priority lane: %w: %d", entity.ErrInvalidLane, cfg.Lane)
	}
	return &priorityMonitor{
		disabled: cfg.Disabled,
		road:     roadID,
		lane:     roads[roadID].Lane(laneID),
		enter:    cfg.Enter,
		exit:     cfg.Exit,
		mode:     entity.ModeNormal,
	}, nil
}

// check 检查迟滞条件并切换模式
// 返回：本步是否退出了优先模式
func (p *priorityMonitor) check(tick int64) (exited bool) {
	if p.disabled {
		return false
	}
	n := p.lane.Count()
	switch p.mode {
	case entity.ModeNormal:
		if n > p.enter {
			p.mode = entity.ModePriority
			p.enteredAt = tick
			log.Infof("tick %d: lane %v has %d vehicles (> %d), enter PRIORITY, pin road %v",
				tick, p.lane.Key(), n, p.enter, p.road)
		}
	case entity.ModePriority:
		if n < p.exit {
			p.mode = entity.ModeNormal
			log.Infof("tick %d: lane %v has %d vehicles (< %d), exit PRIORITY after %d ticks",
				tick, p.lane.Key(), n, p.exit, tick-p.enteredAt)
			return true
		}
	default:
		log.Panicf("unknown mode %v", p.mode)
	}
	return false
}
