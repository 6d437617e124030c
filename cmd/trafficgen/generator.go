package main

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/utils/randengine"
)

// 优先车道以外的车流分布的车道
var otherLanes = []entity.LaneKey{
	{Road: entity.RoadA, Lane: entity.LaneFreeLeft},
	{Road: entity.RoadB, Lane: entity.LaneThrough},
	{Road: entity.RoadB, Lane: entity.LaneSecondary},
	{Road: entity.RoadC, Lane: entity.LaneSecondary},
	{Road: entity.RoadC, Lane: entity.LaneFreeLeft},
	{Road: entity.RoadD, Lane: entity.LaneThrough},
	{Road: entity.RoadD, Lane: entity.LaneSecondary},
}

var priorityLane = entity.LaneKey{Road: entity.RoadA, Lane: entity.LaneSecondary}

// Options 车流生成参数
type Options struct {
	Seed             uint64
	PriorityWeight   float64 // 单车到达落在A路第二直行车道的概率
	BurstProbability float64 // 每次到达变为A路车队的概率
	BurstMin         int
	BurstMax         int
	Speed            float64 // 到达间隔的倍率，0表示不等待
}

// Generator 车辆到达生成器
// 说明：大部分车辆集中在A路第二直行车道，并偶尔出现车队以触发优先模式
type Generator struct {
	opts    Options
	rand    *randengine.Engine
	lanes   []entity.LaneKey // 单车到达的候选车道，第一个为优先车道
	weights []float64        // 与lanes一一对应的权重
}

// NewGenerator 创建车流生成器
// 说明：优先车道权重为PriorityWeight，其余权重均分到otherLanes
func NewGenerator(opts Options) *Generator {
	pw := lo.Clamp(opts.PriorityWeight, 0, 1)
	weights := []float64{pw}
	for range otherLanes {
		weights = append(weights, (1-pw)/float64(len(otherLanes)))
	}
	return &Generator{
		opts:    opts,
		rand:    randengine.New(opts.Seed),
		lanes:   append([]entity.LaneKey{priorityLane}, otherLanes...),
		weights: weights,
	}
}

// Next 生成下一批到达车辆所在车道，单车到达时长度为1
func (g *Generator) Next() []entity.LaneKey {
	if g.rand.PTrue(g.opts.BurstProbability) {
		n := g.rand.IntRange(g.opts.BurstMin, g.opts.BurstMax)
		burst := make([]entity.LaneKey, n)
		for i := range burst {
			burst[i] = priorityLane
		}
		return burst
	}
	return []entity.LaneKey{g.lanes[g.rand.DiscreteDistribution(g.weights)]}
}

// Delay 下一次到达前的等待时间
// 说明：优先车道到达更密集（0.3~0.6秒），其余车道0.8~1.3秒
func (g *Generator) Delay(last entity.LaneKey) time.Duration {
	var sec float64
	if last == priorityLane {
		sec = g.rand.Uniform(0.3, 0.6)
	} else {
		sec = g.rand.Uniform(0.8, 1.3)
	}
	return time.Duration(sec * g.opts.Speed * float64(time.Second))
}

// Run 持续生成车辆并交给emit，直到生成count辆（count<=0表示不限）或ctx取消
// 返回：已发送的车辆数与emit返回的第一个错误
func (g *Generator) Run(ctx context.Context, count int, emit func(entity.LaneKey) error) (int, error) {
	sent := 0
	for {
		keys := g.Next()
		if len(keys) > 1 {
			log.Infof("BURST: %d vehicles on %v", len(keys), keys[0])
		}
		for _, k := range keys {
			if count > 0 && sent >= count {
				return sent, nil
			}
			if err := emit(k); err != nil {
				return sent, err
			}
			sent++
		}
		if count > 0 && sent >= count {
			return sent, nil
		}
		if d := g.Delay(keys[len(keys)-1]); d > 0 {
			select {
			case <-ctx.Done():
				return sent, nil
			case <-time.After(d):
			}
		} else if ctx.Err() != nil {
			return sent, nil
		}
	}
}
