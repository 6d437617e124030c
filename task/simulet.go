package task

import (
	"flag"
	"time"

	"github.com/tsinghua-fib-lab/junction-sim/entity/junction"
	"github.com/tsinghua-fib-lab/junction-sim/utils/recorder"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// prepare 推进时钟并输出心跳日志
func (ctx *Context) prepare() {
	ctx.clock.Step()
	step := ctx.clock.InternalStep
	if *heartBeatInterval > 0 && step%int64(*heartBeatInterval) == 0 {
		h, m, s := ctx.clock.GetHourMinuteSecond()
		snap := ctx.controller.Snapshot(false)
		log.Infof("STEP: %d(%d:%d:%.2f) mode=%v green=%v remaining=%d released=%d",
			step, h, m, s, snap.Mode, snap.GreenRoad, snap.Remaining, ctx.released)
	}
}

// update 路口控制器推进一步，并输出放行事件与排队采样
func (ctx *Context) update() junction.TickResult {
	res := ctx.controller.Update()
	for _, e := range res.Events {
		ctx.recorder.RecordRelease(e)
	}
	ctx.released += int64(len(res.Events))
	if res.PhaseEnd {
		log.Debugf("tick %d: green %v for %d ticks", res.Tick, res.GreenRoad, res.Duration)
	}
	if interval := int64(ctx.runtimeConfig.All.Output.SampleInterval); interval > 0 && res.Tick%interval == 0 {
		ctx.recorder.RecordSample(ctx.sample(res))
	}
	return res
}

// sample 以当前车道排队数构造一次采样
func (ctx *Context) sample(res junction.TickResult) recorder.Sample {
	snap := ctx.controller.Snapshot(false)
	s := recorder.Sample{
		Tick:   res.Tick,
		Mode:   res.Mode.String(),
		Green:  res.GreenRoad.String(),
		Counts: make(map[string]int),
	}
	for _, r := range snap.Roads {
		for _, l := range r.Lanes {
			s.Counts[l.Key] = l.Count
		}
	}
	return s
}

// Run 运行仿真直到结束步或收到Stop
// 说明：时钟配置了interval时按真实时间节拍推进，否则尽快推进
func (ctx *Context) Run() error {
	defer ctx.Close()
	if err := ctx.Init(); err != nil {
		return err
	}

	var tickCh <-chan time.Time
	if interval := ctx.clock.Interval(); interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tickCh = ticker.C
	}
	start := time.Now()
	for !ctx.clock.Done() && !ctx.closed.Load() {
		ctx.update()
		ctx.prepare()
		if tickCh != nil {
			select {
			case <-tickCh:
			case <-ctx.stopCh:
			}
		}
	}
	log.Infof("simulation finished at step %d, %d vehicles released in %v",
		ctx.clock.InternalStep, ctx.released, time.Since(start))
	return nil
}
