package junction

import (
	"fmt"
	"sync"

	"github.com/rs/xid"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/junction-sim/entity/road"
	"github.com/tsinghua-fib-lab/junction-sim/utils/config"
	"github.com/tsinghua-fib-lab/junction-sim/utils/randengine"
)

// TickResult 一步更新的可观测结果
type TickResult struct {
	Tick      int64                               // 本步步数
	Events    []entity.ReleaseEvent               // 本步放行的车辆
	Lights    [entity.RoadCount]entity.LightState // 各道路受控车道信号灯
	Mode      entity.Mode                         // 控制器模式
	Pinned    *entity.RoadID                      // 优先模式下固定绿灯的道路，正常模式为nil
	GreenRoad entity.RoadID                       // 当前绿灯道路（信号灯关闭时为相位游标所在道路，实际全红）
	Remaining int32                               // 当前相位剩余时长
	Duration  int32                               // 当前相位总时长
	PhaseEnd  bool                                // 本步是否切换了相位
}

// Option Controller的可选项
type Option func(c *Controller)

// WithRandom 替换概率放行的随机源
func WithRandom(r IRandom) Option {
	return func(c *Controller) {
		c.release.random = r
	}
}

// Controller 路口控制器
// 功能：持有四条道路、相位计时器、优先模式状态机与放行策略，是路口全部可变状态的唯一所有者
// 说明：
// 1. 输入通道只调用AddVehicle，仿真循环每步调用一次Update
// 2. 所有读写由同一把读写锁保护，Update中的检查-决策-修改过程相对于车辆到达是原子的
type Controller struct {
	mtx sync.RWMutex

	tick         int64
	roads        [entity.RoadCount]*road.Road
	trafficLight ITrafficLight
	priority     *priorityMonitor
	release      *releasePolicy
}

// NewController 创建路口控制器
// 参数：rc-运行时配置（已填充默认值），opts-可选项
// 返回：所有车道为空、初始绿灯道路与初始相位时长来自配置的控制器
func NewController(rc *config.RuntimeConfig, opts ...Option) (*Controller, error) {
	c := &Controller{}
	for i, id := range entity.Roads {
		c.roads[i] = road.NewRoad(id)
	}
	roads := lo.Map(c.roads[:], func(r *road.Road, _ int) entity.IRoad { return r })
	tl, err := trafficlight.NewTrafficLight(rc.I, roads)
	if err != nil {
		return nil, err
	}
	c.trafficLight = tl
	if c.priority, err = newPriorityMonitor(rc.I.Priority, roads); err != nil {
		return nil, err
	}
	c.release = newReleasePolicy(rc.R)
	if rc.R.Probability > 0 {
		c.release.random = randengine.New(rc.R.Seed)
	}
	for _, opt := range opts {
		opt(c)
	}
	c.trafficLight.Apply(c.trafficLight.Green())
	log.Infof("controller ready: initial road %v, duration %d, discipline %s, release %v",
		c.trafficLight.Green(), c.trafficLight.Duration(), c.trafficLight.Discipline(), c.release)
	return c, nil
}

// AddVehicle 车辆到达，加入对应车道队尾
// 说明：道路或车道编号非法时记录日志并忽略
func (c *Controller) AddVehicle(roadID entity.RoadID, laneID entity.LaneID) {
	if _, err := c.TryAddVehicle(roadID, laneID); err != nil {
		log.Warnf("drop vehicle: %v", err)
	}
}

// TryAddVehicle 车辆到达，返回新建的车辆
// 返回：道路或车道编号非法时返回ErrInvalidRoad/ErrInvalidLane，队列不变
func (c *Controller) TryAddVehicle(roadID entity.RoadID, laneID entity.LaneID) (*entity.Vehicle, error) {
	if !roadID.Valid() {
		return nil, fmt.Errorf("%w: %d", entity.ErrInvalidRoad, int32(roadID))
	}
	if !laneID.Valid() {
		return nil, fmt.Errorf("%w: %d", entity.ErrInvalidLane, int32(laneID))
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	v := &entity.Vehicle{
		ID:          xid.New().String(),
		Road:        roadID,
		Lane:        laneID,
		ArrivalTick: c.tick,
	}
	c.roads[roadID].Lane(laneID).Enqueue(v)
	return v, nil
}

// Update 推进一步
// 返回：本步放行事件与更新后的信号灯、模式、相位信息
// 算法说明：
// 1. 应用信号灯开关写入
// 2. 检查优先模式迟滞条件，退出优先模式时将相位剩余时长置零
// 3. 正常模式推进相位倒计时，优先模式绿灯固定在被监控道路
// 4. 写入信号灯后按放行策略出队
func (c *Controller) Update() TickResult {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	tick := c.tick
	c.trafficLight.Prepare()
	if exited := c.priority.check(tick); exited {
		c.trafficLight.Expire()
	}
	var green entity.RoadID
	phaseEnd := false
	switch c.priority.mode {
	case entity.ModePriority:
		green = c.priority.road
	case entity.ModeNormal:
		phaseEnd = c.trafficLight.Update()
		green = c.trafficLight.Green()
	default:
		log.Panicf("unknown mode %v", c.priority.mode)
	}
	c.trafficLight.Apply(green)
	events := c.dispatch(tick)
	c.tick++

	res := TickResult{
		Tick:      tick,
		Events:    events,
		Mode:      c.priority.mode,
		Pinned:    c.pinnedRoad(),
		GreenRoad: green,
		Remaining: c.trafficLight.RemainingTicks(),
		Duration:  c.trafficLight.Duration(),
		PhaseEnd:  phaseEnd,
	}
	for i, r := range c.roads {
		res.Lights[i] = r.Light()
	}
	return res
}

// EndPhase 立即结束当前相位，下一次正常模式的Update切换到下一条道路
func (c *Controller) EndPhase() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.trafficLight.Expire()
}

// SetStatus 设置信号灯开关（下一次Update生效）
// 参数：ok-true表示正常工作，false表示关闭（受控车道全部红灯，倒计时冻结，自由左转车道照常放行）
func (c *Controller) SetStatus(ok bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.trafficLight.SetOk(ok)
	log.Infof("traffic light status set to %v", ok)
}

// greenRoad 当前绿灯道路（需持有锁）
func (c *Controller) greenRoad() entity.RoadID {
	if c.priority.mode == entity.ModePriority {
		return c.priority.road
	}
	return c.trafficLight.Green()
}

// pinnedRoad 优先模式下固定的道路（需持有锁）
func (c *Controller) pinnedRoad() *entity.RoadID {
	if c.priority.mode != entity.ModePriority {
		return nil
	}
	return lo.ToPtr(c.priority.road)
}
