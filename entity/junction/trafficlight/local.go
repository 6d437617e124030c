package trafficlight

import (
	"fmt"

	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/utils/config"
)

// localTlRuntime 本地信号灯运行时数据结构
// 功能：存储当前相位的绿灯道路、相位总时长与剩余时长（单位：步）
type localTlRuntime struct {
	green      entity.RoadID // 相位游标所在道路
	duration   int32         // 当前相位总时长
	remainingT int32         // 当前相位剩余时长
}

// TrafficLight 路口相位计时器
// 功能：按倒计时推进相位，相位结束时由调度策略选择下一条道路并按需求重新计算绿灯时长
// 说明：
// 1. 优先模式下控制器不调用Update，倒计时冻结，绿灯道路由控制器通过Apply指定
// 2. 关闭（SetOk(false)）时所有受控车道为红灯，只有自由左转车道放行，倒计时冻结
type TrafficLight struct {
	roads      []entity.IRoad // 按RoadID下标排列
	discipline IDiscipline

	vehicleTime int32 // 单车通过时间（步）
	minD        int32 // 最短绿灯（步）
	maxD        int32 // 最长绿灯（步）

	runtime  localTlRuntime // 运行时数据
	ok       bool           // 信号灯状态，true为开启，false为关闭
	okBuffer bool           // 信号灯状态buffer，用于交互式接口写入
}

// NewTrafficLight 创建相位计时器
// 参数：ic-已填充默认值的信控配置，roads-按RoadID下标排列的四条道路
// 返回：初始绿灯道路为ic.InitialRoad、剩余时长为ic.DefaultDuration的计时器
func NewTrafficLight(ic config.Intersection, roads []entity.IRoad) (*TrafficLight, error) {
	if len(roads) != entity.RoadCount {
		return nil, fmt.Errorf("traffic light needs %d roads, got %d", entity.RoadCount, len(roads))
	}
	for i, r := range roads {
		if r.ID() != entity.RoadID(i) {
			return nil, fmt.Errorf("road %v at index %d", r.ID(), i)
		}
	}
	initial, err := entity.ParseRoad(ic.InitialRoad)
	if err != nil {
		return nil, err
	}
	discipline, err := NewDiscipline(ic.Discipline)
	if err != nil {
		return nil, err
	}
	l := &TrafficLight{
		roads:       roads,
		discipline:  discipline,
		vehicleTime: ic.VehicleTime,
		minD:        ic.MinDuration,
		maxD:        ic.MaxDuration,
		runtime: localTlRuntime{
			green:      initial,
			duration:   ic.DefaultDuration,
			remainingT: ic.DefaultDuration,
		},
		ok:       true,
		okBuffer: true,
	}
	return l, nil
}

// Prepare 准备阶段，应用交互式接口写入的开关状态
func (l *TrafficLight) Prepare() {
	l.ok = l.okBuffer
}

// Update 更新阶段，倒计时推进一步
// 返回：本步是否切换了相位
// 算法说明：
// 1. 剩余时长减一
// 2. 剩余时长<=0时由调度策略选择下一条道路
// 3. 以新道路的受控车道排队数重新计算绿灯时长，并重置剩余时长
func (l *TrafficLight) Update() bool {
	if !l.ok {
		return false
	}
	l.runtime.remainingT--
	if l.runtime.remainingT > 0 {
		return false
	}
	prev := l.runtime.green
	next := l.discipline.Next(prev, l.roads)
	d := roadDuration(l.roads[next], l.vehicleTime, l.minD, l.maxD)
	l.runtime = localTlRuntime{green: next, duration: d, remainingT: d}
	log.Debugf("phase %v -> %v (%s), duration %d", prev, next, l.discipline.Name(), d)
	return true
}

// Apply 将绿灯写入道路：green为绿灯，其余道路红灯；关闭时全部红灯
func (l *TrafficLight) Apply(green entity.RoadID) {
	for _, r := range l.roads {
		if l.ok && r.ID() == green {
			r.SetLightState(entity.LightGreen)
		} else {
			r.SetLightState(entity.LightRed)
		}
	}
}

// Expire 将剩余时长置零，下一次Update立即切换相位
func (l *TrafficLight) Expire() {
	l.runtime.remainingT = 0
}

// SetOk 设置信号灯状态（下一次Prepare生效）
// 参数：ok-true表示正常工作，false表示关闭（受控车道全红灯）
func (l *TrafficLight) SetOk(ok bool) {
	l.okBuffer = ok
}

// Ok 信号灯是否正常工作
func (l *TrafficLight) Ok() bool {
	return l.ok
}

// Green 相位游标所在道路
func (l *TrafficLight) Green() entity.RoadID {
	return l.runtime.green
}

// RemainingTicks 当前相位剩余时长（步）
func (l *TrafficLight) RemainingTicks() int32 {
	return l.runtime.remainingT
}

// Duration 当前相位总时长（步）
func (l *TrafficLight) Duration() int32 {
	return l.runtime.duration
}

// Discipline 调度策略名
func (l *TrafficLight) Discipline() string {
	return l.discipline.Name()
}
