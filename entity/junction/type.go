package junction

import "github.com/tsinghua-fib-lab/junction-sim/entity"

// 依赖倒置，表达junction对信号灯实现的接口需求

// 给渲染/诊断提供的信控读取接口
type ITrafficLightGetter interface {
	Green() entity.RoadID  // 相位游标所在道路
	RemainingTicks() int32 // 当前相位剩余时长
	Duration() int32       // 当前相位总时长
	Ok() bool              // 当前信控开关情况
	Discipline() string    // 相位选择策略
}

// 信号灯接口
type ITrafficLight interface {
	ITrafficLightGetter
	Prepare()                  // 准备阶段，处理交互式接口写入的buffer
	Update() bool              // 更新阶段，倒计时推进一步，返回是否切换相位
	Apply(green entity.RoadID) // 将绿灯写入道路
	Expire()                   // 剩余时长置零，下一次Update立即切换相位
	SetOk(ok bool)             // 设置信控开关情况（true信控工作|false信控关闭-全红）
}

// 概率放行使用的随机源，测试中可替换为确定性实现
type IRandom interface {
	PTrue(p float64) bool
}
