package clock

import (
	"fmt"
	"sync"
	"time"

	"github.com/tsinghua-fib-lab/junction-sim/utils/config"
)

// Clock 仿真时钟
// 功能：管理仿真系统的步数推进以及步数与真实时间的换算
// 说明：所有信号时长以步为单位，DT只用于实时节拍与时间显示
type Clock struct {
	DT         float64 // 每步对应的真实时间（秒），0表示不做节拍控制
	START_STEP int64   // 起始步
	END_STEP   int64   // 结束步，模拟区间[START, END)，0表示无结束步

	T            float64 // 当前时间（秒）
	InternalStep int64   // 当前步数

	mtx sync.RWMutex // 保护Step与Now，供RPC并发读取
}

// New 根据配置创建新的时钟实例
// 参数：stepConfig-控制步配置
// 返回：初始化完成的时钟实例
func New(stepConfig config.ControlStep) *Clock {
	c := &Clock{
		DT:         stepConfig.Interval,
		START_STEP: int64(stepConfig.Start),
	}
	if stepConfig.Total > 0 {
		c.END_STEP = int64(stepConfig.Start) + int64(stepConfig.Total)
	}
	c.Init()
	return c
}

// Init 重置时钟状态到起始步
func (c *Clock) Init() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.InternalStep = c.START_STEP
	c.T = float64(c.InternalStep) * c.DT
}

// Step 推进一步
func (c *Clock) Step() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.InternalStep++
	c.T = float64(c.InternalStep) * c.DT
}

// Current 并发安全地读取当前步数与时间
func (c *Clock) Current() (step int64, t float64) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return c.InternalStep, c.T
}

// Done 是否已到达结束步
func (c *Clock) Done() bool {
	return c.END_STEP > 0 && c.InternalStep >= c.END_STEP
}

// Interval 每步的真实时长，DT为0时返回0
func (c *Clock) Interval() time.Duration {
	return time.Duration(c.DT * float64(time.Second))
}

// String 获取时钟的字符串表示
// 返回：格式化的时间字符串（HH:MM:SS）
func (c *Clock) String() string {
	return formatSeconds(c.T)
}

func formatSeconds(t float64) string {
	h := int(t / 3600)
	t -= float64(h * 3600)
	m := int(t / 60)
	t -= float64(m * 60)
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// GetHourMinuteSecond 获取当前时间的小时、分钟、秒
// 返回：小时、分钟、秒（秒为浮点数，支持亚秒级精度）
func (c *Clock) GetHourMinuteSecond() (int, int, float64) {
	hour := int(c.T) / 3600
	minute := int(c.T) % 3600 / 60
	second := c.T - float64(hour*3600+minute*60)
	return hour, minute, second
}
