package trafficlight

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/junction-sim/entity"
)

// gatedLaneCount 参与平均的受控车道数（直行+第二直行）
const gatedLaneCount = 2

// GreenDuration 计算绿灯时长（步）
// 功能：按受控车道的平均排队数乘以单车通过时间得到时长，并限制在[minD, maxD]内
// 参数：waiting-受控车道排队总数，vehicleTime-单车通过时间，minD/maxD-时长上下限
// 返回：clamp(int(waiting/2*vehicleTime), minD, maxD)
func GreenDuration(waiting int, vehicleTime, minD, maxD int32) int32 {
	d := int32(float64(waiting) / gatedLaneCount * float64(vehicleTime))
	return lo.Clamp(d, minD, maxD)
}

// roadDuration 道路当前的绿灯时长
func roadDuration(r entity.IRoad, vehicleTime, minD, maxD int32) int32 {
	return GreenDuration(r.WaitingCount(), vehicleTime, minD, maxD)
}
