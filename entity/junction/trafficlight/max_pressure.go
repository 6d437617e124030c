// 提供最长队列优先（贪心）的相位选择
// 不会按照固定顺序切换，而是在每个相位结束后比较各道路受控车道的排队数，选取排队最多的道路
package trafficlight

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/utils/config"
	"github.com/tsinghua-fib-lab/junction-sim/utils/container"
)

// longestQueue 最长队列优先调度
// 说明：排队数相同时从当前道路的下一条开始按轮转顺序取第一个，长期低流量的道路可能一直得不到绿灯
type longestQueue struct{}

func (longestQueue) Name() string {
	return config.DisciplineLongestQueue
}

// Next 选择排队最多的道路
// 算法说明：
// 1. 从current的下一条道路开始按轮转顺序入堆，入堆顺序即并列时的次序
// 2. 以排队数的相反数为优先级（小顶堆，排队越多越靠前）
// 3. 堆顶即为下一条绿灯道路
func (longestQueue) Next(current entity.RoadID, roads []entity.IRoad) entity.RoadID {
	pressure := lo.Map(roads, func(r entity.IRoad, _ int) int {
		return r.WaitingCount()
	})
	heap := container.NewPriorityQueue[entity.RoadID]()
	for i, id := 0, current.Next(); i < len(roads); i, id = i+1, id.Next() {
		heap.Push(id, -float64(pressure[id]))
	}
	heap.Heapify()
	next, p := heap.HeapPop()
	log.Debugf("longest queue: pick road %v with %d waiting (pressure %v)", next, int(-p), pressure)
	return next
}
