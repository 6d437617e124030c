package trafficlight

import (
	"fmt"

	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/utils/config"
)

// IDiscipline 相位结束时选择下一条绿灯道路的策略
type IDiscipline interface {
	Name() string
	// Next 在current的相位结束后选择下一条绿灯道路
	// roads按RoadID下标排列
	Next(current entity.RoadID, roads []entity.IRoad) entity.RoadID
}

// NewDiscipline 根据配置名创建调度策略
func NewDiscipline(name string) (IDiscipline, error) {
	switch name {
	case config.DisciplineRoundRobin, "":
		return roundRobin{}, nil
	case config.DisciplineLongestQueue:
		return longestQueue{}, nil
	default:
		return nil, fmt.Errorf("unknown discipline %q", name)
	}
}

// roundRobin 固定顺序轮转 A->B->C->D->A，与排队长度无关
type roundRobin struct{}

func (roundRobin) Name() string {
	return config.DisciplineRoundRobin
}

func (roundRobin) Next(current entity.RoadID, _ []entity.IRoad) entity.RoadID {
	return current.Next()
}
