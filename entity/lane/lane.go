package lane

import (
	"fmt"

	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/utils/container"
)

// Lane 车道实体
// 功能：一条车道上的等待队列，严格按到达顺序服务
// 说明：Lane本身不加锁，由路口控制器的锁统一保护
type Lane struct {
	key      entity.LaneKey
	role     entity.LaneRole
	vehicles *container.List[*entity.Vehicle, struct{}]
}

// NewLane 创建空车道
// 参数：key-车道标识（道路+车道编号）
// 返回：车道实例，车道编号非法时panic（车道由道路按固定编号创建）
func NewLane(key entity.LaneKey) *Lane {
	role := key.Lane.Role()
	if role == entity.RoleUnspecified {
		log.Panicf("bad lane id %d for road %v", key.Lane, key.Road)
	}
	return &Lane{
		key:  key,
		role: role,
		vehicles: &container.List[*entity.Vehicle, struct{}]{
			ID: fmt.Sprintf("lane %v vehicles", key),
		},
	}
}

func (l *Lane) String() string {
	return fmt.Sprintf("Lane %v(%v, %d vehicles)", l.key, l.role, l.vehicles.Len())
}

// Key 车道标识
func (l *Lane) Key() entity.LaneKey {
	return l.key
}

// Role 车道语义
func (l *Lane) Role() entity.LaneRole {
	return l.role
}

// Count 排队车辆数，O(1)
func (l *Lane) Count() int {
	return l.vehicles.Len()
}

// Enqueue 车辆加入队尾，O(1)
func (l *Lane) Enqueue(v *entity.Vehicle) {
	l.vehicles.PushBack(&container.ListNode[*entity.Vehicle, struct{}]{Value: v})
}

// Dequeue 队首车辆出队
// 返回：队首车辆；空队列时返回nil,false，不视为错误
func (l *Lane) Dequeue() (*entity.Vehicle, bool) {
	node := l.vehicles.PopFront()
	if node == nil {
		return nil, false
	}
	return node.Value, true
}

// Peek 查看队首车辆
func (l *Lane) Peek() (*entity.Vehicle, bool) {
	node := l.vehicles.First()
	if node == nil {
		return nil, false
	}
	return node.Value, true
}

// Vehicles 按到达顺序返回全部车辆（拷贝）
func (l *Lane) Vehicles() []*entity.Vehicle {
	return l.vehicles.Values()
}
