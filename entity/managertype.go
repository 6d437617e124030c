package entity

// 依赖倒置

// entity/lane/lane.go的依赖倒置
type ILane interface {
	Key() LaneKey              // 车道标识
	Role() LaneRole            // 车道语义
	Count() int                // 排队车辆数
	Enqueue(v *Vehicle)        // 队尾加入
	Dequeue() (*Vehicle, bool) // 队首出队，空队列返回false
	Peek() (*Vehicle, bool)    // 查看队首，空队列返回false
	Vehicles() []*Vehicle      // 按到达顺序的全部车辆
}

// entity/road/road.go的依赖倒置
type IRoad interface {
	ID() RoadID                 // 道路标识
	Lane(id LaneID) ILane       // 获取车道，id非法时返回nil
	WaitingCount() int          // 受控车道（直行+第二直行）排队车辆数之和
	Light() LightState          // 受控车道共享的信号灯状态
	SetLightState(s LightState) // 设置受控车道信号灯，自由左转车道不受影响
}

// 车辆到达的接收方（路口控制器），供TCP/文件等输入通道调用
type IVehicleSink interface {
	AddVehicle(road RoadID, lane LaneID)
}
