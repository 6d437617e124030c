package entity

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRoad = errors.New("invalid road id")
	ErrInvalidLane = errors.New("invalid lane id")
)

// RoadID 路口四个进口道之一
type RoadID int32

const (
	RoadA RoadID = iota
	RoadB
	RoadC
	RoadD
	RoadCount = 4 // 道路数量
)

// Roads 所有道路，按轮转顺序排列
var Roads = [RoadCount]RoadID{RoadA, RoadB, RoadC, RoadD}

// ParseRoad 将"A".."D"（大小写均可）转换为RoadID
func ParseRoad(s string) (RoadID, error) {
	if len(s) == 1 {
		c := s[0]
		if c >= 'a' && c <= 'd' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'D' {
			return RoadID(c - 'A'), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRoad, s)
}

func (r RoadID) Valid() bool {
	return r >= RoadA && r <= RoadD
}

func (r RoadID) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Road(%d)", int32(r))
	}
	return string(rune('A' + r))
}

// Next 轮转顺序中的下一条道路
func (r RoadID) Next() RoadID {
	return (r + 1) % RoadCount
}

// Opposite 直行的目标道路（A->C, B->D, C->A, D->B）
func (r RoadID) Opposite() RoadID {
	return (r + 2) % RoadCount
}

// Left 自由左转的目标道路（A->B, B->C, C->D, D->A）
func (r RoadID) Left() RoadID {
	return (r + 1) % RoadCount
}

// MarshalText 以字母形式输出（用于JSON/YAML）
func (r RoadID) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRoad, int32(r))
	}
	return []byte(r.String()), nil
}

func (r *RoadID) UnmarshalText(b []byte) error {
	v, err := ParseRoad(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// LaneID 道路内车道编号（1..3）
type LaneID int32

const (
	LaneThrough   LaneID = 1 // 直行车道
	LaneSecondary LaneID = 2 // 第二直行车道（A路该车道为优先监控车道）
	LaneFreeLeft  LaneID = 3 // 自由左转车道，不受信号灯控制
	LaneCount            = 3 // 每条道路的车道数
)

// Lanes 道路内所有车道，按放行优先顺序排列
var Lanes = [LaneCount]LaneID{LaneThrough, LaneSecondary, LaneFreeLeft}

func (l LaneID) Valid() bool {
	return l >= LaneThrough && l <= LaneFreeLeft
}

func (l LaneID) String() string {
	return fmt.Sprintf("L%d", int32(l))
}

// Role 车道语义
func (l LaneID) Role() LaneRole {
	switch l {
	case LaneThrough:
		return RoleThrough
	case LaneSecondary:
		return RoleSecondary
	case LaneFreeLeft:
		return RoleFreeLeft
	default:
		return RoleUnspecified
	}
}

// LaneRole 车道语义
type LaneRole int32

const (
	RoleUnspecified LaneRole = iota
	RoleThrough
	RoleSecondary
	RoleFreeLeft
)

func (r LaneRole) String() string {
	switch r {
	case RoleThrough:
		return "through"
	case RoleSecondary:
		return "secondary"
	case RoleFreeLeft:
		return "free-left"
	default:
		return "unspecified"
	}
}

// Gated 是否受信号灯控制
func (r LaneRole) Gated() bool {
	return r == RoleThrough || r == RoleSecondary
}

// LightState 信号灯状态
type LightState int32

const (
	LightRed LightState = iota
	LightGreen
)

func (s LightState) String() string {
	switch s {
	case LightRed:
		return "RED"
	case LightGreen:
		return "GREEN"
	default:
		return fmt.Sprintf("LightState(%d)", int32(s))
	}
}

func (s LightState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *LightState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "RED":
		*s = LightRed
	case "GREEN":
		*s = LightGreen
	default:
		return fmt.Errorf("invalid light state %q", b)
	}
	return nil
}

// Mode 路口控制器模式
type Mode int32

const (
	ModeNormal   Mode = iota // 轮转/贪心相位
	ModePriority             // 优先模式，绿灯固定在被监控车道所在道路
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModePriority:
		return "PRIORITY"
	default:
		return fmt.Sprintf("Mode(%d)", int32(m))
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "NORMAL":
		*m = ModeNormal
	case "PRIORITY":
		*m = ModePriority
	default:
		return fmt.Errorf("invalid mode %q", b)
	}
	return nil
}

// LaneKey 车道全局标识（道路+车道）
type LaneKey struct {
	Road RoadID
	Lane LaneID
}

func (k LaneKey) String() string {
	return k.Road.String() + k.Lane.String()
}

// Number 线路上使用的车道序号（1..12，A路为1..3，B路为4..6，以此类推）
func (k LaneKey) Number() int32 {
	return int32(k.Road)*LaneCount + int32(k.Lane)
}

// LaneKeyFromNumber 由线路车道序号（1..12）得到车道标识
func LaneKeyFromNumber(n int32) (LaneKey, error) {
	if n < 1 || n > RoadCount*LaneCount {
		return LaneKey{}, fmt.Errorf("%w: lane number %d", ErrInvalidLane, n)
	}
	return LaneKey{
		Road: RoadID((n - 1) / LaneCount),
		Lane: LaneID((n-1)%LaneCount + 1),
	}, nil
}

// Vehicle 排队车辆
// 说明：创建后不可变，出队即交给外部运动/渲染层
type Vehicle struct {
	ID          string `json:"id"`           // 唯一标识
	Road        RoadID `json:"road"`         // 来源道路
	Lane        LaneID `json:"lane"`         // 来源车道
	ArrivalTick int64  `json:"arrival_tick"` // 到达时的步数
}

// ReleaseEvent 车辆放行事件，是控制器与外部运动/渲染层之间唯一的接口
type ReleaseEvent struct {
	Tick        int64  `json:"tick"`
	VehicleID   string `json:"vehicle_id"`
	Road        RoadID `json:"road"`
	Lane        LaneID `json:"lane"`
	Destination RoadID `json:"destination"`
	Waited      int64  `json:"waited"` // 排队等待的步数
}

// Destination 车道对应的驶出道路
// 说明：自由左转车道左转，其余车道直行
func Destination(road RoadID, lane LaneID) RoadID {
	if lane == LaneFreeLeft {
		return road.Left()
	}
	return road.Opposite()
}
