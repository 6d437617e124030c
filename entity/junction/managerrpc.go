package junction

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/utils/sidecar"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	JunctionServiceName = "junction.v1.JunctionService"

	JunctionAddVehicleProcedure      = "/" + JunctionServiceName + "/AddVehicle"
	JunctionGetIntersectionProcedure = "/" + JunctionServiceName + "/GetIntersection"
	JunctionGetLaneProcedure         = "/" + JunctionServiceName + "/GetLane"
	JunctionSetStatusProcedure       = "/" + JunctionServiceName + "/SetStatus"
	JunctionEndPhaseProcedure        = "/" + JunctionServiceName + "/EndPhase"
)

type AddVehicleRequest struct {
	Road entity.RoadID `json:"road"`
	Lane entity.LaneID `json:"lane"`
}

type AddVehicleResponse struct {
	Vehicle *entity.Vehicle `json:"vehicle"`
}

type GetIntersectionRequest struct {
	WithVehicles bool `json:"with_vehicles,omitempty"`
}

type GetLaneRequest struct {
	Road         entity.RoadID `json:"road"`
	Lane         entity.LaneID `json:"lane"`
	WithVehicles bool          `json:"with_vehicles,omitempty"`
}

type SetStatusRequest struct {
	Ok bool `json:"ok"`
}

// Register 将路口控制器注册到sidecar
// 功能：将控制器注册为RPC服务，提供车辆注入、状态查询与信号灯开关接口
// 参数：s-RPC服务侧车
func (c *Controller) Register(s *sidecar.Sidecar) {
	s.Register(
		JunctionServiceName,
		func(opts ...connect.HandlerOption) (pattern string, handler http.Handler) {
			mux := http.NewServeMux()
			mux.Handle(JunctionAddVehicleProcedure, connect.NewUnaryHandler(JunctionAddVehicleProcedure, c.AddVehicleRPC, opts...))
			mux.Handle(JunctionGetIntersectionProcedure, connect.NewUnaryHandler(JunctionGetIntersectionProcedure, c.GetIntersection, opts...))
			mux.Handle(JunctionGetLaneProcedure, connect.NewUnaryHandler(JunctionGetLaneProcedure, c.GetLane, opts...))
			mux.Handle(JunctionSetStatusProcedure, connect.NewUnaryHandler(JunctionSetStatusProcedure, c.SetStatusRPC, opts...))
			mux.Handle(JunctionEndPhaseProcedure, connect.NewUnaryHandler(JunctionEndPhaseProcedure, c.EndPhaseRPC, opts...))
			return "/" + JunctionServiceName + "/", mux
		},
	)
}

// AddVehicleRPC RPC接口：向指定车道加入一辆车
// 返回：新建的车辆；道路或车道编号非法时返回CodeInvalidArgument
func (c *Controller) AddVehicleRPC(
	ctx context.Context, in *connect.Request[AddVehicleRequest],
) (*connect.Response[AddVehicleResponse], error) {
	v, err := c.TryAddVehicle(in.Msg.Road, in.Msg.Lane)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return connect.NewResponse(&AddVehicleResponse{Vehicle: v}), nil
}

// GetIntersection RPC接口：获取路口完整快照
func (c *Controller) GetIntersection(
	ctx context.Context, in *connect.Request[GetIntersectionRequest],
) (*connect.Response[Snapshot], error) {
	s := c.Snapshot(in.Msg.WithVehicles)
	return connect.NewResponse(&s), nil
}

// GetLane RPC接口：获取单条车道快照
func (c *Controller) GetLane(
	ctx context.Context, in *connect.Request[GetLaneRequest],
) (*connect.Response[LaneSnapshot], error) {
	s, err := c.Lane(in.Msg.Road, in.Msg.Lane, in.Msg.WithVehicles)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return connect.NewResponse(&s), nil
}

// SetStatusRPC RPC接口：设置信号灯开关
// 说明：true表示正常工作，false表示关闭（受控车道全红灯）
func (c *Controller) SetStatusRPC(
	ctx context.Context, in *connect.Request[SetStatusRequest],
) (*connect.Response[emptypb.Empty], error) {
	c.SetStatus(in.Msg.Ok)
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// EndPhaseRPC RPC接口：立即结束当前相位
func (c *Controller) EndPhaseRPC(
	ctx context.Context, in *connect.Request[emptypb.Empty],
) (*connect.Response[emptypb.Empty], error) {
	c.EndPhase()
	return connect.NewResponse(&emptypb.Empty{}), nil
}
