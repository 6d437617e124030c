package clock

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/tsinghua-fib-lab/junction-sim/utils/sidecar"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	ClockServiceName  = "clock.v1.ClockService"
	ClockNowProcedure = "/" + ClockServiceName + "/Now"
)

// NowResponse 当前仿真步与时间
type NowResponse struct {
	Step int64   `json:"step"`
	T    float64 `json:"t"`
	Time string  `json:"time"`
}

// Register 将ClockService注册到sidecar
// 说明：使时钟可以通过RPC接口被外部诊断工具访问
func (c *Clock) Register(s *sidecar.Sidecar) {
	s.Register(
		ClockServiceName,
		func(opts ...connect.HandlerOption) (pattern string, handler http.Handler) {
			mux := http.NewServeMux()
			mux.Handle(ClockNowProcedure, connect.NewUnaryHandler(ClockNowProcedure, c.Now, opts...))
			return "/" + ClockServiceName + "/", mux
		},
	)
}

// Now 获取当前仿真时间
func (c *Clock) Now(ctx context.Context, in *connect.Request[emptypb.Empty]) (*connect.Response[NowResponse], error) {
	step, t := c.Current()
	return connect.NewResponse(&NowResponse{
		Step: step,
		T:    t,
		Time: formatSeconds(t),
	}), nil
}
