package task

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tsinghua-fib-lab/junction-sim/clock"
	"github.com/tsinghua-fib-lab/junction-sim/entity/junction"
	"github.com/tsinghua-fib-lab/junction-sim/utils/config"
	"github.com/tsinghua-fib-lab/junction-sim/utils/input"
	"github.com/tsinghua-fib-lab/junction-sim/utils/recorder"
	"github.com/tsinghua-fib-lab/junction-sim/utils/sidecar"
)

//go:generate mockgen -destination mock_recorder_test.go -package task -write_package_comment=false github.com/tsinghua-fib-lab/junction-sim/utils/recorder IRecorder

// Context 仿真任务上下文
// 功能：包含一次仿真任务的所有变量和状态，替代全局变量
// 说明：管理时钟、路口控制器、输入通道、事件输出与RPC服务
type Context struct {
	// 关闭指令
	closed    atomic.Bool
	stopCh    chan struct{}
	stopOnce  sync.Once
	closeOnce sync.Once

	// 时钟
	clock *clock.Clock
	// 运行时配置
	runtimeConfig *config.RuntimeConfig
	// 路口控制器
	controller *junction.Controller
	// 事件输出
	recorder recorder.IRecorder

	// RPC服务
	sidecar *sidecar.Sidecar
	// sidecar close channel
	sidecarCloseCh chan struct{}
	serving        bool

	// 车辆到达输入
	socket *input.SocketServer
	poller *input.FilePoller
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// 统计
	released int64
}

// NewContext 创建新的仿真任务上下文
// 参数：
//   - rc: 运行时配置
//   - sc: RPC服务侧车
//   - rec: 事件输出
//   - startSidecarServe: 是否启动sidecar服务
//
// 返回：初始化完成的Context实例，控制器配置非法时返回错误
// 算法说明：
// 1. 创建时钟与路口控制器
// 2. 注册RPC服务到sidecar
// 3. 启动sidecar服务（如果需要）
func NewContext(
	rc *config.RuntimeConfig,
	sc *sidecar.Sidecar,
	rec recorder.IRecorder,
	startSidecarServe bool,
) (*Context, error) {
	controller, err := junction.NewController(rc)
	if err != nil {
		return nil, err
	}
	ctx := &Context{
		stopCh:         make(chan struct{}),
		clock:          clock.New(rc.C.Step),
		runtimeConfig:  rc,
		controller:     controller,
		recorder:       rec,
		sidecar:        sc,
		sidecarCloseCh: make(chan struct{}),
		serving:        startSidecarServe,
	}

	ctx.clock.Register(ctx.sidecar)
	ctx.controller.Register(ctx.sidecar)

	// sidecar协程，用于提供RPC服务
	if startSidecarServe {
		go func() {
			if err := ctx.sidecar.Serve(); err != nil {
				log.Panicf("failed to serve: %v", err)
			}
			ctx.sidecarCloseCh <- struct{}{}
		}()
	}
	return ctx, nil
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

func (ctx *Context) Controller() *junction.Controller {
	return ctx.controller
}

// Init 重置时钟并启动输入通道
func (ctx *Context) Init() error {
	ctx.clock.Init()
	in := ctx.runtimeConfig.All.Input
	if in.Socket != "" {
		ctx.socket = input.NewSocketServer(in.Socket, ctx.controller)
		if err := ctx.socket.Listen(); err != nil {
			return err
		}
		ctx.wg.Add(1)
		go func() {
			defer ctx.wg.Done()
			if err := ctx.socket.Serve(); err != nil {
				log.Errorf("socket input stopped: %v", err)
			}
		}()
	}
	if in.Dir != "" {
		var pollCtx context.Context
		pollCtx, ctx.cancel = context.WithCancel(context.Background())
		ctx.poller = input.NewFilePoller(in.Dir, time.Duration(in.PollInterval*float64(time.Second)), ctx.controller)
		ctx.wg.Add(1)
		go func() {
			defer ctx.wg.Done()
			if err := ctx.poller.Run(pollCtx); err != nil {
				log.Errorf("file input stopped: %v", err)
			}
		}()
	}
	log.Infof("simulation ready: %d steps from %d, interval %v",
		ctx.clock.END_STEP-ctx.clock.START_STEP, ctx.clock.START_STEP, ctx.clock.Interval())
	return nil
}

// Stop 通知Run在当前步结束后退出，可在任意协程调用
func (ctx *Context) Stop() {
	ctx.stopOnce.Do(func() {
		ctx.closed.Store(true)
		close(ctx.stopCh)
	})
}

// Close 关闭输入通道、事件输出与RPC服务
func (ctx *Context) Close() {
	ctx.closeOnce.Do(func() {
		ctx.Stop()
		if ctx.socket != nil {
			if err := ctx.socket.Close(); err != nil {
				log.Warnf("close socket input: %v", err)
			}
		}
		if ctx.cancel != nil {
			ctx.cancel()
		}
		ctx.wg.Wait()
		if err := ctx.recorder.Close(); err != nil {
			log.Errorf("close recorder: %v", err)
		}
		if ctx.serving {
			if err := ctx.sidecar.Close(); err != nil {
				log.Warnf("close sidecar: %v", err)
			}
			// wait for graceful stop
			<-ctx.sidecarCloseCh
		}
	})
}
