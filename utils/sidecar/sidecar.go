// 服务侧车：基于gorilla/mux承载connect RPC服务与诊断接口
package sidecar

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "sidecar")

const shutdownTimeout = 5 * time.Second

// Sidecar RPC服务承载者
// 功能：注册各模块的connect服务处理器，统一监听与关闭
type Sidecar struct {
	addr     string
	router   *mux.Router
	server   *http.Server
	opts     []connect.HandlerOption
	services []string
}

// New 创建Sidecar
// 参数：addr-监听地址（如":51102"），为空时Serve直接返回
func New(addr string) *Sidecar {
	s := &Sidecar{
		addr:   addr,
		router: mux.NewRouter(),
		opts:   []connect.HandlerOption{connect.WithCodec(JSONCodec())},
	}
	s.HandleFunc("/healthz", healthz, http.MethodGet)
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Register 注册一个connect服务
// 参数：name-服务名，fn-根据handler选项构建(路由前缀, 处理器)的函数
func (s *Sidecar) Register(
	name string,
	fn func(opts ...connect.HandlerOption) (pattern string, handler http.Handler),
) {
	pattern, handler := fn(s.opts...)
	s.router.PathPrefix(pattern).Handler(handler)
	s.services = append(s.services, name)
	log.Debugf("register service %s at %s", name, pattern)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// HandleFunc 注册普通HTTP接口
func (s *Sidecar) HandleFunc(path string, f http.HandlerFunc, methods ...string) {
	route := s.router.HandleFunc(path, f)
	if len(methods) > 0 {
		route.Methods(methods...)
	}
}

// Services 已注册的服务名
func (s *Sidecar) Services() []string {
	return s.services
}

// Handler 返回根处理器，便于测试时挂到httptest.Server
func (s *Sidecar) Handler() http.Handler {
	return s.router
}

// Serve 监听并阻塞服务，Close后返回nil
func (s *Sidecar) Serve() error {
	if s.addr == "" {
		return nil
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	log.Infof("rpc server listening on %s, services: %v", ln.Addr(), s.services)
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close 优雅关闭
func (s *Sidecar) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
