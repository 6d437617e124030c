package input

import (
	"bufio"
	"errors"
	"net"
	"sync"
	"sync/atomic"

	"github.com/tsinghua-fib-lab/junction-sim/entity"
)

// SocketServer TCP行协议输入服务
// 功能：接受车流生成器的连接，每行一个令牌（见ParseToken），解析后调用sink.AddVehicle
// 说明：非法令牌记录日志后丢弃，不影响连接
type SocketServer struct {
	addr string
	sink entity.IVehicleSink

	mtx      sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	closed   bool
	wg       sync.WaitGroup

	accepted atomic.Int64 // 已加入的车辆数
	dropped  atomic.Int64 // 丢弃的非法令牌数
}

// NewSocketServer 创建TCP输入服务
// 参数：addr-监听地址（如":5000"），sink-车辆到达的接收方
func NewSocketServer(addr string, sink entity.IVehicleSink) *SocketServer {
	return &SocketServer{
		addr:  addr,
		sink:  sink,
		conns: make(map[net.Conn]struct{}),
	}
}

// Listen 绑定监听地址，Serve前可单独调用以获取实际地址
func (s *SocketServer) Listen() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln
	log.Infof("socket input listening on %s", ln.Addr())
	return nil
}

// Addr 实际监听地址，未监听时返回nil
func (s *SocketServer) Addr() net.Addr {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve 接受连接直到Close
// 返回：Close后返回nil，监听失败时返回错误
func (s *SocketServer) Serve() error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.mtx.Lock()
	ln := s.listener
	s.mtx.Unlock()
	for {
		conn, err := ln.Accept()
		if err != nil {
			s.mtx.Lock()
			closed := s.closed
			s.mtx.Unlock()
			if closed || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			return err
		}
		s.mtx.Lock()
		if s.closed {
			s.mtx.Unlock()
			conn.Close()
			continue
		}
		s.conns[conn] = struct{}{}
		s.wg.Add(1)
		s.mtx.Unlock()
		go s.handle(conn)
	}
}

func (s *SocketServer) handle(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mtx.Lock()
		delete(s.conns, conn)
		s.mtx.Unlock()
		conn.Close()
	}()
	log.Infof("client %s connected", conn.RemoteAddr())
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		road, lane, err := ParseToken(line)
		if err != nil {
			s.dropped.Add(1)
			log.Warnf("client %s: drop %v", conn.RemoteAddr(), err)
			continue
		}
		s.sink.AddVehicle(road, lane)
		s.accepted.Add(1)
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Warnf("client %s: read error %v", conn.RemoteAddr(), err)
	}
	log.Infof("client %s disconnected", conn.RemoteAddr())
}

// Stats 已加入的车辆数与丢弃的令牌数
func (s *SocketServer) Stats() (accepted, dropped int64) {
	return s.accepted.Load(), s.dropped.Load()
}

// Close 关闭监听与所有连接
func (s *SocketServer) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.closed = true
	for conn := range s.conns {
		conn.Close()
	}
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}
