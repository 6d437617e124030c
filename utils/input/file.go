package input

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tsinghua-fib-lab/junction-sim/entity"
)

// FilePoller 按道路分文件的输入轮询
// 功能：周期性读取dir下的lanea.txt..laned.txt，每行一辆车（见ParseRoadLine），读取后清空文件
type FilePoller struct {
	dir      string
	interval time.Duration
	sink     entity.IVehicleSink
}

// NewFilePoller 创建文件轮询器
// 参数：dir-文件目录，interval-轮询间隔，sink-车辆到达的接收方
func NewFilePoller(dir string, interval time.Duration, sink entity.IVehicleSink) *FilePoller {
	return &FilePoller{dir: dir, interval: interval, sink: sink}
}

// RoadFile 道路对应的输入文件名，如lanea.txt
func RoadFile(road entity.RoadID) string {
	return fmt.Sprintf("lane%s.txt", strings.ToLower(road.String()))
}

// Run 轮询直到ctx结束
func (p *FilePoller) Run(ctx context.Context) error {
	if !preCheckDir(p.dir) {
		if err := os.MkdirAll(p.dir, 0o755); err != nil {
			return err
		}
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := p.PollOnce(); err != nil {
				log.Errorf("poll %s: %v", p.dir, err)
			}
		}
	}
}

// PollOnce 读取并清空全部道路文件一次
// 返回：加入的车辆数；单个文件的错误不影响其他文件，最后合并返回
func (p *FilePoller) PollOnce() (int, error) {
	added := 0
	var errs []error
	for _, road := range entity.Roads {
		lines, err := consume(filepath.Join(p.dir, RoadFile(road)))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, line := range lines {
			r, l, err := ParseRoadLine(road, line)
			if err != nil {
				log.Warnf("%s: drop %v", RoadFile(road), err)
				continue
			}
			p.sink.AddVehicle(r, l)
			added++
		}
	}
	return added, errors.Join(errs...)
}

// consume 读取文件的全部非空行并清空文件，文件不存在时返回空
func consume(path string) ([]string, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	if err := f.Truncate(0); err != nil {
		return nil, err
	}
	lines := make([]string, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// preCheckDir 预检查输入目录
// 返回：true表示目录存在，false表示不存在或不是目录
func preCheckDir(dir string) bool {
	if stat, err := os.Stat(dir); err == nil && stat.IsDir() {
		log.Infof("poll input files in %s", dir)
		return true
	} else {
		log.Warnf("input dir %s not exist or not a dir, create it", dir)
		return false
	}
}
