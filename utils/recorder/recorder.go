// 放行事件与车道排队采样的持久化输出（sqlite / MongoDB）
package recorder

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/utils/config"
)

var log = logrus.WithField("module", "recorder")

const (
	defaultBatchSize = 10000
	connectTimeout   = 10 * time.Second
)

// Sample 一次车道排队采样
type Sample struct {
	Tick   int64          `bson:"tick"`
	Mode   string         `bson:"mode"`
	Green  string         `bson:"green"`
	Counts map[string]int `bson:"counts"` // 车道标识（如"AL2"）->排队数
}

// IRecorder 事件输出接口
// 说明：Record*只写入缓冲，由Flush或缓冲满时批量落盘
type IRecorder interface {
	RecordRelease(e entity.ReleaseEvent)
	RecordSample(s Sample)
	Flush() error
	Close() error
}

// New 根据输出配置创建记录器
// 说明：配置了sqlite时优先使用sqlite，其次MongoDB，均未配置时返回不做任何事的记录器
func New(cfg config.Output) (IRecorder, error) {
	switch {
	case cfg.SQLite != "":
		r := NewSQLiteRecorder(cfg.SQLite)
		if err := r.Init(); err != nil {
			return nil, err
		}
		return r, nil
	case cfg.URI != "":
		r := NewMongoRecorder(cfg.URI, cfg.DB)
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := r.Init(ctx); err != nil {
			return nil, err
		}
		return r, nil
	default:
		return Nop{}, nil
	}
}

// Nop 不输出的记录器
type Nop struct{}

func (Nop) RecordRelease(entity.ReleaseEvent) {}
func (Nop) RecordSample(Sample)               {}
func (Nop) Flush() error                      { return nil }
func (Nop) Close() error                      { return nil }
