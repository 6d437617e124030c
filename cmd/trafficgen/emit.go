package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"github.com/tsinghua-fib-lab/junction-sim/utils/input"
)

// lineEmitter 以"AL2"形式的令牌逐行写入
func lineEmitter(w io.Writer) func(entity.LaneKey) error {
	return func(k entity.LaneKey) error {
		_, err := fmt.Fprintf(w, "%s\n", k)
		return err
	}
}

// fileEmitter 追加写入按道路分文件的目录，行内容为道路内车道"L1".."L3"
func fileEmitter(dir string) func(entity.LaneKey) error {
	return func(k entity.LaneKey) error {
		path := filepath.Join(dir, input.RoadFile(k.Road))
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(f, "%s\n", k.Lane); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}
