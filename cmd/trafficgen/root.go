package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tsinghua-fib-lab/junction-sim/entity"
)

// envOr 读取环境变量，未设置时返回def
func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envUint(key string, def uint64) uint64 {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
		log.Warnf("ignore %s=%q", key, v)
	}
	return def
}

// newRootCmd 构造命令行
// 说明：socket子命令连接仿真的TCP输入，file子命令写入按道路分文件的目录
func newRootCmd() *cobra.Command {
	opts := Options{}
	var count int

	rootCmd := &cobra.Command{
		Use:   "trafficgen",
		Short: "Generate vehicle arrivals for the junction simulator.",
		Long: `trafficgen produces a stream of vehicle arrivals, most of them on ` +
			`road A lane 2, with occasional road A bursts that trigger the ` +
			`priority mode of the controller.`,
		SilenceUsage: true,
	}
	pf := rootCmd.PersistentFlags()
	pf.Uint64Var(&opts.Seed, "seed", envUint("TRAFFICGEN_SEED", 0), "random seed")
	pf.Float64Var(&opts.PriorityWeight, "priority-weight", 0.6, "share of single arrivals on road A lane 2")
	pf.Float64Var(&opts.BurstProbability, "burst", 0.15, "probability that an arrival is a road A burst")
	pf.IntVar(&opts.BurstMin, "burst-min", 12, "minimum burst size")
	pf.IntVar(&opts.BurstMax, "burst-max", 20, "maximum burst size")
	pf.Float64Var(&opts.Speed, "speed", 1, "multiplier of the delay between arrivals, 0 sends without waiting")
	pf.IntVar(&count, "count", 0, "number of vehicles to send, 0 means until interrupted")

	var addr string
	socketCmd := &cobra.Command{
		Use:   "socket",
		Short: "Send arrivals to the TCP input of a running simulator.",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := net.Dial("tcp", addr)
			if err != nil {
				return err
			}
			defer conn.Close()
			log.Infof("connected to %s", addr)
			return run(opts, count, lineEmitter(conn))
		},
	}
	socketCmd.Flags().StringVar(&addr, "addr", envOr("TRAFFICGEN_ADDR", "127.0.0.1:5000"), "simulator TCP input address")

	var dir string
	fileCmd := &cobra.Command{
		Use:   "file",
		Short: "Append arrivals to the per-road files (lanea.txt .. laned.txt).",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			return run(opts, count, fileEmitter(dir))
		},
	}
	fileCmd.Flags().StringVar(&dir, "dir", envOr("TRAFFICGEN_DIR", "."), "directory of the per-road files")

	rootCmd.AddCommand(socketCmd, fileCmd)
	return rootCmd
}

func run(opts Options, count int, emit func(entity.LaneKey) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	sent, err := NewGenerator(opts).Run(ctx, count, emit)
	log.Infof("%d vehicles sent", sent)
	return err
}
