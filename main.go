package main

import (
	"encoding/base64"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
	"github.com/tebeka/atexit"
	"github.com/tsinghua-fib-lab/junction-sim/task"
	"github.com/tsinghua-fib-lab/junction-sim/utils/config"
	"github.com/tsinghua-fib-lab/junction-sim/utils/recorder"
	"github.com/tsinghua-fib-lab/junction-sim/utils/sidecar"
)

var (
	// 本程序监听的RPC地址，为空时使用配置文件中的server.listen，二者均为空则不启动RPC服务
	listenAddr = flag.String("listen", "", "rpc listening address, e.g. :51102 (empty means config server.listen)")
	// 配置文件路径
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "main")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	// 获取配置
	var file []byte
	var err error
	if *configPath != "" {
		file, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else if *configData != "" {
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			log.Panicf("config data load err: %v", err)
		}
	} else {
		log.Panic("config file or config data must be specified")
	}
	c, err := config.Parse(file)
	if err != nil {
		log.Panicf("config file load err: %v", err)
	}
	log.Infof("%+v", c)
	rc, err := config.NewRuntimeConfig(c)
	if err != nil {
		log.Panicf("invalid config: %v", err)
	}

	rec, err := recorder.New(rc.All.Output)
	if err != nil {
		log.Panicf("output init err: %v", err)
	}
	addr := *listenAddr
	if addr == "" {
		addr = rc.All.Server.Listen
	}
	t, err := task.NewContext(rc, sidecar.New(addr), rec, true)
	if err != nil {
		log.Panicf("task init err: %v", err)
	}

	// Ctrl-C结束仿真并输出剩余事件
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Infof("received %v, stopping", sig)
		t.Stop()
	}()

	if err := t.Run(); err != nil {
		log.Errorf("simulation failed: %v", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
