// trafficgen 向路口仿真发送车辆到达
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "trafficgen")

func main() {
	// .env中的TRAFFICGEN_*变量作为命令行参数的默认值
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("load .env: %v", err)
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
