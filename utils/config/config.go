package config

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// 默认参数（单位：步）
const (
	DefaultGreenDuration    = 180
	DefaultMinDuration      = 120
	DefaultMaxDuration      = 600
	DefaultVehicleTime      = 20
	DefaultPriorityEnter    = 10
	DefaultPriorityExit     = 5
	DefaultReleaseInterval  = 20
	DefaultFilePollInterval = 0.5
)

// RuntimeConfig 运行时配置
// 功能：存储填充默认值并校验后的配置
type RuntimeConfig struct {
	All Config       // 全部配置
	C   Control      // 全局控制配置
	I   Intersection // 信控配置（已填默认值）
	R   Release      // 放行配置（已填默认值）
}

// Parse 解析YAML配置
// 说明：使用UnmarshalStrict，拼错的字段直接报错
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return c, err
	}
	return c, nil
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：填充默认值并校验参数之间的约束
// 参数：config-原始配置对象
// 返回：运行时配置指针，参数非法时返回错误
func NewRuntimeConfig(config Config) (*RuntimeConfig, error) {
	rc := &RuntimeConfig{
		All: config,
		C:   config.Control,
		I:   config.Intersection,
		R:   config.Release,
	}

	i := &rc.I
	if i.InitialRoad == "" {
		i.InitialRoad = "A"
	}
	if i.Discipline == "" {
		i.Discipline = DisciplineRoundRobin
	}
	setDefault(&i.DefaultDuration, DefaultGreenDuration)
	setDefault(&i.MinDuration, DefaultMinDuration)
	setDefault(&i.MaxDuration, DefaultMaxDuration)
	setDefault(&i.VehicleTime, DefaultVehicleTime)
	if i.Priority.Road == "" {
		i.Priority.Road = "A"
	}
	if i.Priority.Lane == 0 {
		i.Priority.Lane = 2
	}
	if i.Priority.Enter == 0 {
		i.Priority.Enter = DefaultPriorityEnter
	}
	if i.Priority.Exit == 0 {
		i.Priority.Exit = DefaultPriorityExit
	}

	r := &rc.R
	setDefault(&r.GatedInterval, DefaultReleaseInterval)
	setDefault(&r.FreeLeftInterval, DefaultReleaseInterval)

	if rc.All.Input.PollInterval == 0 {
		rc.All.Input.PollInterval = DefaultFilePollInterval
	}

	switch i.Discipline {
	case DisciplineRoundRobin, DisciplineLongestQueue:
	default:
		return nil, fmt.Errorf("unknown discipline %q (want %s or %s)", i.Discipline, DisciplineRoundRobin, DisciplineLongestQueue)
	}
	if i.MinDuration <= 0 || i.MaxDuration < i.MinDuration {
		return nil, fmt.Errorf("invalid duration band [%d, %d]", i.MinDuration, i.MaxDuration)
	}
	if i.DefaultDuration <= 0 {
		return nil, fmt.Errorf("invalid default duration %d", i.DefaultDuration)
	}
	if i.VehicleTime < 0 {
		return nil, fmt.Errorf("invalid vehicle time %d", i.VehicleTime)
	}
	if i.Priority.Exit > i.Priority.Enter {
		return nil, fmt.Errorf("priority exit threshold %d above enter threshold %d", i.Priority.Exit, i.Priority.Enter)
	}
	if r.Probability < 0 || r.Probability > 1 {
		return nil, fmt.Errorf("release probability %f out of [0, 1]", r.Probability)
	}
	if rc.C.Step.Total < 0 || rc.C.Step.Interval < 0 {
		return nil, fmt.Errorf("invalid control step %+v", rc.C.Step)
	}
	return rc, nil
}

func setDefault(v *int32, def int32) {
	if *v == 0 {
		*v = def
	}
}
