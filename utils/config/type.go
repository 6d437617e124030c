package config

// 信号周期调度方式
const (
	DisciplineRoundRobin   = "round_robin"   // 固定顺序轮转 A->B->C->D->A
	DisciplineLongestQueue = "longest_queue" // 每个相位结束时选择排队最长的道路
)

// ControlStep 指定模拟器模拟步数范围和间隔的配置项
// 说明：模拟以离散步（tick）推进，所有信号时长均以步为单位
type ControlStep struct {
	Start    int32   `yaml:"start"`              // 开始步数
	Total    int32   `yaml:"total"`              // 总步数，0表示一直运行直到进程退出
	Interval float64 `yaml:"interval,omitempty"` // 每步对应的真实时间（秒），0表示不做实时节拍控制
}

// Control 模拟器控制配置
type Control struct {
	Step ControlStep `yaml:"step"`
}

// Priority 优先模式（迟滞）配置
// 说明：被监控车道数量 > Enter 时进入优先模式，< Exit 时退出
type Priority struct {
	Disabled bool   `yaml:"disabled,omitempty"` // 关闭优先模式
	Road     string `yaml:"road,omitempty"`     // 被监控车道所在道路，默认A
	Lane     int32  `yaml:"lane,omitempty"`     // 被监控车道编号（1..3），默认2
	Enter    int    `yaml:"enter,omitempty"`    // 进入阈值，默认10
	Exit     int    `yaml:"exit,omitempty"`     // 退出阈值，默认5
}

// Intersection 路口信控配置
// 说明：绿灯时长 = clamp(等待车辆数/受控车道数 * VehicleTime, MinDuration, MaxDuration)
type Intersection struct {
	InitialRoad     string   `yaml:"initial_road,omitempty"`     // 初始绿灯道路，默认A
	Discipline      string   `yaml:"discipline,omitempty"`       // round_robin | longest_queue
	DefaultDuration int32    `yaml:"default_duration,omitempty"` // 初始相位时长（步），默认180
	MinDuration     int32    `yaml:"min_duration,omitempty"`     // 最短绿灯（步），默认120
	MaxDuration     int32    `yaml:"max_duration,omitempty"`     // 最长绿灯（步），默认600
	VehicleTime     int32    `yaml:"vehicle_time,omitempty"`     // 每辆车通过所需时间（步），默认20
	Priority        Priority `yaml:"priority,omitempty"`
}

// Release 放行节流配置
type Release struct {
	GatedInterval    int32   `yaml:"gated_interval,omitempty"`     // 受控车道每条道路两次放行的最小间隔（步），默认20
	FreeLeftInterval int32   `yaml:"free_left_interval,omitempty"` // 自由左转车道两次放行的最小间隔（步），默认20
	Probability      float64 `yaml:"probability,omitempty"`        // >0时改为按概率放行（每个放行位每步一次抽样）
	Seed             uint64  `yaml:"seed,omitempty"`               // 概率放行的随机种子
}

// Input 车辆到达数据来源
type Input struct {
	Socket       string  `yaml:"socket,omitempty"`        // TCP监听地址，例如 ":5000"，为空则不启动
	Dir          string  `yaml:"dir,omitempty"`           // 按道路分文件的目录（lanea.txt等），为空则不启动
	PollInterval float64 `yaml:"poll_interval,omitempty"` // 文件轮询间隔（秒），默认0.5
}

// Output 放行事件输出配置
type Output struct {
	SQLite         string `yaml:"sqlite,omitempty"`          // sqlite文件名（不含后缀）
	URI            string `yaml:"uri,omitempty"`             // MongoDB连接字符串
	DB             string `yaml:"db,omitempty"`              // MongoDB数据库名，为空则自动生成
	SampleInterval int32  `yaml:"sample_interval,omitempty"` // 车道排队采样间隔（步），0表示不采样
}

// Server RPC服务配置
type Server struct {
	Listen string `yaml:"listen,omitempty"` // RPC监听地址，为空则不启动（命令行-listen优先）
}

// Config YAML配置文件的根结构
type Config struct {
	Control      Control      `yaml:"control"`                // 模拟过程控制
	Intersection Intersection `yaml:"intersection,omitempty"` // 信控
	Release      Release      `yaml:"release,omitempty"`      // 放行
	Input        Input        `yaml:"input,omitempty"`        // 输入
	Output       Output       `yaml:"output,omitempty"`       // 输出
	Server       Server       `yaml:"server,omitempty"`       // RPC服务
}
