// 车辆到达输入：线路令牌解析、TCP行协议服务与按道路分文件的轮询
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tsinghua-fib-lab/junction-sim/entity"
)

var (
	ErrMalformedToken = errors.New("malformed lane token")
)

// ParseToken 解析一个线路令牌
// 功能：将令牌转换为(道路, 车道)
// 参数：s-令牌，支持"A:L2"、"AL2"、"A:2"、"A2"（大小写均可），以及1..12的全局车道序号
// 返回：道路与车道；无法解析时返回包装了ErrMalformedToken的错误
func ParseToken(s string) (entity.RoadID, entity.LaneID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, fmt.Errorf("%w: empty", ErrMalformedToken)
	}
	if isDigits(s) {
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrMalformedToken, s)
		}
		key, err := entity.LaneKeyFromNumber(int32(n))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		}
		return key.Road, key.Lane, nil
	}
	road, err := entity.ParseRoad(s[:1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedToken, s)
	}
	rest := strings.TrimPrefix(s[1:], ":")
	lane, err := parseLane(rest)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedToken, s)
	}
	return road, lane, nil
}

// ParseRoadLine 解析按道路分文件中的一行
// 功能：文件所属道路隐含在文件名中，行内容可以是：
// 1. 道路内车道"L1".."L3"或"1".."3"
// 2. 到达时间（浮点秒数，车流生成器的旧格式），视为该道路第二直行车道的一辆车
// 3. 完整令牌（见ParseToken），此时以令牌中的道路为准
func ParseRoadLine(road entity.RoadID, s string) (entity.RoadID, entity.LaneID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, fmt.Errorf("%w: empty", ErrMalformedToken)
	}
	if s[0] == 'L' || s[0] == 'l' || isDigits(s) {
		lane, err := parseLane(s)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q on road %v", ErrMalformedToken, s, road)
		}
		return road, lane, nil
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return road, entity.LaneSecondary, nil
	}
	return ParseToken(s)
}

// parseLane 解析"L2"或"2"形式的道路内车道编号
func parseLane(s string) (entity.LaneID, error) {
	if len(s) > 0 && (s[0] == 'L' || s[0] == 'l') {
		s = s[1:]
	}
	if len(s) != 1 || !isDigits(s) {
		return 0, fmt.Errorf("%w: %q", entity.ErrInvalidLane, s)
	}
	lane := entity.LaneID(s[0] - '0')
	if !lane.Valid() {
		return 0, fmt.Errorf("%w: %d", entity.ErrInvalidLane, lane)
	}
	return lane, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
