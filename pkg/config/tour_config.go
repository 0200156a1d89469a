package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/decker502/mazetour/pkg/embedded"
	"github.com/decker502/mazetour/pkg/path"
	"github.com/decker502/mazetour/pkg/utils"
)

// 默认值（配置文件中缺省时使用）
const (
	DefaultTargetFPS         = 60
	DefaultMinFPS            = 15
	DefaultMaxUpdateInterval = 4
	DefaultFPSWindowMs       = 1000
	DefaultLookAhead         = 10.0
	DefaultScrollStep        = 0.02
	DefaultScrollSmoothing   = 6.0
	DefaultBlendEasing       = "easeInOutCubic"
)

// 相机朝向模式
const (
	// CameraModeFollow 朝向沿路径切线（行进方向）
	CameraModeFollow = "follow"
	// CameraModeBlend 朝向在起止参考朝向之间球面插值
	CameraModeBlend = "blend"
)

// TourConfig 迷宫巡游配置
//
// 配置文件位置: data/tour.yaml
type TourConfig struct {
	// ClosestSamples 最近点搜索采样数（<= 0 使用默认值）
	ClosestSamples int `yaml:"closestSamples"`

	// Scheduler 自适应帧调度器参数
	Scheduler SchedulerConfig `yaml:"scheduler"`

	// Camera 相机参数
	Camera CameraConfig `yaml:"camera"`

	// Scroll 滚动输入参数
	Scroll ScrollConfig `yaml:"scroll"`

	// Sections 区段列表（按滚动进度范围划分）
	Sections []SectionConfig `yaml:"sections"`

	// Paths 路径键 → 路点列表
	Paths map[string][]WaypointConfig `yaml:"paths"`
}

// SchedulerConfig 自适应帧调度器参数
type SchedulerConfig struct {
	TargetFPS         int `yaml:"targetFps"`
	MinFPS            int `yaml:"minFps"`
	MaxUpdateInterval int `yaml:"maxUpdateInterval"`
	WindowMs          int `yaml:"windowMs"`
}

// CameraConfig 相机参数
type CameraConfig struct {
	// LookAhead 注视点距离（沿朝向的前方距离）
	LookAhead float64 `yaml:"lookAhead"`

	// StartOrientation / EndOrientation 朝向混合的两个参考朝向
	StartOrientation OrientationConfig `yaml:"startOrientation"`
	EndOrientation   OrientationConfig `yaml:"endOrientation"`

	// BlendEasing 混合区段中进度到混合系数的缓动函数名
	BlendEasing string `yaml:"blendEasing"`
}

// ScrollConfig 滚动输入参数
type ScrollConfig struct {
	Step      float64 `yaml:"step"`      // 每个滚轮刻度的进度增量
	Smoothing float64 `yaml:"smoothing"` // 平滑逼近速度（每秒）
}

// OrientationConfig 以欧拉角（度）描述的朝向
type OrientationConfig struct {
	Yaw   float64 `yaml:"yaw"`   // 绕 Y 轴
	Pitch float64 `yaml:"pitch"` // 绕 X 轴
}

// SectionConfig 区段配置
type SectionConfig struct {
	// Name 区段名（如 "home", "pov"）
	Name string `yaml:"name"`

	// From / To 区段覆盖的滚动进度范围 [From, To)
	// 最后一个区段包含 To = 1
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`

	// CameraMode 相机朝向模式: "follow" 或 "blend"
	CameraMode string `yaml:"cameraMode"`

	// CameraPath 相机使用的路径键
	CameraPath string `yaml:"cameraPath"`

	// Entities 实体 → 路径键
	Entities map[string]string `yaml:"entities"`
}

// PositionConfig 三维坐标
type PositionConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// WaypointConfig 路点配置
type WaypointConfig struct {
	Position PositionConfig `yaml:"position"`
	Type     string         `yaml:"type"`  // "straight" | "curve"
	Curve    string         `yaml:"curve"` // "upperArc" | "lowerArc" | "forwardDownArc" | "default"
}

// Vec3 转换为 mgl64.Vec3
func (p PositionConfig) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// Quat 转换为四元数：先绕 Y 轴偏航，再绕 X 轴俯仰
func (o OrientationConfig) Quat() mgl64.Quat {
	yaw := mgl64.QuatRotate(mgl64.DegToRad(o.Yaw), mgl64.Vec3{0, 1, 0})
	pitch := mgl64.QuatRotate(mgl64.DegToRad(o.Pitch), mgl64.Vec3{1, 0, 0})
	return yaw.Mul(pitch).Normalize()
}

// Waypoint 转换为 path.Waypoint
func (w WaypointConfig) Waypoint() path.Waypoint {
	return path.Waypoint{
		Position:    w.Position.Vec3(),
		SegmentType: path.SegmentType(w.Type),
		CurveKind:   path.CurveKind(w.Curve),
	}
}

// LoadTourConfig 加载迷宫巡游配置
//
// 优先从嵌入资源读取（embedded 已初始化且路径存在），
// 否则从文件系统读取（用于 --config 指定外部文件）。
//
// 参数:
//   - filePath: 配置文件路径（如 "data/tour.yaml"）
//
// 返回:
//   - *TourConfig: 已填充默认值并通过校验的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadTourConfig(filePath string) (*TourConfig, error) {
	var data []byte
	var err error
	if embedded.IsInitialized() && embedded.Exists(filePath) {
		data, err = embedded.ReadFile(filePath)
	} else {
		data, err = os.ReadFile(filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tour config: %w", err)
	}

	return ParseTourConfig(data)
}

// ParseTourConfig 解析 YAML 格式的巡游配置
func ParseTourConfig(data []byte) (*TourConfig, error) {
	var cfg TourConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tour config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tour config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults 为缺省字段填充默认值
func (c *TourConfig) applyDefaults() {
	if c.Scheduler.TargetFPS == 0 {
		c.Scheduler.TargetFPS = DefaultTargetFPS
	}
	if c.Scheduler.MinFPS == 0 {
		c.Scheduler.MinFPS = DefaultMinFPS
	}
	if c.Scheduler.MaxUpdateInterval == 0 {
		c.Scheduler.MaxUpdateInterval = DefaultMaxUpdateInterval
	}
	if c.Scheduler.WindowMs == 0 {
		c.Scheduler.WindowMs = DefaultFPSWindowMs
	}
	if c.Camera.LookAhead == 0 {
		c.Camera.LookAhead = DefaultLookAhead
	}
	if c.Camera.BlendEasing == "" {
		c.Camera.BlendEasing = DefaultBlendEasing
	}
	if c.Scroll.Step == 0 {
		c.Scroll.Step = DefaultScrollStep
	}
	if c.Scroll.Smoothing == 0 {
		c.Scroll.Smoothing = DefaultScrollSmoothing
	}
	if c.ClosestSamples <= 0 {
		c.ClosestSamples = path.DefaultClosestSamples
	}
	for i := range c.Sections {
		if c.Sections[i].CameraMode == "" {
			c.Sections[i].CameraMode = CameraModeFollow
		}
	}
}

// Validate 验证配置有效性
//
// 检查内容：
//   - 调度器参数为正，且 minFps <= targetFps
//   - 区段名非空且唯一，进度范围在 [0, 1] 内且 from < to
//   - 相机模式与缓动函数名合法
//   - 滚动参数为正
//   - 路点段类型为 straight 或 curve（最后一个路点可省略）
//
// 注意：路点数量不足 2 不是错误，注册时会降级为空路径。
// 未识别的弧形类型也不是错误，构建时按 upperArc 处理。
func (c *TourConfig) Validate() error {
	s := c.Scheduler
	if s.TargetFPS <= 0 {
		return fmt.Errorf("scheduler targetFps must be > 0, got %d", s.TargetFPS)
	}
	if s.MinFPS <= 0 || s.MinFPS > s.TargetFPS {
		return fmt.Errorf("scheduler minFps must be in (0, targetFps=%d], got %d", s.TargetFPS, s.MinFPS)
	}
	if s.MaxUpdateInterval < 1 {
		return fmt.Errorf("scheduler maxUpdateInterval must be >= 1, got %d", s.MaxUpdateInterval)
	}
	if s.WindowMs <= 0 {
		return fmt.Errorf("scheduler windowMs must be > 0, got %d", s.WindowMs)
	}
	if c.Camera.LookAhead < 0 {
		return fmt.Errorf("camera lookAhead must be >= 0, got %.2f", c.Camera.LookAhead)
	}
	if _, ok := utils.EasingByName(c.Camera.BlendEasing); !ok {
		return fmt.Errorf("camera blendEasing '%s' is not a known easing function", c.Camera.BlendEasing)
	}
	if c.Scroll.Step <= 0 || c.Scroll.Smoothing <= 0 {
		return fmt.Errorf("scroll step and smoothing must be > 0, got %.3f / %.2f", c.Scroll.Step, c.Scroll.Smoothing)
	}

	seen := make(map[string]bool, len(c.Sections))
	for i, sec := range c.Sections {
		if sec.Name == "" {
			return fmt.Errorf("section #%d has empty name", i)
		}
		if seen[sec.Name] {
			return fmt.Errorf("duplicate section name '%s'", sec.Name)
		}
		seen[sec.Name] = true

		if sec.From < 0 || sec.To > 1 || sec.From >= sec.To {
			return fmt.Errorf("section '%s' progress range invalid: from(%.2f) to(%.2f)", sec.Name, sec.From, sec.To)
		}
		if sec.CameraMode != CameraModeFollow && sec.CameraMode != CameraModeBlend {
			return fmt.Errorf("section '%s' has unknown cameraMode '%s'", sec.Name, sec.CameraMode)
		}
	}

	for key, waypoints := range c.Paths {
		for i, w := range waypoints {
			// 最后一个路点没有出发段，可以省略 type
			if i == len(waypoints)-1 && w.Type == "" {
				continue
			}
			switch path.SegmentType(w.Type) {
			case path.SegmentStraight, path.SegmentCurve:
			default:
				return fmt.Errorf("path '%s' waypoint #%d has unknown type '%s'", key, i, w.Type)
			}
		}
	}

	return nil
}

// SectionTable 构建路径注册表使用的区段映射
func (c *TourConfig) SectionTable() path.SectionTable {
	table := make(path.SectionTable, len(c.Sections))
	for _, sec := range c.Sections {
		entities := make(map[path.EntityID]string, len(sec.Entities))
		for entity, key := range sec.Entities {
			entities[path.EntityID(entity)] = key
		}
		table[path.SectionID(sec.Name)] = entities
	}
	return table
}

// Waypoints 将所有路径配置转换为路点列表
func (c *TourConfig) Waypoints() map[string][]path.Waypoint {
	out := make(map[string][]path.Waypoint, len(c.Paths))
	for key, list := range c.Paths {
		waypoints := make([]path.Waypoint, len(list))
		for i, w := range list {
			waypoints[i] = w.Waypoint()
		}
		out[key] = waypoints
	}
	return out
}

// Section 按名称查找区段
func (c *TourConfig) Section(name string) (*SectionConfig, bool) {
	for i := range c.Sections {
		if c.Sections[i].Name == name {
			return &c.Sections[i], true
		}
	}
	return nil, false
}

// SectionForProgress 返回滚动进度所在的区段
//
// 区段范围为 [From, To)，进度为 1 时归入 To == 1 的区段。
// 没有区段覆盖该进度时返回 false。
func (c *TourConfig) SectionForProgress(progress float64) (*SectionConfig, bool) {
	for i := range c.Sections {
		sec := &c.Sections[i]
		if progress >= sec.From && progress < sec.To {
			return sec, true
		}
		if progress == 1 && sec.To == 1 {
			return sec, true
		}
	}
	return nil, false
}

// LocalProgress 将全局滚动进度映射为区段内进度 [0, 1]
func (s *SectionConfig) LocalProgress(progress float64) float64 {
	span := s.To - s.From
	if span <= 0 {
		return 0
	}
	return mgl64.Clamp((progress-s.From)/span, 0, 1)
}
