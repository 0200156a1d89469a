package components

import "github.com/go-gl/mathgl/mgl64"

// CameraForward 相机局部坐标系的前方向（右手系，看向 -Z）
var CameraForward = mgl64.Vec3{0, 0, -1}

// OrientationMode 相机朝向来源
type OrientationMode int

const (
	// OrientationFollowPath 朝向路径切线（沿行进方向）
	OrientationFollowPath OrientationMode = iota
	// OrientationBlend 在起始/结束参考朝向之间球面插值
	OrientationBlend
)

// String 返回朝向模式名称
func (m OrientationMode) String() string {
	switch m {
	case OrientationFollowPath:
		return "follow"
	case OrientationBlend:
		return "blend"
	default:
		return "unknown"
	}
}

// Pose 一帧解析出的位置与朝向
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// CameraComponent 相机状态
//
// 每个执行帧由 CameraSystem 写入一次，渲染只读。
type CameraComponent struct {
	// Position 当前位置（世界坐标）
	Position mgl64.Vec3

	// Orientation 当前朝向
	Orientation mgl64.Quat

	// StartOrientation / EndOrientation 混合模式使用的两个参考朝向
	StartOrientation mgl64.Quat
	EndOrientation   mgl64.Quat

	// LookAhead 注视点距离
	LookAhead float64

	// Mode 最近一次解析使用的朝向模式
	Mode OrientationMode

	// PathKey 当前跟随的路径键
	PathKey string

	// Anchor 进入当前路径时的参数
	// 切换路径时由最近点搜索得到，使相机从当前所在位置继续
	Anchor float64

	// Reverse 是否反向进入当前路径（滚动回退）
	Reverse bool

	// HasPose 是否至少解析过一次
	HasPose bool
}
