// Package path 提供迷宫巡游的路径构建、采样和最近点搜索
//
// 离散的路点（Waypoint）被拼接为连续的复合曲线（Path），
// 曲线由直线段和二次贝塞尔段组成，共享一个归一化参数 t ∈ [0, 1]。
// 所有操作都是纯函数或只读查询，可以在每帧回调中安全调用。
package path

import "github.com/go-gl/mathgl/mgl64"

// SegmentType 路点出发段的运动类型
type SegmentType string

const (
	// SegmentStraight 直线段
	SegmentStraight SegmentType = "straight"
	// SegmentCurve 二次曲线段（控制点由 CurveKind 决定）
	SegmentCurve SegmentType = "curve"
)

// CurveKind 曲线段的弧形类型
// 仅在 SegmentType == SegmentCurve 时有意义
type CurveKind string

const (
	// CurveUpperArc 控制点 = (current.x, current.y, next.z)
	CurveUpperArc CurveKind = "upperArc"
	// CurveLowerArc 控制点 = (next.x, current.y, current.z)
	CurveLowerArc CurveKind = "lowerArc"
	// CurveForwardDownArc 控制点 = (current.x, next.y, current.z)
	CurveForwardDownArc CurveKind = "forwardDownArc"
	// CurveDefault 默认弧形，与 CurveUpperArc 相同
	CurveDefault CurveKind = "default"
)

// Waypoint 路点
//
// 定义从本路点出发、到列表中下一个路点结束的一段运动。
// 列表中最后一个路点没有出发段。
type Waypoint struct {
	Position    mgl64.Vec3
	SegmentType SegmentType
	CurveKind   CurveKind
}

// Straight 创建直线段路点（便捷构造函数）
func Straight(x, y, z float64) Waypoint {
	return Waypoint{Position: mgl64.Vec3{x, y, z}, SegmentType: SegmentStraight}
}

// Curve 创建曲线段路点（便捷构造函数）
func Curve(x, y, z float64, kind CurveKind) Waypoint {
	return Waypoint{Position: mgl64.Vec3{x, y, z}, SegmentType: SegmentCurve, CurveKind: kind}
}
