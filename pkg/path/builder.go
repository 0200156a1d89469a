package path

import "github.com/go-gl/mathgl/mgl64"

// Build 将有序路点列表构建为复合路径
//
// 对每对相邻路点 (current, next)：
//   - straight: 追加直线段 current → next
//   - curve:    按 current.CurveKind 计算控制点，追加二次曲线段
//
// 参数:
//   - waypoints: 路点列表，至少 2 个才能产生一段
//
// 返回:
//   - *Path: 新的不可变路径；路点不足 2 个时返回空路径（不报错）
//
// 注意:
//   - 纯函数：相同输入总是产生采样结果完全一致的路径
//   - 未知的 SegmentType 按直线处理（加载配置时已校验，这里只做兜底）
func Build(waypoints []Waypoint) *Path {
	if len(waypoints) < 2 {
		return NewPath(nil)
	}

	segments := make([]Segment, 0, len(waypoints)-1)
	for i := 0; i < len(waypoints)-1; i++ {
		current := waypoints[i]
		next := waypoints[i+1]

		if current.SegmentType == SegmentCurve {
			mid := ControlPoint(current.CurveKind, current.Position, next.Position)
			segments = append(segments, NewQuadratic(current.Position, mid, next.Position))
			continue
		}
		segments = append(segments, NewLine(current.Position, next.Position))
	}

	return NewPath(segments)
}

// ControlPoint 按弧形类型组合两个端点的坐标分量，得到二次曲线控制点
//
// 示例:
//
//	ControlPoint(CurveUpperArc, (1,2,3), (4,5,6)) = (1,2,6)
//	ControlPoint(CurveLowerArc, (1,2,3), (4,5,6)) = (4,2,3)
//	ControlPoint(CurveForwardDownArc, (1,2,3), (4,5,6)) = (1,5,3)
func ControlPoint(kind CurveKind, current, next mgl64.Vec3) mgl64.Vec3 {
	switch kind {
	case CurveLowerArc:
		return mgl64.Vec3{next.X(), current.Y(), current.Z()}
	case CurveForwardDownArc:
		return mgl64.Vec3{current.X(), next.Y(), current.Z()}
	default:
		// upperArc / default / 未识别类型
		return mgl64.Vec3{current.X(), current.Y(), next.Z()}
	}
}
