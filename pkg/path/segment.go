package path

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// ArcLengthDivisions 二次曲线弧长近似时使用的折线分段数
const ArcLengthDivisions = 200

// SegmentKind 段的变体标签
type SegmentKind int

const (
	// SegmentLine 直线段 Start → End
	SegmentLine SegmentKind = iota
	// SegmentQuadratic 二次贝塞尔段 Start → Control → End
	SegmentQuadratic
)

// String 返回变体名称（用于日志）
func (k SegmentKind) String() string {
	switch k {
	case SegmentLine:
		return "line"
	case SegmentQuadratic:
		return "quadratic"
	default:
		return "unknown"
	}
}

// Segment 路径段（直线或二次曲线）
//
// 这是一个带标签的变体：Kind 决定 Control 是否有意义。
// Segment 构造后不可修改，arcLengths 在构造时一次性计算。
type Segment struct {
	Kind    SegmentKind
	Start   mgl64.Vec3
	Control mgl64.Vec3 // 仅 SegmentQuadratic 使用
	End     mgl64.Vec3

	// arcLengths[i] 是参数 i/ArcLengthDivisions 处的累计弧长
	// 直线段为 nil（参数化本身就是等弧长的）
	arcLengths []float64
	length     float64
}

// NewLine 创建直线段
func NewLine(start, end mgl64.Vec3) Segment {
	return Segment{
		Kind:   SegmentLine,
		Start:  start,
		End:    end,
		length: end.Sub(start).Len(),
	}
}

// NewQuadratic 创建二次贝塞尔段
func NewQuadratic(start, control, end mgl64.Vec3) Segment {
	s := Segment{
		Kind:    SegmentQuadratic,
		Start:   start,
		Control: control,
		End:     end,
	}
	s.arcLengths = make([]float64, ArcLengthDivisions+1)
	prev := start
	sum := 0.0
	for i := 1; i <= ArcLengthDivisions; i++ {
		p := s.rawPoint(float64(i) / ArcLengthDivisions)
		sum += p.Sub(prev).Len()
		s.arcLengths[i] = sum
		prev = p
	}
	s.length = sum
	return s
}

// Length 返回段长度（二次曲线为折线近似值）
func (s Segment) Length() float64 {
	return s.length
}

// Point 返回段在子参数 u ∈ [0, 1] 处的点
// u 按弧长比例解释（等速运动）
func (s Segment) Point(u float64) mgl64.Vec3 {
	return s.rawPoint(s.uToT(u))
}

// Tangent 返回段在子参数 u ∈ [0, 1] 处的单位切线
func (s Segment) Tangent(u float64) mgl64.Vec3 {
	d := s.rawDerivative(s.uToT(u))
	if d.Len() < 1e-12 {
		// 退化段（起止点重合），退回到弦方向
		d = s.End.Sub(s.Start)
		if d.Len() < 1e-12 {
			return mgl64.Vec3{}
		}
	}
	return d.Normalize()
}

// rawPoint 按曲线自身参数 t 求点
func (s Segment) rawPoint(t float64) mgl64.Vec3 {
	if s.Kind == SegmentQuadratic {
		return mgl64.QuadraticBezierCurve3D(t, s.Start, s.Control, s.End)
	}
	return s.Start.Mul(1 - t).Add(s.End.Mul(t))
}

// rawDerivative 按曲线自身参数 t 求导数
// 二次贝塞尔：B'(t) = 2(1-t)(P1-P0) + 2t(P2-P1)
func (s Segment) rawDerivative(t float64) mgl64.Vec3 {
	if s.Kind == SegmentQuadratic {
		a := s.Control.Sub(s.Start).Mul(2 * (1 - t))
		b := s.End.Sub(s.Control).Mul(2 * t)
		return a.Add(b)
	}
	return s.End.Sub(s.Start)
}

// uToT 将弧长比例参数 u 映射为曲线自身参数 t
func (s Segment) uToT(u float64) float64 {
	if s.arcLengths == nil || s.length == 0 {
		return u
	}

	target := u * s.length
	n := len(s.arcLengths)

	// 找到第一个 arcLengths[i] >= target 的下标
	i := sort.SearchFloat64s(s.arcLengths, target)
	if i <= 0 {
		return 0
	}
	if i >= n {
		return 1
	}

	before := s.arcLengths[i-1]
	after := s.arcLengths[i]
	frac := 0.0
	if after > before {
		frac = (target - before) / (after - before)
	}
	return math.Min(1, (float64(i-1)+frac)/float64(n-1))
}
