package path

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Path 复合路径
//
// 由有序的直线段/二次曲线段组成，构造后不可修改。
// 归一化参数 t ∈ [0, 1] 按各段长度占比分配到段上，
// 段内再按该段的弧长表映射为曲线参数。
//
// 零段路径（空路径）是合法值，表示"本区段无运动定义"。
type Path struct {
	segments []Segment
	// cumulative[i] 是前 i+1 段的累计长度
	cumulative []float64
}

// NewPath 由段列表创建路径（复制输入，调用方后续修改不影响路径）
func NewPath(segments []Segment) *Path {
	p := &Path{
		segments:   make([]Segment, len(segments)),
		cumulative: make([]float64, len(segments)),
	}
	copy(p.segments, segments)

	sum := 0.0
	for i, seg := range p.segments {
		sum += seg.Length()
		p.cumulative[i] = sum
	}
	return p
}

// IsEmpty 返回路径是否没有任何段
// nil 路径也视为空路径
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.segments) == 0
}

// SegmentCount 返回段数量
func (p *Path) SegmentCount() int {
	if p == nil {
		return 0
	}
	return len(p.segments)
}

// Segments 返回段列表的副本
func (p *Path) Segments() []Segment {
	if p == nil {
		return nil
	}
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// Length 返回路径总长度
func (p *Path) Length() float64 {
	if p.IsEmpty() {
		return 0
	}
	return p.cumulative[len(p.cumulative)-1]
}

// PointAt 返回参数 t 处的点
//
// t 会被钳制到 [0, 1]。空路径返回 false（无结果），
// 调用方应将其视为"该实体在本区段没有定义运动"，通常保持上一帧位置。
func (p *Path) PointAt(t float64) (mgl64.Vec3, bool) {
	if p.IsEmpty() {
		return mgl64.Vec3{}, false
	}
	seg, u := p.locate(t)
	return p.segments[seg].Point(u), true
}

// TangentAt 返回参数 t 处的单位切线，规则同 PointAt
func (p *Path) TangentAt(t float64) (mgl64.Vec3, bool) {
	if p.IsEmpty() {
		return mgl64.Vec3{}, false
	}
	seg, u := p.locate(t)
	return p.segments[seg].Tangent(u), true
}

// locate 将全局参数 t 映射为 (段下标, 段内参数 u)
func (p *Path) locate(t float64) (int, float64) {
	t = mgl64.Clamp(t, 0, 1)

	total := p.cumulative[len(p.cumulative)-1]
	d := t * total

	// 第一个累计长度 >= d 的段
	i := sort.SearchFloat64s(p.cumulative, d)
	if i >= len(p.segments) {
		i = len(p.segments) - 1
	}

	segLen := p.segments[i].Length()
	if segLen == 0 {
		return i, 0
	}
	diff := p.cumulative[i] - d
	return i, mgl64.Clamp(1-diff/segLen, 0, 1)
}
