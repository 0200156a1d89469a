package path

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const testEpsilon = 1e-9

// TestBuildStraightOnly 测试纯直线路点列表
// 段数 = 路点数 - 1，起点和终点与首尾路点一致
func TestBuildStraightOnly(t *testing.T) {
	tests := []struct {
		name      string
		waypoints []Waypoint
	}{
		{
			name:      "两个路点",
			waypoints: []Waypoint{Straight(0, 0, 0), Straight(10, 0, 0)},
		},
		{
			name: "折线",
			waypoints: []Waypoint{
				Straight(0, 0, 0),
				Straight(0, 0, -5),
				Straight(4, 0, -5),
				Straight(4, 3, -5),
			},
		},
		{
			name: "包含重合点",
			waypoints: []Waypoint{
				Straight(1, 1, 1),
				Straight(1, 1, 1),
				Straight(2, 2, 2),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(tt.waypoints)

			if p.SegmentCount() != len(tt.waypoints)-1 {
				t.Fatalf("expected %d segments, got %d", len(tt.waypoints)-1, p.SegmentCount())
			}
			for i, seg := range p.Segments() {
				if seg.Kind != SegmentLine {
					t.Errorf("segment %d: expected line, got %s", i, seg.Kind)
				}
			}

			start, ok := p.PointAt(0)
			if !ok {
				t.Fatal("PointAt(0) returned no result")
			}
			if !start.ApproxEqualThreshold(tt.waypoints[0].Position, testEpsilon) {
				t.Errorf("PointAt(0) = %v, expected %v", start, tt.waypoints[0].Position)
			}

			end, ok := p.PointAt(1)
			if !ok {
				t.Fatal("PointAt(1) returned no result")
			}
			last := tt.waypoints[len(tt.waypoints)-1].Position
			if !end.ApproxEqualThreshold(last, testEpsilon) {
				t.Errorf("PointAt(1) = %v, expected %v", end, last)
			}
		})
	}
}

// TestControlPoint 测试各弧形类型的控制点分量组合
func TestControlPoint(t *testing.T) {
	current := mgl64.Vec3{1, 2, 3}
	next := mgl64.Vec3{4, 5, 6}

	tests := []struct {
		kind     CurveKind
		expected mgl64.Vec3
	}{
		{CurveUpperArc, mgl64.Vec3{1, 2, 6}},
		{CurveLowerArc, mgl64.Vec3{4, 2, 3}},
		{CurveForwardDownArc, mgl64.Vec3{1, 5, 3}},
		{CurveDefault, mgl64.Vec3{1, 2, 6}},
		{CurveKind("spiral"), mgl64.Vec3{1, 2, 6}},
		{CurveKind(""), mgl64.Vec3{1, 2, 6}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got := ControlPoint(tt.kind, current, next)
			if got != tt.expected {
				t.Errorf("ControlPoint(%q) = %v, expected %v", tt.kind, got, tt.expected)
			}
		})
	}
}

// TestBuildCurveSegment 测试单个 upperArc 曲线段的构建
func TestBuildCurveSegment(t *testing.T) {
	p := Build([]Waypoint{
		Curve(1, 2, 3, CurveUpperArc),
		Straight(4, 5, 6),
	})

	segments := p.Segments()
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}

	seg := segments[0]
	if seg.Kind != SegmentQuadratic {
		t.Fatalf("expected quadratic segment, got %s", seg.Kind)
	}
	if seg.Control != (mgl64.Vec3{1, 2, 6}) {
		t.Errorf("expected control point (1,2,6), got %v", seg.Control)
	}
	if seg.Start != (mgl64.Vec3{1, 2, 3}) || seg.End != (mgl64.Vec3{4, 5, 6}) {
		t.Errorf("unexpected endpoints: start=%v end=%v", seg.Start, seg.End)
	}

	end, _ := p.PointAt(1)
	if !end.ApproxEqualThreshold(mgl64.Vec3{4, 5, 6}, testEpsilon) {
		t.Errorf("PointAt(1) = %v, expected (4,5,6)", end)
	}
}

// TestBuildMixedSegments 测试直线与曲线混合
func TestBuildMixedSegments(t *testing.T) {
	p := Build([]Waypoint{
		Straight(0, 0, 0),
		Curve(0, 0, -10, CurveLowerArc),
		Curve(10, 0, -20, CurveForwardDownArc),
		Straight(10, -5, -30),
	})

	kinds := []SegmentKind{SegmentLine, SegmentQuadratic, SegmentQuadratic}
	segments := p.Segments()
	if len(segments) != len(kinds) {
		t.Fatalf("expected %d segments, got %d", len(kinds), len(segments))
	}
	for i, k := range kinds {
		if segments[i].Kind != k {
			t.Errorf("segment %d: expected %s, got %s", i, k, segments[i].Kind)
		}
	}

	// 最后一个路点的段类型不产生任何段
	if segments[2].End != (mgl64.Vec3{10, -5, -30}) {
		t.Errorf("last segment should end at final waypoint, got %v", segments[2].End)
	}
}

// TestBuildTooFewWaypoints 测试路点不足时返回空路径
func TestBuildTooFewWaypoints(t *testing.T) {
	tests := []struct {
		name      string
		waypoints []Waypoint
	}{
		{"nil", nil},
		{"空列表", []Waypoint{}},
		{"单个路点", []Waypoint{Straight(1, 2, 3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(tt.waypoints)
			if p == nil {
				t.Fatal("Build should never return nil")
			}
			if !p.IsEmpty() || p.SegmentCount() != 0 {
				t.Errorf("expected empty path, got %d segments", p.SegmentCount())
			}
			if _, ok := p.PointAt(0.5); ok {
				t.Error("PointAt on empty path should report absence")
			}
			if _, ok := p.TangentAt(0.5); ok {
				t.Error("TangentAt on empty path should report absence")
			}
		})
	}
}

// TestBuildDeterministic 测试相同输入构建两次，采样结果完全一致
func TestBuildDeterministic(t *testing.T) {
	waypoints := []Waypoint{
		Straight(0, 0, 0),
		Curve(2, 0, -6, CurveUpperArc),
		Curve(8, 1, -6, CurveLowerArc),
		Curve(8, 4, 2, CurveDefault),
		Straight(0, 0, 4),
	}

	a := Build(waypoints)
	b := Build(waypoints)

	for i := 0; i <= 100; i++ {
		tt := float64(i) / 100
		pa, _ := a.PointAt(tt)
		pb, _ := b.PointAt(tt)
		if pa != pb {
			t.Fatalf("PointAt(%v) differs: %v vs %v", tt, pa, pb)
		}
		ta, _ := a.TangentAt(tt)
		tb, _ := b.TangentAt(tt)
		if ta != tb {
			t.Fatalf("TangentAt(%v) differs: %v vs %v", tt, ta, tb)
		}
	}
}

// TestBuildDoesNotAliasInput 测试构建后修改输入不影响路径
func TestBuildDoesNotAliasInput(t *testing.T) {
	waypoints := []Waypoint{Straight(0, 0, 0), Straight(10, 0, 0)}
	p := Build(waypoints)

	waypoints[1].Position = mgl64.Vec3{99, 99, 99}

	end, _ := p.PointAt(1)
	if !end.ApproxEqualThreshold(mgl64.Vec3{10, 0, 0}, testEpsilon) {
		t.Errorf("path changed after mutating input: end = %v", end)
	}
}
