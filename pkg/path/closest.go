package path

import "github.com/go-gl/mathgl/mgl64"

// DefaultClosestSamples 最近点搜索的默认采样数
// 该搜索只在区段切换等过渡时刻调用，不是每帧调用
const DefaultClosestSamples = 200

// ClosestResult 最近点搜索结果
type ClosestResult struct {
	// T 最近采样点的路径参数；未找到时为 0
	T float64
	// Point 最近采样点
	Point mgl64.Vec3
	// Found 为 false 表示路径没有几何（空路径），
	// 用于区分"确实在 t=0"与"路径无定义"
	Found bool
}

// FindClosestParameter 查找路径上离 target 最近的采样点参数
//
// 在 [0, 1] 上均匀采样 samples+1 个点（含两端），
// 比较与 target 的平方欧氏距离，保留最小值。
// 距离相等时保留先遇到的采样（t 更小者）。
//
// 参数:
//   - p: 路径（可为 nil）
//   - target: 任意空间位置，不要求在路径上
//   - samples: 采样密度；<= 0 时使用 DefaultClosestSamples
//
// 返回:
//   - ClosestResult: 空路径时 {T: 0, Found: false}
//
// 注意:
//   - 这是粗搜索，精度受 samples 限制，没有迭代细化
func FindClosestParameter(p *Path, target mgl64.Vec3, samples int) ClosestResult {
	if p.IsEmpty() {
		return ClosestResult{}
	}
	if samples <= 0 {
		samples = DefaultClosestSamples
	}

	best := ClosestResult{Found: true}
	bestDist := -1.0
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples)
		point, _ := p.PointAt(t)
		diff := point.Sub(target)
		dist := diff.Dot(diff)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best.T = t
			best.Point = point
		}
	}
	return best
}
