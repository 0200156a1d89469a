package components

// ScrollComponent 滚动进度
//
// Target 由输入直接驱动，Progress 每帧向 Target 平滑逼近，
// 两者都限制在 [0, 1]。
type ScrollComponent struct {
	// Progress 平滑后的进度，驱动区段检测和路径参数
	Progress float64

	// Target 输入累积的目标进度
	Target float64

	// Step 每个滚轮刻度/按键对应的进度增量
	Step float64

	// Smoothing 逼近速度（每秒），越大越跟手
	Smoothing float64
}
