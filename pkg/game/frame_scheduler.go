package game

import (
	"log"
	"math"
	"time"
)

// SchedulerOptions 自适应帧调度器参数
type SchedulerOptions struct {
	// TargetFPS 目标帧率（默认 60）
	TargetFPS int
	// MinFPS 低于此帧率时进入封顶降级（默认 15）
	MinFPS int
	// MaxUpdateInterval 低帧率时的最大更新间隔（默认 4）
	MaxUpdateInterval int
	// Window 帧率测量窗口（默认 1 秒）
	Window time.Duration
}

// DefaultSchedulerOptions 返回默认调度器参数
func DefaultSchedulerOptions() SchedulerOptions {
	return SchedulerOptions{
		TargetFPS:         60,
		MinFPS:            15,
		MaxUpdateInterval: 4,
		Window:            time.Second,
	}
}

// FrameScheduler 自适应帧调度器
//
// 按固定窗口（默认 1 秒）测量实际帧率，并据此决定每帧是否执行
// 昂贵的更新（路径采样、蒙皮、阴影重算等）：
//   - 帧率 >= 90% 目标：每帧都执行（间隔 1）
//   - 帧率 < MinFPS：间隔 = min(MaxUpdateInterval, ceil(目标/实际))
//   - 其余：间隔 = max(1, ceil(目标/实际))
//
// 恢复阈值（90%）与降级公式不对称，避免在临界设备上
// 于间隔 1 和间隔 N 之间来回振荡。
//
// 调度器只被帧循环的驱动方持有和修改，不需要加锁。
type FrameScheduler struct {
	clock Clock
	opts  SchedulerOptions

	frameCount     int
	lastCheck      time.Time
	currentFPS     float64
	updateInterval int
	skipCounter    int
	lastSkipped    bool
}

// NewFrameScheduler 创建自适应帧调度器
//
// 参数:
//   - clock: 时间源，nil 时使用 SystemClock
//   - opts: 调度参数，零值字段使用默认值
func NewFrameScheduler(clock Clock, opts SchedulerOptions) *FrameScheduler {
	if clock == nil {
		clock = SystemClock{}
	}

	defaults := DefaultSchedulerOptions()
	if opts.TargetFPS <= 0 {
		opts.TargetFPS = defaults.TargetFPS
	}
	if opts.MinFPS <= 0 {
		opts.MinFPS = defaults.MinFPS
	}
	if opts.MaxUpdateInterval < 1 {
		opts.MaxUpdateInterval = defaults.MaxUpdateInterval
	}
	if opts.Window <= 0 {
		opts.Window = defaults.Window
	}

	fs := &FrameScheduler{
		clock: clock,
		opts:  opts,
	}
	fs.Reset()
	return fs
}

// Update 每个渲染帧调用一次
//
// 返回:
//   - true: 本帧执行完整更新
//   - false: 本帧跳过，调用方复用上一帧结果
func (fs *FrameScheduler) Update() bool {
	fs.frameCount++

	now := fs.clock.Now()
	if now.Sub(fs.lastCheck) >= fs.opts.Window {
		fs.currentFPS = float64(fs.frameCount) / fs.opts.Window.Seconds()
		fs.frameCount = 0
		fs.lastCheck = now
		fs.recomputeInterval()
	}

	fs.skipCounter++
	if fs.skipCounter >= fs.updateInterval {
		fs.skipCounter = 0
		fs.lastSkipped = false
		return true
	}

	fs.lastSkipped = true
	return false
}

// recomputeInterval 根据最新测得的帧率重新计算更新间隔
func (fs *FrameScheduler) recomputeInterval() {
	target := float64(fs.opts.TargetFPS)
	previous := fs.updateInterval

	switch {
	case fs.currentFPS <= 0:
		fs.updateInterval = fs.opts.MaxUpdateInterval
	case fs.currentFPS < float64(fs.opts.MinFPS):
		fs.updateInterval = min(fs.opts.MaxUpdateInterval, int(math.Ceil(target/fs.currentFPS)))
	case fs.currentFPS >= 0.9*target:
		fs.updateInterval = 1
	default:
		fs.updateInterval = max(1, int(math.Ceil(target/fs.currentFPS)))
	}

	if fs.updateInterval != previous {
		log.Printf("[FrameScheduler] Measured %.1f FPS, update interval %d -> %d",
			fs.currentFPS, previous, fs.updateInterval)
	}
}

// ShouldSkipFrame 返回最近一次 Update() 是否判定为跳过
// 仅用于诊断/遥测，不修改状态
func (fs *FrameScheduler) ShouldSkipFrame() bool {
	return fs.lastSkipped
}

// Reset 重新初始化所有计数器
// 用于暂停/恢复之后，避免暂停前的低帧率判定残留
func (fs *FrameScheduler) Reset() {
	fs.frameCount = 0
	fs.skipCounter = 0
	fs.lastSkipped = false
	fs.lastCheck = fs.clock.Now()
	fs.currentFPS = float64(fs.opts.TargetFPS)
	fs.updateInterval = 1
}

// CurrentFPS 返回最近一个测量窗口的帧率
func (fs *FrameScheduler) CurrentFPS() float64 {
	return fs.currentFPS
}

// UpdateInterval 返回当前更新间隔（每 N 帧执行一次完整更新）
func (fs *FrameScheduler) UpdateInterval() int {
	return fs.updateInterval
}

// Options 返回调度器参数
func (fs *FrameScheduler) Options() SchedulerOptions {
	return fs.opts
}
