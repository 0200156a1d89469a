package systems

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/mazetour/pkg/components"
	"github.com/decker502/mazetour/pkg/ecs"
	"github.com/decker502/mazetour/pkg/utils"
)

// ScrollEntityName 滚动状态实体名称
const ScrollEntityName = "scroll"

// settleEpsilon 进度与目标差值小于此值时直接对齐
const settleEpsilon = 1e-4

// ScrollSystem 把滚动输入转换为平滑的整体进度
//
// 输入只修改 Target；Update 每帧让 Progress 指数逼近 Target。
// 区段检测和路径采样都读 Progress。
type ScrollSystem struct {
	entityManager *ecs.EntityManager
	scrollEntity  ecs.EntityID
	scroll        *components.ScrollComponent
}

// NewScrollSystem 创建滚动系统
//
// 参数:
//   - em: 实体管理器
//   - start: 初始进度（例如上次退出时保存的进度）
//   - step: 每个滚动步的进度增量
//   - smoothing: 逼近速度（每秒）
func NewScrollSystem(em *ecs.EntityManager, start, step, smoothing float64) *ScrollSystem {
	start = mgl64.Clamp(start, 0, 1)
	s := &ScrollSystem{
		entityManager: em,
		scrollEntity:  em.CreateNamedEntity(ScrollEntityName),
		scroll: &components.ScrollComponent{
			Progress:  start,
			Target:    start,
			Step:      step,
			Smoothing: smoothing,
		},
	}
	ecs.AddComponent(em, s.scrollEntity, s.scroll)
	return s
}

// Apply 累加一帧的滚动输入
func (s *ScrollSystem) Apply(in utils.ScrollInput) {
	if in.IsZero() {
		return
	}
	steps := in.Steps(utils.DefaultPixelsPerStep)
	s.scroll.Target = mgl64.Clamp(s.scroll.Target+steps*s.scroll.Step, 0, 1)
}

// JumpTo 直接跳到指定进度（不做平滑）
func (s *ScrollSystem) JumpTo(progress float64) {
	progress = mgl64.Clamp(progress, 0, 1)
	s.scroll.Target = progress
	s.scroll.Progress = progress
}

// Update 让 Progress 向 Target 逼近
// dt 为距上次执行更新的时间（秒），跳过的帧会累积到下一次执行
func (s *ScrollSystem) Update(dt float64) {
	sc := s.scroll
	sc.Progress = utils.Approach(sc.Progress, sc.Target, sc.Smoothing, dt)
	if d := sc.Target - sc.Progress; d < settleEpsilon && d > -settleEpsilon {
		sc.Progress = sc.Target
	}
}

// Progress 返回平滑后的进度
func (s *ScrollSystem) Progress() float64 {
	return s.scroll.Progress
}

// Target 返回目标进度
func (s *ScrollSystem) Target() float64 {
	return s.scroll.Target
}
