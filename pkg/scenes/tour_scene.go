package scenes

import (
	"log"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/mazetour/pkg/components"
	"github.com/decker502/mazetour/pkg/config"
	"github.com/decker502/mazetour/pkg/ecs"
	"github.com/decker502/mazetour/pkg/game"
	"github.com/decker502/mazetour/pkg/path"
	"github.com/decker502/mazetour/pkg/systems"
	"github.com/decker502/mazetour/pkg/utils"
)

// FrameInput 一帧内读取到的用户输入
type FrameInput struct {
	Scroll      utils.ScrollInput
	TogglePaths bool
	ToggleHUD   bool
}

// TourSceneOptions 创建漫游场景所需的依赖
type TourSceneOptions struct {
	Config    *config.TourConfig
	Registry  *path.Registry
	Scheduler *game.FrameScheduler
	// Settings 可为 nil（不持久化）
	Settings *game.SettingsManager
	// StartSection 非空时从该区段起点开始，否则从保存的进度继续
	StartSection string
	// ReadInput 为 nil 时读取 ebiten 输入
	ReadInput func() FrameInput
}

// TourScene 滚动驱动的迷宫漫游场景
//
// 每帧流程：
//  1. 读取输入，累积滚动目标（廉价，每帧执行）
//  2. FrameScheduler 判定本帧是否执行昂贵更新
//  3. 执行时：平滑滚动进度 → 区段检测 → 实体沿路径放置 → 相机解析
//
// 跳过的帧不采样路径，实体和相机保持上一次的位姿。
type TourScene struct {
	cfg       *config.TourConfig
	registry  *path.Registry
	scheduler *game.FrameScheduler
	settings  *game.SettingsManager

	entityManager *ecs.EntityManager
	camera        *systems.CameraSystem
	follow        *systems.PathFollowSystem
	scroll        *systems.ScrollSystem

	readInput func() FrameInput
	drag      utils.DragTracker
	blendEase utils.EasingFunc

	section   *config.SectionConfig
	pendingDt float64
	paused    bool

	showPaths bool
	showHUD   bool

	// 绘制缓存：路径键 → 投影后的折线
	pathKeys      []string
	pathPolylines map[string][]mgl64.Vec3
}

// NewTourScene 创建漫游场景
func NewTourScene(opts TourSceneOptions) *TourScene {
	cfg := opts.Config
	em := ecs.NewEntityManager()

	s := &TourScene{
		cfg:           cfg,
		registry:      opts.Registry,
		scheduler:     opts.Scheduler,
		settings:      opts.Settings,
		entityManager: em,
		camera: systems.NewCameraSystem(em,
			cfg.Camera.StartOrientation.Quat(),
			cfg.Camera.EndOrientation.Quat(),
			cfg.Camera.LookAhead),
		follow:    systems.NewPathFollowSystem(em, opts.Registry, cfg.ClosestSamples),
		readInput: opts.ReadInput,
		showPaths: true,
		showHUD:   true,
	}
	if s.readInput == nil {
		s.readInput = s.readEbitenInput
	}

	ease, ok := utils.EasingByName(cfg.Camera.BlendEasing)
	if !ok {
		ease = utils.EaseLinear
	}
	s.blendEase = ease

	start := 0.0
	if s.settings != nil {
		saved := s.settings.GetSettings()
		start = saved.LastProgress
		s.showPaths = saved.ShowPaths
		s.showHUD = saved.ShowHUD
	}
	if opts.StartSection != "" {
		if sec, ok := cfg.Section(opts.StartSection); ok {
			start = sec.From
		} else {
			log.Printf("[TourScene] Warning: unknown start section %q, using progress %.3f", opts.StartSection, start)
		}
	}
	s.scroll = systems.NewScrollSystem(em, start, cfg.Scroll.Step, cfg.Scroll.Smoothing)

	s.buildPolylines()
	s.advance(0)

	log.Printf("[TourScene] Started at progress %.3f, section %q", start, s.SectionName())
	return s
}

// Update 每帧调用
func (s *TourScene) Update(deltaTime float64) {
	if s.paused {
		return
	}

	in := s.readInput()
	if in.TogglePaths {
		s.showPaths = !s.showPaths
	}
	if in.ToggleHUD {
		s.showHUD = !s.showHUD
	}
	s.scroll.Apply(in.Scroll)

	s.pendingDt += deltaTime
	if !s.scheduler.Update() {
		return
	}

	s.advance(s.pendingDt)
	s.pendingDt = 0
}

// advance 执行一次完整更新
// dt 为距上一次完整更新的时间
func (s *TourScene) advance(dt float64) {
	s.scroll.Update(dt)
	progress := s.scroll.Progress()

	if sec, ok := s.cfg.SectionForProgress(progress); ok && sec != s.section {
		s.enterSection(sec)
	}
	if s.section == nil {
		return
	}

	local := s.section.LocalProgress(progress)
	s.follow.Update(local)

	camPath, _ := s.registry.Path(s.section.CameraPath)
	s.camera.Advance(camPath, local, orientationMode(s.section), s.blendEase)
}

// enterSection 切换到新区段
// 新区段位于当前区段之前时（滚动回退）从其末端反向进入
func (s *TourScene) enterSection(sec *config.SectionConfig) {
	from := s.SectionName()
	reverse := s.section != nil && sec.From < s.section.From
	s.section = sec

	s.follow.SetSection(path.SectionID(sec.Name), reverse)
	if camPath, ok := s.registry.Path(sec.CameraPath); ok {
		s.camera.Reanchor(sec.CameraPath, camPath, s.cfg.ClosestSamples, reverse)
	} else {
		log.Printf("[TourScene] Warning: section %q camera path %q not found, camera holds pose", sec.Name, sec.CameraPath)
	}

	log.Printf("[TourScene] Section %q -> %q (mode=%s, reverse=%v)", from, sec.Name, sec.CameraMode, reverse)
}

// orientationMode 把配置中的相机模式映射为朝向来源
func orientationMode(sec *config.SectionConfig) components.OrientationMode {
	if sec.CameraMode == config.CameraModeBlend {
		return components.OrientationBlend
	}
	return components.OrientationFollowPath
}

// Pause 窗口失去焦点时停止更新
func (s *TourScene) Pause() {
	s.paused = true
}

// Resume 恢复更新并重置调度器
// 暂停前测得的低帧率不应延续到恢复之后
func (s *TourScene) Resume() {
	s.paused = false
	s.pendingDt = 0
	s.drag.Reset()
	s.scheduler.Reset()
}

// SaveOnExit 保存进度与显示设置
func (s *TourScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}

	s.settings.SetLastProgress(s.scroll.Progress())
	s.settings.SetLastSection(s.SectionName())
	s.settings.SetShowPaths(s.showPaths)
	s.settings.SetShowHUD(s.showHUD)

	if err := s.settings.Save(); err != nil {
		log.Printf("[TourScene] Failed to save settings: %v", err)
		return false
	}
	return true
}

// SectionName 返回当前区段名，尚未进入任何区段时为空
func (s *TourScene) SectionName() string {
	if s.section == nil {
		return ""
	}
	return s.section.Name
}

// Progress 返回当前平滑后的滚动进度
func (s *TourScene) Progress() float64 {
	return s.scroll.Progress()
}

// Camera 返回相机系统（只读用途）
func (s *TourScene) Camera() *systems.CameraSystem {
	return s.camera
}

// Follower 返回实体的跟随组件
func (s *TourScene) Follower(entity path.EntityID) (*components.PathFollowerComponent, bool) {
	return s.follow.Follower(entity)
}

// readEbitenInput 从 ebiten 读取本帧输入
func (s *TourScene) readEbitenInput() FrameInput {
	return FrameInput{
		Scroll:      utils.ReadScrollInput(&s.drag),
		TogglePaths: utils.IsKeyToggled(ebiten.KeyP),
		ToggleHUD:   utils.IsKeyToggled(ebiten.KeyH),
	}
}

// buildPolylines 采样所有路径用于调试绘制
func (s *TourScene) buildPolylines() {
	s.pathPolylines = make(map[string][]mgl64.Vec3, len(s.cfg.Paths))
	s.pathKeys = s.pathKeys[:0]

	for key := range s.cfg.Paths {
		p, ok := s.registry.Path(key)
		if !ok || p.IsEmpty() {
			continue
		}
		points := make([]mgl64.Vec3, 0, config.PathSampleCount+1)
		for i := 0; i <= config.PathSampleCount; i++ {
			pt, _ := p.PointAt(float64(i) / float64(config.PathSampleCount))
			points = append(points, pt)
		}
		s.pathPolylines[key] = points
		s.pathKeys = append(s.pathKeys, key)
	}
	sort.Strings(s.pathKeys)
}
