// Package app 提供漫游应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/mazetour/pkg/config"
	"github.com/decker502/mazetour/pkg/game"
	"github.com/decker502/mazetour/pkg/path"
	"github.com/decker502/mazetour/pkg/scenes"
	"github.com/decker502/mazetour/pkg/utils"
)

// DefaultConfigPath 默认漫游配置文件
const DefaultConfigPath = "data/tour.yaml"

// AppName gdata 存储使用的应用名
const AppName = "mazetour"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 漫游配置文件路径，为空时使用 DefaultConfigPath
	ConfigPath string
	// Section 指定起始区段（如 "pov"），为空则从上次保存的进度继续
	Section string
	// Clock 调度器时间源，为 nil 时使用系统时钟
	Clock game.Clock
	// DisablePersistence 不打开 gdata 存储（只使用内存设置）
	DisablePersistence bool
}

// App 是漫游应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	scheduler    *game.FrameScheduler
	settings     *game.SettingsManager
	tourConfig   *config.TourConfig
	verbose      bool

	lastUpdate time.Time
	clock      game.Clock

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化漫游应用
//
// 调用此函数前，如需从嵌入资源加载配置，必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	tourConfig, err := config.LoadTourConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("漫游配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载漫游配置: %s (%d 个区段, %d 条路径)", configPath, len(tourConfig.Sections), len(tourConfig.Paths))

	if cfg.Section != "" {
		if _, ok := tourConfig.Section(cfg.Section); !ok {
			return nil, fmt.Errorf("unknown section '%s' in %s", cfg.Section, configPath)
		}
	}

	// 路径在启动时一次性构建，之后只读
	registry := path.NewRegistry(tourConfig.SectionTable())
	registry.RegisterAll(tourConfig.Waypoints())

	clock := cfg.Clock
	if clock == nil {
		clock = game.SystemClock{}
	}
	scheduler := game.NewFrameScheduler(clock, schedulerOptions(tourConfig.Scheduler))

	settings := newSettingsManager(cfg.DisablePersistence)

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(sectionName string) game.Scene {
		return scenes.NewTourScene(scenes.TourSceneOptions{
			Config:       tourConfig,
			Registry:     registry,
			Scheduler:    scheduler,
			Settings:     settings,
			StartSection: sectionName,
		})
	})
	sceneManager.LoadSection(cfg.Section)

	return &App{
		sceneManager: sceneManager,
		scheduler:    scheduler,
		settings:     settings,
		tourConfig:   tourConfig,
		verbose:      cfg.Verbose,
		clock:        clock,
	}, nil
}

// schedulerOptions 把配置转换为调度器参数
func schedulerOptions(c config.SchedulerConfig) game.SchedulerOptions {
	return game.SchedulerOptions{
		TargetFPS:         c.TargetFPS,
		MinFPS:            c.MinFPS,
		MaxUpdateInterval: c.MaxUpdateInterval,
		Window:            time.Duration(c.WindowMs) * time.Millisecond,
	}
}

// newSettingsManager 打开 gdata 存储并创建设置管理器
// gdata 不可用时退化为仅内存设置，不阻止启动
func newSettingsManager(disabled bool) *game.SettingsManager {
	var gdataManager *gdata.Manager
	if !disabled {
		if err := utils.EnsureStorageDir(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
		if dir := utils.GetStoragePath(); dir != "" {
			log.Printf("[App] Storage path: %s", dir)
		}
		m, err := gdata.Open(gdata.Config{AppName: AppName})
		if err != nil {
			log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		} else {
			gdataManager = m
		}
	}

	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		log.Printf("[App] Warning: settings manager: %v", err)
	}
	return settings
}

// Update 更新漫游逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 窗口关闭：保存进度后结束主循环（需要 SetWindowClosingHandled(true)）
	if ebiten.IsWindowBeingClosed() {
		if !a.SaveOnExit() {
			log.Printf("[App] Warning: failed to save on exit")
		}
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏（移动端始终全屏）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// 失去焦点时暂停，恢复时由场景重置调度器
	a.sceneManager.SetFocused(ebiten.IsFocused())

	a.sceneManager.Update(a.frameDelta())
	return nil
}

// frameDelta 返回距上一次 Update 的时间（秒）
// 暂停期间的时间不计入；首帧按 1/60 秒处理
func (a *App) frameDelta() float64 {
	now := a.clock.Now()
	defer func() { a.lastUpdate = now }()

	if a.lastUpdate.IsZero() || a.sceneManager.IsPaused() {
		return 1.0 / 60.0
	}
	dt := now.Sub(a.lastUpdate).Seconds()
	// 长时间卡顿（拖动窗口等）不应让平滑滚动一步跳到终点
	if dt > 0.25 {
		dt = 0.25
	}
	return dt
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// SaveOnExit 窗口关闭时保存当前场景状态
func (a *App) SaveOnExit() bool {
	return a.sceneManager.SaveOnExit()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Scheduler 返回自适应帧调度器
func (a *App) Scheduler() *game.FrameScheduler {
	return a.scheduler
}

// TourConfig 返回已加载的漫游配置
func (a *App) TourConfig() *config.TourConfig {
	return a.tourConfig
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
