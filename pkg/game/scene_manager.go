package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于创建从指定区段开始的漫游场景，避免 game 与 scenes 之间的循环依赖
type SceneFactory func(sectionName string) Scene

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
	paused       bool
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadSection 创建从指定区段开始的场景并切换过去
// sectionName: 区段名，如 "home", "pov"；为空时从头开始
func (sm *SceneManager) LoadSection(sectionName string) {
	log.Printf("[SceneManager] 加载区段: %q", sectionName)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}

	newScene := sm.sceneFactory(sectionName)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建区段场景: %q", sectionName)
		return
	}
	sm.SwitchTo(newScene)
	log.Printf("[SceneManager] 成功切换到区段: %q", sectionName)
}

// SetFocused 通知当前场景窗口焦点变化
// 仅在状态变化时转发给实现了 Pausable 的场景
func (sm *SceneManager) SetFocused(focused bool) {
	if focused == !sm.paused {
		return
	}
	sm.paused = !focused

	p, ok := sm.currentScene.(Pausable)
	if !ok {
		return
	}
	if sm.paused {
		log.Printf("[SceneManager] Focus lost, pausing")
		p.Pause()
	} else {
		log.Printf("[SceneManager] Focus regained, resuming")
		p.Resume()
	}
}

// IsPaused 返回是否因失去焦点而暂停
func (sm *SceneManager) IsPaused() bool {
	return sm.paused
}

// SaveOnExit 如果当前场景实现了 Saveable 则保存其状态
func (sm *SceneManager) SaveOnExit() bool {
	if s, ok := sm.currentScene.(Saveable); ok {
		return s.SaveOnExit()
	}
	return true
}

// Update updates the currently active scene.
// Nothing happens if no scene is active or the manager is paused.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil && !sm.paused {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
