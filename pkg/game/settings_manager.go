package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// TourSettings 漫游持久化设置
// 退出时保存，下次启动时从上次的滚动进度继续
type TourSettings struct {
	// 进度
	LastProgress float64 `yaml:"lastProgress"` // 上次退出时的滚动进度 0.0 ~ 1.0
	LastSection  string  `yaml:"lastSection"`  // 上次退出时所在的区段名

	// 显示设置
	ShowPaths bool `yaml:"showPaths"` // 是否绘制路径调试线
	ShowHUD   bool `yaml:"showHud"`   // 是否显示帧率 HUD
}

// DefaultSettings 返回默认设置
func DefaultSettings() *TourSettings {
	return &TourSettings{
		LastProgress: 0,
		LastSection:  "",
		ShowPaths:    true,
		ShowHUD:      true,
	}
}

// SettingsManager 设置管理器
// 负责漫游设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *TourSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "tour"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留用于未来的致命错误，加载失败不会返回错误
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	// 旧数据或手工编辑可能越界
	loaded.LastProgress = clampProgress(loaded.LastProgress)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded (progress=%.3f, section=%q)",
		loaded.LastProgress, loaded.LastSection)
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置实例
func (sm *SettingsManager) GetSettings() *TourSettings {
	return sm.settings
}

// SetLastProgress 记录滚动进度，限制在 0.0 ~ 1.0
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetLastProgress(progress float64) {
	sm.settings.LastProgress = clampProgress(progress)
}

// SetLastSection 记录当前区段名
func (sm *SettingsManager) SetLastSection(section string) {
	sm.settings.LastSection = section
}

// SetShowPaths 设置路径调试线开关
func (sm *SettingsManager) SetShowPaths(enabled bool) {
	sm.settings.ShowPaths = enabled
}

// SetShowHUD 设置 HUD 开关
func (sm *SettingsManager) SetShowHUD(enabled bool) {
	sm.settings.ShowHUD = enabled
}

// clampProgress 将进度限制在 0.0 ~ 1.0 范围内
func clampProgress(progress float64) float64 {
	if progress < 0.0 {
		return 0.0
	}
	if progress > 1.0 {
		return 1.0
	}
	return progress
}
