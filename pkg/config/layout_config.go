package config

// 布局配置常量
// 本文件定义了巡游调试视图的窗口尺寸和俯视投影参数

// 窗口配置
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 960

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 640
)

// 俯视投影配置（世界坐标 X/Z 平面 → 屏幕坐标）
const (
	// ProjectionScale 每个世界单位对应的像素数
	ProjectionScale = 12.0

	// ProjectionOriginX 世界原点在屏幕上的 X 坐标
	ProjectionOriginX = GameWindowWidth / 2.0

	// ProjectionOriginY 世界原点在屏幕上的 Y 坐标
	// 迷宫沿 -Z 方向延伸，因此原点放在屏幕下方
	ProjectionOriginY = GameWindowHeight - 80.0

	// PathSampleCount 绘制路径时每条路径的采样数
	PathSampleCount = 120
)

// WorldToScreen 将世界坐标 (x, z) 投影到屏幕坐标（俯视）
//
// 示例:
//
//	WorldToScreen(0, 0)    = (480, 560)
//	WorldToScreen(10, -10) = (600, 440)
func WorldToScreen(x, z float64) (float64, float64) {
	return ProjectionOriginX + x*ProjectionScale, ProjectionOriginY + z*ProjectionScale
}
