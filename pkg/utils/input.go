// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DefaultPixelsPerStep 拖拽多少像素折算为一个滚动步
const DefaultPixelsPerStep = 40.0

// ScrollInput 一帧内的滚动输入
// 正值表示向前（向迷宫深处）推进
type ScrollInput struct {
	// WheelSteps 滚轮刻度
	WheelSteps float64
	// KeySteps 方向键/翻页键步数
	KeySteps float64
	// DragPixels 指针拖拽的竖直位移（像素，向上拖为正）
	DragPixels float64
}

// Steps 把各输入源换算为滚动步数
func (in ScrollInput) Steps(pixelsPerStep float64) float64 {
	steps := in.WheelSteps + in.KeySteps
	if pixelsPerStep > 0 {
		steps += in.DragPixels / pixelsPerStep
	}
	return steps
}

// IsZero 本帧是否没有任何滚动输入
func (in ScrollInput) IsZero() bool {
	return in.WheelSteps == 0 && in.KeySteps == 0 && in.DragPixels == 0
}

// DragTracker 跟踪指针（鼠标左键或触摸）的竖直拖拽
type DragTracker struct {
	active bool
	lastY  int
}

// Feed 输入本帧的指针状态，返回相对上一帧的竖直位移（向上为正）
// 按下的第一帧只记录位置，返回 0
func (d *DragTracker) Feed(pressed bool, y int) int {
	if !pressed {
		d.active = false
		return 0
	}
	if !d.active {
		d.active = true
		d.lastY = y
		return 0
	}
	dy := d.lastY - y
	d.lastY = y
	return dy
}

// IsDragging 是否正在拖拽
func (d *DragTracker) IsDragging() bool {
	return d.active
}

// Reset 重置拖拽状态
func (d *DragTracker) Reset() {
	d.active = false
	d.lastY = 0
}

// ReadScrollInput 读取当前帧的滚动输入
// 同时支持滚轮、键盘和鼠标/触摸拖拽
func ReadScrollInput(drag *DragTracker) ScrollInput {
	var in ScrollInput

	// ebiten 的滚轮 y 以向上滚为正
	_, wheelY := ebiten.Wheel()
	in.WheelSteps = -wheelY

	for _, k := range []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyPageDown, ebiten.KeySpace} {
		if inpututil.IsKeyJustPressed(k) {
			in.KeySteps++
		}
	}
	for _, k := range []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyPageUp} {
		if inpututil.IsKeyJustPressed(k) {
			in.KeySteps--
		}
	}

	if drag != nil {
		pressed, _, y := GetPointerState()
		in.DragPixels = float64(drag.Feed(pressed, y))
	}

	return in
}

// GetPointerState 获取指针的完整状态
// 返回：是否按下、X坐标、Y坐标
func GetPointerState() (pressed bool, x, y int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	x, y = ebiten.CursorPosition()
	pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return pressed, x, y
}

// IsKeyToggled 检查切换类按键（调试开关）是否刚刚按下
func IsKeyToggled(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
