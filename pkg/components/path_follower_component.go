package components

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/mazetour/pkg/path"
)

// PathFollowerComponent 沿路径移动的实体（主角、跟随者）
type PathFollowerComponent struct {
	// Entity 在区段表中的实体 ID
	Entity path.EntityID

	// Anchor 进入当前区段时在新路径上的参数
	Anchor float64

	// Reverse 是否从区段末端反向进入（滚动回退）
	// 正向: local 0 → Anchor, local 1 → 路径终点
	// 反向: local 0 → 路径起点, local 1 → Anchor
	Reverse bool

	// T 最近一次采样的路径参数
	T float64

	// Position / Tangent 最近一次采样结果
	Position mgl64.Vec3
	Tangent  mgl64.Vec3

	// Active 当前区段是否为该实体提供了路径
	// 为 false 时保持上一帧的位姿
	Active bool

	// HasPose 是否至少采样过一次
	HasPose bool
}
