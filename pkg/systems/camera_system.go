package systems

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/mazetour/pkg/components"
	"github.com/decker502/mazetour/pkg/ecs"
	"github.com/decker502/mazetour/pkg/path"
)

// CameraEntityName 相机实体在 EntityManager 中的名称
const CameraEntityName = "camera"

// tangentEpsilon 切线长度低于此值时视为退化，保留原朝向
const tangentEpsilon = 1e-9

// worldUp 世界坐标的上方向，跟随模式下相机不绕视线滚转
var worldUp = mgl64.Vec3{0, 1, 0}

// CameraSystem 相机控制系统
//
// 持有相机实体，每个执行帧根据路径参数或参考朝向混合解析相机位姿。
// 跳过的帧不调用 ResolvePose，相机保持上一帧的位姿。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID
	camera        *components.CameraComponent
}

// NewCameraSystem 创建相机系统并创建相机实体
//
// 参数:
//   - em: 实体管理器
//   - start, end: 混合模式使用的两个参考朝向
//   - lookAhead: 注视点距离
func NewCameraSystem(em *ecs.EntityManager, start, end mgl64.Quat, lookAhead float64) *CameraSystem {
	cs := &CameraSystem{
		entityManager: em,
		cameraEntity:  em.CreateNamedEntity(CameraEntityName),
	}

	cs.camera = &components.CameraComponent{
		Orientation:      start.Normalize(),
		StartOrientation: start.Normalize(),
		EndOrientation:   end.Normalize(),
		LookAhead:        lookAhead,
		Mode:             components.OrientationBlend,
	}
	ecs.AddComponent(em, cs.cameraEntity, cs.camera)

	return cs
}

// SetReferenceOrientations 替换混合模式的两个参考朝向
func (cs *CameraSystem) SetReferenceOrientations(start, end mgl64.Quat) {
	cam := cs.camera
	cam.StartOrientation = start.Normalize()
	cam.EndOrientation = end.Normalize()
}

// ResolvePose 解析相机位姿并写入相机组件
//
// 位置取路径在 t 处的采样点。朝向来源二选一：
//   - OrientationFollowPath: 朝向路径切线，保持水平不滚转（退化切线保持原朝向）
//   - OrientationBlend: 在起止参考朝向之间按 blend 球面插值（blend 限制在 [0, 1]）
//
// 返回:
//   - Pose: 解析出的位姿
//   - bool: 路径为空时返回 false，此时相机保持上一帧的位姿
func (cs *CameraSystem) ResolvePose(p *path.Path, t float64, mode components.OrientationMode, blend float64) (components.Pose, bool) {
	cam := cs.camera

	position, ok := p.PointAt(t)
	if !ok {
		return components.Pose{Position: cam.Position, Orientation: cam.Orientation}, false
	}

	orientation := cam.Orientation
	switch mode {
	case components.OrientationFollowPath:
		if tangent, ok := p.TangentAt(t); ok && tangent.Len() > tangentEpsilon {
			orientation = uprightFacing(tangent)
		}
	case components.OrientationBlend:
		orientation = mgl64.QuatSlerp(cam.StartOrientation, cam.EndOrientation, mgl64.Clamp(blend, 0, 1)).Normalize()
	}

	cam.Position = position
	cam.Orientation = orientation
	cam.Mode = mode
	cam.HasPose = true

	return components.Pose{Position: position, Orientation: orientation}, true
}

// uprightFacing 返回前方向对准 dir 且保持水平的朝向
//
// 先绕 X 轴俯仰，再绕世界 Y 轴偏航（与配置中 yaw/pitch 的组合顺序一致），
// 相机右方向始终落在水平面内。
func uprightFacing(dir mgl64.Vec3) mgl64.Quat {
	d := dir.Normalize()
	yaw := math.Atan2(-d.X(), -d.Z())
	pitch := math.Asin(mgl64.Clamp(d.Y(), -1, 1))
	return mgl64.QuatRotate(yaw, worldUp).Mul(mgl64.QuatRotate(pitch, mgl64.Vec3{1, 0, 0})).Normalize()
}

// Reanchor 切换到新的相机路径
//
// 用最近点搜索找到新路径上离相机当前位置最近的参数作为锚点，
// 之后 Advance 从锚点开始推进，避免相机跳变。
// 相机尚未有位姿或路径为空时，正向锚点为 0，反向锚点为 1。
//
// 参数:
//   - reverse: 是否从区段末端进入（滚动进度在减小）
func (cs *CameraSystem) Reanchor(key string, p *path.Path, samples int, reverse bool) float64 {
	cam := cs.camera
	cam.PathKey = key
	cam.Reverse = reverse

	var res path.ClosestResult
	if cam.HasPose {
		res = path.FindClosestParameter(p, cam.Position, samples)
	}
	cam.Anchor = entryAnchor(res, reverse)

	log.Printf("[CameraSystem] Following path %q from t=%.3f (reverse=%v)", key, cam.Anchor, reverse)
	return cam.Anchor
}

// Advance 按区段内进度推进相机
//
// local 为区段内进度 [0, 1]，路径参数由锚点和进入方向决定：
// 正向为 anchor + local * (1 - anchor)，反向为 local * anchor。
// 混合模式下 blend 直接使用 ease(local)。
func (cs *CameraSystem) Advance(p *path.Path, local float64, mode components.OrientationMode, ease func(float64) float64) (components.Pose, bool) {
	cam := cs.camera
	local = mgl64.Clamp(local, 0, 1)

	t := anchoredParameter(cam.Anchor, local, cam.Reverse)
	blend := local
	if ease != nil {
		blend = ease(local)
	}
	return cs.ResolvePose(p, t, mode, blend)
}

// GetLookAtPoint 返回相机当前注视点
// 位置 + 朝向旋转后的前方向 × LookAhead，不修改状态
func (cs *CameraSystem) GetLookAtPoint() mgl64.Vec3 {
	cam := cs.camera
	forward := cam.Orientation.Rotate(components.CameraForward)
	return cam.Position.Add(forward.Mul(cam.LookAhead))
}

// Pose 返回相机当前位姿
func (cs *CameraSystem) Pose() components.Pose {
	cam := cs.camera
	return components.Pose{Position: cam.Position, Orientation: cam.Orientation}
}

// Entity 返回相机实体 ID
func (cs *CameraSystem) Entity() ecs.EntityID {
	return cs.cameraEntity
}
