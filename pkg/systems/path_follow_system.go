package systems

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/mazetour/pkg/components"
	"github.com/decker502/mazetour/pkg/ecs"
	"github.com/decker502/mazetour/pkg/path"
)

// PathFollowSystem 沿当前区段路径放置角色实体
//
// 为区段表中出现的每个实体创建一个命名实体。每个执行帧按区段内进度
// 采样对应路径；区段没有为某实体提供路径（或路径为空）时保持其上一帧位姿。
type PathFollowSystem struct {
	entityManager *ecs.EntityManager
	registry      *path.Registry
	samples       int

	section path.SectionID
	active  map[path.EntityID]*path.Path
}

// NewPathFollowSystem 创建路径跟随系统
//
// 参数:
//   - em: 实体管理器
//   - registry: 路径注册表（只读）
//   - samples: 切换区段时最近点搜索的采样数
func NewPathFollowSystem(em *ecs.EntityManager, registry *path.Registry, samples int) *PathFollowSystem {
	s := &PathFollowSystem{
		entityManager: em,
		registry:      registry,
		samples:       samples,
		active:        map[path.EntityID]*path.Path{},
	}

	for _, entity := range registry.Entities() {
		id := em.CreateNamedEntity(string(entity))
		ecs.AddComponent(em, id, &components.PathFollowerComponent{Entity: entity})
	}

	return s
}

// Section 返回当前区段
func (s *PathFollowSystem) Section() path.SectionID {
	return s.section
}

// SetSection 切换活动区段
//
// 已有位姿的实体在新路径上用最近点搜索重新定锚，从当前位置继续；
// 其余实体从新路径起点（反向进入时为终点）开始。
// 未知区段没有活动路径，所有实体保持位姿。
//
// 参数:
//   - section: 新区段
//   - reverse: 是否从区段末端进入（滚动进度在减小）
func (s *PathFollowSystem) SetSection(section path.SectionID, reverse bool) {
	if section == s.section && len(s.active) > 0 {
		return
	}
	if !s.registry.HasSection(section) {
		log.Printf("[PathFollowSystem] Warning: unknown section %q, holding all poses", section)
	}

	s.section = section
	s.active = s.registry.GetSection(section)

	for _, id := range s.entityManager.GetEntitiesWith(ecs.TypeOf[*components.PathFollowerComponent]()) {
		follower, _ := ecs.GetComponent[*components.PathFollowerComponent](s.entityManager, id)
		p, ok := s.active[follower.Entity]
		follower.Active = ok && !p.IsEmpty()
		follower.Reverse = reverse

		var res path.ClosestResult
		if follower.Active && follower.HasPose {
			res = path.FindClosestParameter(p, follower.Position, s.samples)
		}
		follower.Anchor = entryAnchor(res, reverse)
	}

	log.Printf("[PathFollowSystem] Section %q (reverse=%v): %d active path(s)", section, reverse, len(s.active))
}

// Update 按区段内进度 local ∈ [0, 1] 放置所有活动实体
// 路径参数由 anchoredParameter 按进入方向映射
func (s *PathFollowSystem) Update(local float64) {
	local = mgl64.Clamp(local, 0, 1)

	for _, id := range s.entityManager.GetEntitiesWith(ecs.TypeOf[*components.PathFollowerComponent]()) {
		follower, _ := ecs.GetComponent[*components.PathFollowerComponent](s.entityManager, id)
		if !follower.Active {
			continue
		}
		p := s.active[follower.Entity]

		t := anchoredParameter(follower.Anchor, local, follower.Reverse)
		position, ok := p.PointAt(t)
		if !ok {
			continue
		}
		follower.T = t
		follower.Position = position
		if tangent, ok := p.TangentAt(t); ok {
			follower.Tangent = tangent
		}
		follower.HasPose = true
	}
}

// Follower 按实体 ID 返回跟随组件
func (s *PathFollowSystem) Follower(entity path.EntityID) (*components.PathFollowerComponent, bool) {
	id, ok := s.entityManager.Lookup(string(entity))
	if !ok {
		return nil, false
	}
	return ecs.GetComponent[*components.PathFollowerComponent](s.entityManager, id)
}
