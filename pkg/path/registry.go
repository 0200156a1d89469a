package path

import (
	"fmt"
	"log"
	"sort"
)

// EntityID 路径所属实体
// 取值范围：PrimaryActor, follower1 .. followerN
type EntityID string

// SectionID 滚动体验中的区段名（如 "home", "pov"）
type SectionID string

// PrimaryActor 主角实体
const PrimaryActor EntityID = "primaryActor"

// Follower 返回第 n 个跟随者的实体 ID（n 从 1 开始）
func Follower(n int) EntityID {
	return EntityID(fmt.Sprintf("follower%d", n))
}

// SectionTable 区段 → (实体 → 路径键) 的静态映射
//
// 例如 "home" 把 primaryActor 映射到 "primaryActorHome"，
// "pov" 把 primaryActor 映射到 "primaryActorPOV"。
type SectionTable map[SectionID]map[EntityID]string

// Registry 路径注册表
//
// 每个路径键对应一条路径，启动时一次性构建，之后只读。
// 区段查询通过静态 SectionTable 选出该区段的活动路径。
type Registry struct {
	paths    map[string]*Path
	sections SectionTable
}

// NewRegistry 创建路径注册表
//
// 参数:
//   - sections: 区段映射表（会被复制）
func NewRegistry(sections SectionTable) *Registry {
	r := &Registry{
		paths:    make(map[string]*Path),
		sections: make(SectionTable, len(sections)),
	}
	for section, entities := range sections {
		m := make(map[EntityID]string, len(entities))
		for entity, key := range entities {
			m[entity] = key
		}
		r.sections[section] = m
	}
	return r
}

// RegisterAll 为每个路径键构建并保存一条路径
//
// 启动时调用一次。路点不足 2 个的列表会得到空路径并记录警告，
// 不会中断启动。区段表引用了但未提供的路径键也会记录警告。
func (r *Registry) RegisterAll(perKey map[string][]Waypoint) {
	keys := make([]string, 0, len(perKey))
	for key := range perKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		waypoints := perKey[key]
		p := Build(waypoints)
		if p.IsEmpty() {
			log.Printf("[PathRegistry] Warning: path %q has %d waypoint(s), registered as empty path", key, len(waypoints))
		}
		r.paths[key] = p
		log.Printf("[PathRegistry] Registered path %q: %d segments, length %.2f", key, p.SegmentCount(), p.Length())
	}

	for _, section := range r.Sections() {
		for entity, key := range r.sections[section] {
			if _, ok := r.paths[key]; !ok {
				log.Printf("[PathRegistry] Warning: section %q entity %q references unknown path %q", section, entity, key)
			}
		}
	}
}

// GetSection 返回区段内每个实体的活动路径
//
// 未知区段返回空映射（非错误），调用方视为"本区段无活动路径"。
// 引用了未注册路径键的实体会被忽略。
func (r *Registry) GetSection(section SectionID) map[EntityID]*Path {
	entities, ok := r.sections[section]
	if !ok {
		return map[EntityID]*Path{}
	}

	result := make(map[EntityID]*Path, len(entities))
	for entity, key := range entities {
		if p, ok := r.paths[key]; ok {
			result[entity] = p
		}
	}
	return result
}

// Path 按路径键直接查询
func (r *Registry) Path(key string) (*Path, bool) {
	p, ok := r.paths[key]
	return p, ok
}

// Sections 返回所有已知区段（排序后）
func (r *Registry) Sections() []SectionID {
	out := make([]SectionID, 0, len(r.sections))
	for section := range r.sections {
		out = append(out, section)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasSection 返回区段是否已知
func (r *Registry) HasSection(section SectionID) bool {
	_, ok := r.sections[section]
	return ok
}

// Entities 返回所有区段中出现过的实体（排序后）
func (r *Registry) Entities() []EntityID {
	seen := make(map[EntityID]struct{})
	for _, entities := range r.sections {
		for entity := range entities {
			seen[entity] = struct{}{}
		}
	}
	out := make([]EntityID, 0, len(seen))
	for entity := range seen {
		out = append(out, entity)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
