package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/mazetour/pkg/ecs"
	"github.com/decker502/mazetour/pkg/path"
)

func newTestFollowSystem() *PathFollowSystem {
	registry := path.NewRegistry(path.SectionTable{
		"home": {
			path.PrimaryActor: "actorHome",
			path.Follower(1):  "follower1Home",
			path.Follower(2):  "follower2Short",
		},
		"pov": {
			path.PrimaryActor: "actorPOV",
			path.Follower(3):  "follower3POV",
		},
	})
	registry.RegisterAll(map[string][]path.Waypoint{
		"actorHome":      {path.Straight(0, 0, 0), path.Straight(10, 0, 0)},
		"follower1Home":  {path.Straight(0, 0, 1), path.Straight(10, 0, 1)},
		"follower2Short": {path.Straight(0, 0, 2)},
		"actorPOV":       {path.Straight(0, 0, 5), path.Straight(20, 0, 5)},
		"follower3POV":   {path.Straight(0, 1, 0), path.Straight(0, 1, -10)},
	})
	return NewPathFollowSystem(ecs.NewEntityManager(), registry, path.DefaultClosestSamples)
}

// TestPathFollowSystem_CreatesEntities 测试为区段表中的每个实体创建实体
func TestPathFollowSystem_CreatesEntities(t *testing.T) {
	s := newTestFollowSystem()

	for _, entity := range []path.EntityID{path.PrimaryActor, path.Follower(1), path.Follower(2), path.Follower(3)} {
		f, ok := s.Follower(entity)
		if !ok {
			t.Errorf("entity %s not created", entity)
			continue
		}
		if f.Entity != entity {
			t.Errorf("component entity = %s, want %s", f.Entity, entity)
		}
		if f.HasPose || f.Active {
			t.Errorf("entity %s should start without pose", entity)
		}
	}

	if _, ok := s.Follower("follower9"); ok {
		t.Error("unknown entity should not be found")
	}
}

// TestPathFollowSystem_UpdateBeforeSection 测试未设置区段时不放置任何实体
func TestPathFollowSystem_UpdateBeforeSection(t *testing.T) {
	s := newTestFollowSystem()
	s.Update(0.5)

	actor, _ := s.Follower(path.PrimaryActor)
	if actor.HasPose {
		t.Error("no section set, actor should have no pose")
	}
}

// TestPathFollowSystem_PlacesActiveEntities 测试按区段内进度放置实体
func TestPathFollowSystem_PlacesActiveEntities(t *testing.T) {
	s := newTestFollowSystem()
	s.SetSection("home", false)
	s.Update(0.5)

	actor, _ := s.Follower(path.PrimaryActor)
	if !actor.Position.ApproxEqualThreshold(mgl64.Vec3{5, 0, 0}, poseEpsilon) {
		t.Errorf("actor position = %v, want (5,0,0)", actor.Position)
	}
	if !actor.Tangent.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, poseEpsilon) {
		t.Errorf("actor tangent = %v, want (1,0,0)", actor.Tangent)
	}
	if math.Abs(actor.T-0.5) > poseEpsilon {
		t.Errorf("actor t = %v, want 0.5", actor.T)
	}

	f1, _ := s.Follower(path.Follower(1))
	if !f1.Position.ApproxEqualThreshold(mgl64.Vec3{5, 0, 1}, poseEpsilon) {
		t.Errorf("follower1 position = %v, want (5,0,1)", f1.Position)
	}

	// 只有一个路点的路径降级为空路径
	f2, _ := s.Follower(path.Follower(2))
	if f2.Active || f2.HasPose {
		t.Error("follower2 has an empty path and should stay inactive")
	}

	// 不在本区段的实体不被放置
	f3, _ := s.Follower(path.Follower(3))
	if f3.Active || f3.HasPose {
		t.Error("follower3 is not part of home")
	}
}

// TestPathFollowSystem_ReanchorOnSectionChange 测试切换区段时从当前位置继续
func TestPathFollowSystem_ReanchorOnSectionChange(t *testing.T) {
	s := newTestFollowSystem()
	s.SetSection("home", false)
	s.Update(1)

	s.SetSection("pov", false)
	if s.Section() != "pov" {
		t.Fatalf("Section() = %s, want pov", s.Section())
	}

	actor, _ := s.Follower(path.PrimaryActor)
	// (10,0,0) 在 actorPOV 上最近点为 (10,0,5)，t = 0.5
	if math.Abs(actor.Anchor-0.5) > poseEpsilon {
		t.Fatalf("actor anchor = %v, want 0.5", actor.Anchor)
	}

	s.Update(0)
	if !actor.Position.ApproxEqualThreshold(mgl64.Vec3{10, 0, 5}, poseEpsilon) {
		t.Errorf("actor position after switch = %v, want (10,0,5)", actor.Position)
	}
	s.Update(1)
	if !actor.Position.ApproxEqualThreshold(mgl64.Vec3{20, 0, 5}, poseEpsilon) {
		t.Errorf("actor position at section end = %v, want (20,0,5)", actor.Position)
	}

	// 新出现的实体从路径起点开始
	f3, _ := s.Follower(path.Follower(3))
	if f3.Anchor != 0 {
		t.Errorf("follower3 anchor = %v, want 0", f3.Anchor)
	}

	// 离开区段的实体保持最后位姿
	f1, _ := s.Follower(path.Follower(1))
	if f1.Active {
		t.Error("follower1 should be inactive in pov")
	}
	if !f1.Position.ApproxEqualThreshold(mgl64.Vec3{10, 0, 1}, poseEpsilon) {
		t.Errorf("follower1 should hold (10,0,1), got %v", f1.Position)
	}
}

// TestPathFollowSystem_UnknownSectionHoldsPoses 测试未知区段时保持所有位姿
func TestPathFollowSystem_UnknownSectionHoldsPoses(t *testing.T) {
	s := newTestFollowSystem()
	s.SetSection("home", false)
	s.Update(0.3)
	actor, _ := s.Follower(path.PrimaryActor)
	held := actor.Position

	s.SetSection("credits", false)
	s.Update(0.9)

	if actor.Active {
		t.Error("actor should be inactive in unknown section")
	}
	if actor.Position != held {
		t.Errorf("actor should hold %v, got %v", held, actor.Position)
	}
}

// TestPathFollowSystem_ClampsLocalProgress 测试区段内进度被限制
func TestPathFollowSystem_ClampsLocalProgress(t *testing.T) {
	s := newTestFollowSystem()
	s.SetSection("home", false)

	s.Update(-1)
	actor, _ := s.Follower(path.PrimaryActor)
	if !actor.Position.ApproxEqualThreshold(mgl64.Vec3{0, 0, 0}, poseEpsilon) {
		t.Errorf("local -1 should clamp to start, got %v", actor.Position)
	}
	s.Update(5)
	if !actor.Position.ApproxEqualThreshold(mgl64.Vec3{10, 0, 0}, poseEpsilon) {
		t.Errorf("local 5 should clamp to end, got %v", actor.Position)
	}
}

// TestPathFollowSystem_ReverseEntry 测试滚动回退进入区段时沿路径倒退
func TestPathFollowSystem_ReverseEntry(t *testing.T) {
	s := newTestFollowSystem()
	s.SetSection("home", false)
	s.Update(1)

	// 进入 pov 后回退到 home：主角位于 actorHome 终点 (10,0,0)
	s.SetSection("pov", false)
	s.SetSection("home", true)

	actor, _ := s.Follower(path.PrimaryActor)
	if !actor.Reverse {
		t.Fatal("actor should be marked as reverse entry")
	}
	if math.Abs(actor.Anchor-1) > poseEpsilon {
		t.Fatalf("actor anchor = %v, want 1", actor.Anchor)
	}

	tests := []struct {
		local float64
		want  mgl64.Vec3
	}{
		{1, mgl64.Vec3{10, 0, 0}},
		{0.5, mgl64.Vec3{5, 0, 0}},
		{0, mgl64.Vec3{0, 0, 0}},
	}
	for _, tt := range tests {
		s.Update(tt.local)
		if !actor.Position.ApproxEqualThreshold(tt.want, poseEpsilon) {
			t.Errorf("local %v: actor position = %v, want %v", tt.local, actor.Position, tt.want)
		}
	}
}

// TestPathFollowSystem_ReverseEntryWithoutPose 测试没有位姿的实体反向进入时从路径终点开始
func TestPathFollowSystem_ReverseEntryWithoutPose(t *testing.T) {
	s := newTestFollowSystem()
	s.SetSection("home", true)

	actor, _ := s.Follower(path.PrimaryActor)
	if actor.Anchor != 1 {
		t.Fatalf("anchor without pose = %v, want 1", actor.Anchor)
	}
	s.Update(1)
	if !actor.Position.ApproxEqualThreshold(mgl64.Vec3{10, 0, 0}, poseEpsilon) {
		t.Errorf("actor should start at path end, got %v", actor.Position)
	}
	s.Update(0)
	if !actor.Position.ApproxEqualThreshold(mgl64.Vec3{0, 0, 0}, poseEpsilon) {
		t.Errorf("actor should reach path start, got %v", actor.Position)
	}
}

// TestPathFollowSystem_ForwardEntryAtFarEnd 测试正向进入时最近点落在终点不会冻结实体
func TestPathFollowSystem_ForwardEntryAtFarEnd(t *testing.T) {
	s := newTestFollowSystem()
	s.SetSection("pov", false)
	s.Update(1) // (20,0,5)

	// actorHome 上离 (20,0,5) 最近的是终点 (10,0,0)
	s.SetSection("home", false)
	actor, _ := s.Follower(path.PrimaryActor)
	if actor.Anchor != 0 {
		t.Fatalf("far-end anchor should be discarded, got %v", actor.Anchor)
	}
	s.Update(0.5)
	if !actor.Position.ApproxEqualThreshold(mgl64.Vec3{5, 0, 0}, poseEpsilon) {
		t.Errorf("actor position = %v, want (5,0,0)", actor.Position)
	}
}
