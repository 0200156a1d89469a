package path

import (
	"testing"
)

func newTestRegistry() *Registry {
	r := NewRegistry(SectionTable{
		"home": {
			PrimaryActor: "primaryActorHome",
			Follower(1):  "follower1",
			Follower(2):  "follower2",
		},
		"pov": {
			PrimaryActor: "primaryActorPOV",
		},
		"outro": {
			PrimaryActor: "missingPath",
		},
	})
	r.RegisterAll(map[string][]Waypoint{
		"primaryActorHome": {Straight(0, 0, 0), Straight(0, 0, -10)},
		"primaryActorPOV":  {Straight(0, 1, -10), Curve(0, 1, -20, CurveLowerArc), Straight(10, 1, -30)},
		"follower1":        {Straight(1, 0, 0), Straight(1, 0, -10)},
		"follower2":        {Straight(2, 0, 0)},
	})
	return r
}

// TestRegistryGetSection 测试区段查询返回该区段的路径子集
func TestRegistryGetSection(t *testing.T) {
	r := newTestRegistry()

	home := r.GetSection("home")
	if len(home) != 3 {
		t.Fatalf("expected 3 entities in home, got %d", len(home))
	}

	homePath, _ := r.Path("primaryActorHome")
	if home[PrimaryActor] != homePath {
		t.Error("home section should map primaryActor to the Home variant")
	}

	pov := r.GetSection("pov")
	if len(pov) != 1 {
		t.Fatalf("expected 1 entity in pov, got %d", len(pov))
	}
	povPath, _ := r.Path("primaryActorPOV")
	if pov[PrimaryActor] != povPath {
		t.Error("pov section should map primaryActor to the POV variant")
	}
	if pov[PrimaryActor].SegmentCount() != 2 {
		t.Errorf("expected POV path with 2 segments, got %d", pov[PrimaryActor].SegmentCount())
	}
}

// TestRegistryUnknownSection 测试未知区段返回空映射而非错误
func TestRegistryUnknownSection(t *testing.T) {
	r := newTestRegistry()

	for _, section := range []SectionID{"credits", "", "HOME"} {
		got := r.GetSection(section)
		if got == nil {
			t.Fatalf("GetSection(%q) returned nil map", section)
		}
		if len(got) != 0 {
			t.Errorf("GetSection(%q) expected empty map, got %d entries", section, len(got))
		}
		if r.HasSection(section) {
			t.Errorf("HasSection(%q) should be false", section)
		}
	}
}

// TestRegistryShortWaypointList 测试路点不足的实体注册为空路径
func TestRegistryShortWaypointList(t *testing.T) {
	r := newTestRegistry()

	home := r.GetSection("home")
	follower2, ok := home[Follower(2)]
	if !ok {
		t.Fatal("follower2 should still be registered")
	}
	if !follower2.IsEmpty() {
		t.Errorf("follower2 should be an empty path, got %d segments", follower2.SegmentCount())
	}
}

// TestRegistryMissingPathKey 测试引用未注册路径键的实体被忽略
func TestRegistryMissingPathKey(t *testing.T) {
	r := newTestRegistry()

	outro := r.GetSection("outro")
	if len(outro) != 0 {
		t.Errorf("expected no active paths in outro, got %d", len(outro))
	}
	if !r.HasSection("outro") {
		t.Error("outro is a known section")
	}
}

// TestRegistrySections 测试区段列表有序
func TestRegistrySections(t *testing.T) {
	r := newTestRegistry()

	got := r.Sections()
	expected := []SectionID{"home", "outro", "pov"}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Sections()[%d] = %q, expected %q", i, got[i], expected[i])
		}
	}
}

// TestRegistrySectionTableCopied 测试修改传入的映射表不影响注册表
func TestRegistrySectionTableCopied(t *testing.T) {
	table := SectionTable{"home": {PrimaryActor: "a"}}
	r := NewRegistry(table)
	r.RegisterAll(map[string][]Waypoint{
		"a": {Straight(0, 0, 0), Straight(1, 0, 0)},
	})

	table["home"][PrimaryActor] = "b"
	delete(table, "home")

	if len(r.GetSection("home")) != 1 {
		t.Error("registry should keep its own copy of the section table")
	}
}

// TestFollowerID 测试跟随者 ID 格式
func TestFollowerID(t *testing.T) {
	if Follower(3) != "follower3" {
		t.Errorf("expected follower3, got %q", Follower(3))
	}
}

// TestRegistryEntities 测试跨区段的实体汇总
func TestRegistryEntities(t *testing.T) {
	r := newTestRegistry()

	got := r.Entities()
	want := []EntityID{Follower(1), Follower(2), PrimaryActor}
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entities()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
