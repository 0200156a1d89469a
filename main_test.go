package main

import (
	"testing"

	"github.com/decker502/mazetour/pkg/config"
	"github.com/decker502/mazetour/pkg/embedded"
	"github.com/decker502/mazetour/pkg/path"
)

// TestEmbeddedTourConfig 验证嵌入的漫游配置可以加载且每个区段都有可用路径
func TestEmbeddedTourConfig(t *testing.T) {
	embedded.Init(dataFS)

	cfg, err := config.LoadTourConfig("data/tour.yaml")
	if err != nil {
		t.Fatalf("embedded tour config invalid: %v", err)
	}

	registry := path.NewRegistry(cfg.SectionTable())
	registry.RegisterAll(cfg.Waypoints())

	for _, sec := range cfg.Sections {
		active := registry.GetSection(path.SectionID(sec.Name))
		actor, ok := active[path.PrimaryActor]
		if !ok || actor.IsEmpty() {
			t.Errorf("section %s has no primary actor path", sec.Name)
		}
		camPath, ok := registry.Path(sec.CameraPath)
		if !ok || camPath.IsEmpty() {
			t.Errorf("section %s camera path %q missing or empty", sec.Name, sec.CameraPath)
		}
	}

	// 进度全范围都落在某个区段内
	for i := 0; i <= 100; i++ {
		p := float64(i) / 100
		if _, ok := cfg.SectionForProgress(p); !ok {
			t.Errorf("progress %.2f not covered by any section", p)
		}
	}
}
