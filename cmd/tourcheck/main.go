// Package main provides a command line checker for tour configuration files.
//
// Usage:
//
//	go run ./cmd/tourcheck [flags]
//
// Flags:
//
//	--config <path>       Tour config file (default data/tour.yaml)
//	--path <key>          Print samples for a single path key
//	--samples <n>         Number of samples to print for --path (default 10)
//	--closest <x,y,z>     Find the closest parameter on --path to a point
//	--simulate-fps <fps>  Run the frame scheduler against a synthetic clock
//	--frames <n>          Frames to simulate (default 240)
//	--verbose             Show registry and scheduler logs
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/mazetour/pkg/config"
	"github.com/decker502/mazetour/pkg/game"
	"github.com/decker502/mazetour/pkg/path"
)

var (
	configFlag   = flag.String("config", "data/tour.yaml", "Tour config file")
	pathFlag     = flag.String("path", "", "Path key to sample")
	samplesFlag  = flag.Int("samples", 10, "Samples to print for --path")
	closestFlag  = flag.String("closest", "", "Point x,y,z to search on --path")
	simulateFlag = flag.Float64("simulate-fps", 0, "Simulate the frame scheduler at this frame rate")
	framesFlag   = flag.Int("frames", 240, "Frames to simulate")
	verboseFlag  = flag.Bool("verbose", false, "Show registry and scheduler logs")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadTourConfig(*configFlag)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ %s: %d sections, %d paths\n", *configFlag, len(cfg.Sections), len(cfg.Paths))

	registry := path.NewRegistry(cfg.SectionTable())
	registry.RegisterAll(cfg.Waypoints())

	if problems := report(cfg, registry); problems > 0 {
		fmt.Printf("❌ %d problem(s) found\n", problems)
		os.Exit(1)
	}

	if *pathFlag != "" {
		if err := samplePath(registry, *pathFlag, *samplesFlag, *closestFlag, cfg.ClosestSamples); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
	}

	if *simulateFlag > 0 {
		simulate(cfg, *simulateFlag, *framesFlag)
	}
}

// report 打印每条路径和每个区段的摘要，返回问题数量
func report(cfg *config.TourConfig, registry *path.Registry) int {
	keys := make([]string, 0, len(cfg.Paths))
	for key := range cfg.Paths {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	problems := 0
	for _, key := range keys {
		p, _ := registry.Path(key)
		mark := "✅"
		if p.IsEmpty() {
			mark = "⚠️ "
		}
		fmt.Printf("%s path %-20s waypoints=%-3d segments=%-3d length=%.2f\n",
			mark, key, len(cfg.Paths[key]), p.SegmentCount(), p.Length())
	}

	for _, sec := range cfg.Sections {
		active := registry.GetSection(path.SectionID(sec.Name))
		fmt.Printf("   section %-10s [%.2f, %.2f) mode=%-6s entities=%d\n",
			sec.Name, sec.From, sec.To, sec.CameraMode, len(active))

		for entity, key := range sec.Entities {
			if _, ok := registry.Path(key); !ok {
				fmt.Printf("❌ section %s entity %s references unknown path %q\n", sec.Name, entity, key)
				problems++
			}
		}
		if _, ok := registry.Path(sec.CameraPath); !ok {
			fmt.Printf("❌ section %s camera path %q not found\n", sec.Name, sec.CameraPath)
			problems++
		}
	}
	return problems
}

// samplePath 打印路径采样，可选地执行最近点搜索
func samplePath(registry *path.Registry, key string, samples int, closest string, closestSamples int) error {
	p, ok := registry.Path(key)
	if !ok {
		return fmt.Errorf("unknown path %q", key)
	}
	if samples < 1 {
		samples = 1
	}

	fmt.Printf("\n%s (%d segments, length %.2f)\n", key, p.SegmentCount(), p.Length())
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples)
		pt, ok := p.PointAt(t)
		if !ok {
			fmt.Println("   (empty path)")
			break
		}
		tan, _ := p.TangentAt(t)
		fmt.Printf("   t=%.3f  pos=(%7.2f, %6.2f, %7.2f)  tangent=(%5.2f, %5.2f, %5.2f)\n",
			t, pt.X(), pt.Y(), pt.Z(), tan.X(), tan.Y(), tan.Z())
	}

	if closest == "" {
		return nil
	}
	target, err := parseVec3(closest)
	if err != nil {
		return err
	}
	res := path.FindClosestParameter(p, target, closestSamples)
	if !res.Found {
		fmt.Printf("   closest to %v: not found (empty path)\n", target)
		return nil
	}
	fmt.Printf("   closest to %v: t=%.4f at (%.2f, %.2f, %.2f), distance %.3f\n",
		target, res.T, res.Point.X(), res.Point.Y(), res.Point.Z(), res.Point.Sub(target).Len())
	return nil
}

// simulate 以固定帧率驱动调度器并打印间隔变化
func simulate(cfg *config.TourConfig, fps float64, frames int) {
	clock := &syntheticClock{now: time.Unix(0, 0)}
	scheduler := game.NewFrameScheduler(clock, game.SchedulerOptions{
		TargetFPS:         cfg.Scheduler.TargetFPS,
		MinFPS:            cfg.Scheduler.MinFPS,
		MaxUpdateInterval: cfg.Scheduler.MaxUpdateInterval,
		Window:            time.Duration(cfg.Scheduler.WindowMs) * time.Millisecond,
	})

	step := time.Duration(float64(time.Second) / fps)
	ran := 0
	interval := scheduler.UpdateInterval()
	fmt.Printf("\nsimulating %d frames at %.1f FPS\n", frames, fps)
	for i := 1; i <= frames; i++ {
		clock.now = clock.now.Add(step)
		if scheduler.Update() {
			ran++
		}
		if scheduler.UpdateInterval() != interval {
			interval = scheduler.UpdateInterval()
			fmt.Printf("   frame %4d: measured %.1f FPS, interval -> %d\n", i, scheduler.CurrentFPS(), interval)
		}
	}
	fmt.Printf("   full updates: %d/%d\n", ran, frames)
}

type syntheticClock struct {
	now time.Time
}

func (c *syntheticClock) Now() time.Time { return c.now }

// parseVec3 解析 "x,y,z"
func parseVec3(s string) (mgl64.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("invalid point %q, expected x,y,z", s)
	}
	var v mgl64.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("invalid coordinate %q: %w", part, err)
		}
		v[i] = f
	}
	return v, nil
}
