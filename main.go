// Package main 启动迷宫漫游桌面程序
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--config <path>     漫游配置文件（默认 data/tour.yaml，优先读取嵌入资源）
//	--section <name>    从指定区段起点开始（如 --section=pov）
//	--verbose           输出详细日志
//
// Controls:
//
//	Mouse Wheel / Drag      - 推进或回退滚动进度
//	Arrow Up/Down, PgUp/Dn  - 按步推进或回退
//	P                       - 显示/隐藏路径
//	H                       - 显示/隐藏 HUD
//	F11                     - 切换全屏
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/mazetour/pkg/app"
	"github.com/decker502/mazetour/pkg/config"
	"github.com/decker502/mazetour/pkg/embedded"
)

var (
	configFlag  = flag.String("config", app.DefaultConfigPath, "Tour config file (embedded copy is used when present)")
	sectionFlag = flag.String("section", "", "Start at the beginning of the named section")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	tourApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Section:    *sectionFlag,
	})
	if err != nil {
		// NewApp 可能已关闭日志输出，错误直接写到 stderr
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Maze Tour")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(tourApp); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
