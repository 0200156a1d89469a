package scenes

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/mazetour/pkg/config"
	"github.com/decker502/mazetour/pkg/path"
)

var (
	backgroundColor   = color.RGBA{R: 18, G: 20, B: 28, A: 255}
	inactivePathColor = color.RGBA{R: 90, G: 90, B: 110, A: 160}
	activePathColor   = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	actorColor        = color.RGBA{R: 255, G: 200, B: 60, A: 255}
	followerColor     = color.RGBA{R: 120, G: 230, B: 140, A: 255}
	heldColor         = color.RGBA{R: 140, G: 140, B: 140, A: 255}
	cameraColor       = color.RGBA{R: 255, G: 90, B: 90, A: 255}
)

const (
	entityMarkerSize = 8.0
	headingLength    = 1.5 // 世界单位
)

// Draw 俯视绘制路径、实体和相机
func (s *TourScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	if s.showPaths {
		s.drawPaths(screen)
	}
	s.drawFollowers(screen)
	s.drawCamera(screen)

	if s.showHUD {
		s.drawHUD(screen)
	}
}

// activePathKeys 返回当前区段使用的路径键
func (s *TourScene) activePathKeys() map[string]bool {
	active := map[string]bool{}
	if s.section == nil {
		return active
	}
	for _, key := range s.section.Entities {
		active[key] = true
	}
	if s.section.CameraPath != "" {
		active[s.section.CameraPath] = true
	}
	return active
}

func (s *TourScene) drawPaths(screen *ebiten.Image) {
	active := s.activePathKeys()

	// 先画非活动路径，活动路径叠在上面
	for pass := 0; pass < 2; pass++ {
		for _, key := range s.pathKeys {
			isActive := active[key]
			if isActive != (pass == 1) {
				continue
			}
			clr, width := color.Color(inactivePathColor), float32(1)
			if isActive {
				clr, width = activePathColor, 2
			}
			drawPolyline(screen, s.pathPolylines[key], width, clr)
		}
	}
}

func (s *TourScene) drawFollowers(screen *ebiten.Image) {
	for _, entity := range s.registry.Entities() {
		f, ok := s.follow.Follower(entity)
		if !ok || !f.HasPose {
			continue
		}

		clr := color.Color(followerColor)
		if entity == path.PrimaryActor {
			clr = actorColor
		}
		if !f.Active {
			clr = heldColor
		}

		x, y := project(f.Position)
		half := float32(entityMarkerSize / 2)
		vector.DrawFilledRect(screen, x-half, y-half, entityMarkerSize, entityMarkerSize, clr, true)

		hx, hy := project(f.Position.Add(f.Tangent.Mul(headingLength)))
		vector.StrokeLine(screen, x, y, hx, hy, 1, clr, true)
	}
}

func (s *TourScene) drawCamera(screen *ebiten.Image) {
	pose := s.camera.Pose()
	lookAt := s.camera.GetLookAtPoint()

	x, y := project(pose.Position)
	lx, ly := project(lookAt)
	vector.StrokeLine(screen, x, y, lx, ly, 1, cameraColor, true)
	vector.StrokeRect(screen, x-5, y-5, 10, 10, 2, cameraColor, true)
	vector.DrawFilledRect(screen, lx-2, ly-2, 4, 4, cameraColor, true)
}

func (s *TourScene) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, s.hudText(ebiten.ActualFPS()), 10, 10)
}

// hudText 生成 HUD 文本
func (s *TourScene) hudText(actualFPS float64) string {
	skip := "run"
	if s.scheduler.ShouldSkipFrame() {
		skip = "skip"
	}
	lookAt := s.camera.GetLookAtPoint()
	return fmt.Sprintf(
		"FPS: %.1f (window %.1f)  interval: %d  frame: %s\n"+
			"progress: %.3f -> %.3f  section: %s\n"+
			"look-at: (%.1f, %.1f, %.1f)\n"+
			"[wheel/arrows] scroll  [P] paths  [H] hud",
		actualFPS, s.scheduler.CurrentFPS(), s.scheduler.UpdateInterval(), skip,
		s.scroll.Progress(), s.scroll.Target(), s.SectionName(),
		lookAt.X(), lookAt.Y(), lookAt.Z(),
	)
}

// drawPolyline 绘制投影后的折线
func drawPolyline(screen *ebiten.Image, points []mgl64.Vec3, width float32, clr color.Color) {
	for i := 1; i < len(points); i++ {
		x0, y0 := project(points[i-1])
		x1, y1 := project(points[i])
		vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
	}
}

// project 俯视投影（忽略 Y）
func project(p mgl64.Vec3) (float32, float32) {
	x, y := config.WorldToScreen(p.X(), p.Z())
	return float32(x), float32(y)
}
