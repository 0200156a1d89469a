package utils

import "testing"

func TestScrollInputSteps(t *testing.T) {
	tests := []struct {
		name  string
		input ScrollInput
		px    float64
		want  float64
	}{
		{"无输入", ScrollInput{}, DefaultPixelsPerStep, 0},
		{"滚轮", ScrollInput{WheelSteps: 2}, DefaultPixelsPerStep, 2},
		{"按键回退", ScrollInput{KeySteps: -1}, DefaultPixelsPerStep, -1},
		{"拖拽", ScrollInput{DragPixels: 80}, 40, 2},
		{"混合", ScrollInput{WheelSteps: 1, KeySteps: 1, DragPixels: -20}, 40, 1.5},
		{"忽略非法像素比", ScrollInput{WheelSteps: 1, DragPixels: 100}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.Steps(tt.px); got != tt.want {
				t.Errorf("Steps(%v) = %v, want %v", tt.px, got, tt.want)
			}
		})
	}
}

func TestScrollInputIsZero(t *testing.T) {
	if !(ScrollInput{}).IsZero() {
		t.Error("empty input should be zero")
	}
	if (ScrollInput{DragPixels: 1}).IsZero() {
		t.Error("drag input should not be zero")
	}
}

func TestDragTrackerFeed(t *testing.T) {
	var d DragTracker

	if d.IsDragging() {
		t.Fatal("initial state should not be dragging")
	}

	// 按下的第一帧只记录位置
	if dy := d.Feed(true, 300); dy != 0 {
		t.Errorf("first pressed frame should return 0, got %d", dy)
	}
	if !d.IsDragging() {
		t.Error("should be dragging after press")
	}

	// 向上拖 30 像素为正
	if dy := d.Feed(true, 270); dy != 30 {
		t.Errorf("expected dy 30, got %d", dy)
	}
	if dy := d.Feed(true, 280); dy != -10 {
		t.Errorf("expected dy -10, got %d", dy)
	}

	// 释放
	if dy := d.Feed(false, 0); dy != 0 {
		t.Errorf("release should return 0, got %d", dy)
	}
	if d.IsDragging() {
		t.Error("should not be dragging after release")
	}

	// 重新按下不会把上次的位置算进来
	if dy := d.Feed(true, 100); dy != 0 {
		t.Errorf("new press should return 0, got %d", dy)
	}
}

func TestDragTrackerReset(t *testing.T) {
	var d DragTracker
	d.Feed(true, 10)
	d.Reset()

	if d.IsDragging() {
		t.Error("Reset should stop dragging")
	}
	if dy := d.Feed(true, 500); dy != 0 {
		t.Errorf("first frame after reset should return 0, got %d", dy)
	}
}
